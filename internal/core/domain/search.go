package domain

// SearchOptions configures a semantic search query.
type SearchOptions struct {
	// TopK is the maximum number of results to request.
	TopK int

	// Threshold is the minimum similarity score, in [0, 1].
	Threshold float64

	// IncludeContext asks the backend to return preview text.
	IncludeContext bool
}

// SearchResult represents a single semantic search hit. The result set is
// ephemeral: each query replaces the previous set wholesale, and rank and
// score are defined solely by the backend's response ordering.
type SearchResult struct {
	// Title is the matched document title.
	Title string

	// Source is where the match came from.
	Source string

	// Score is the relevance score in [0, 1].
	Score float64

	// Rank is the backend-assigned position, starting at 1.
	Rank int

	// Type is the backend's result type label.
	Type string

	// Preview is an optional snippet of the matched text.
	Preview string
}
