package domain

// IndexStats aggregates search index and database statistics reported by
// the backend. Refreshed after uploads, deletes and indexing runs.
type IndexStats struct {
	// IndexedDocuments is the number of documents in the search index.
	IndexedDocuments int

	// VocabularySize is the vectorizer's vocabulary size.
	VocabularySize int

	// ProcessedDocuments is the number of documents the database has
	// finished processing.
	ProcessedDocuments int

	// ProcessedSources is the number of tax/legal sources processed.
	ProcessedSources int
}
