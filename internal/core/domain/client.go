package domain

// Client is a wealth-planning client record from the backend roster.
type Client struct {
	// ID is the backend identifier.
	ID int64

	// FullName is the client's display name.
	FullName string

	// Email is the contact address.
	Email string

	// TotalAssets is the client's total assets under planning, in dollars.
	TotalAssets float64
}
