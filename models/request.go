package models

// Product identifies the product to look up on a competitor site.
type Product struct {
	// Name is the free-text product name. Only the first few whitespace
	// tokens are used to build the search query.
	Name string `json:"name" binding:"required"`
}

// ResolveRequest is the payload for POST /api/v1/resolve.
type ResolveRequest struct {
	// Product is the product to resolve. Required.
	Product Product `json:"product" binding:"required"`

	// Competitor is the registry key of the target site. Required.
	Competitor string `json:"competitor" binding:"required"`
}
