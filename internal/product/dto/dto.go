package dto

// ProductFilters drives catalog listing. SearchQuery goes through
// Elasticsearch when available, ILIKE otherwise.
type ProductFilters struct {
	AddedBy     string `json:"added_by,omitempty"`
	SearchQuery string `json:"search_query,omitempty"`
	SortBy      string `json:"sort_by,omitempty"`    // name, price, created_at
	SortOrder   string `json:"sort_order,omitempty"` // asc, desc
	Page        int    `json:"page,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

// ProductView is a product with its current effective price resolved.
type ProductView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	Price          float64 `json:"price"`
	EffectivePrice float64 `json:"effective_price"`
	DiscountActive bool    `json:"discount_active"`
	Stock          int     `json:"stock"`
	ImageURL       *string `json:"image_url"`
	AddedBy        string  `json:"added_by"`
}
