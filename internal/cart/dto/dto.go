package dto

// CartItemView is a cart line valued through the pricing engine at read time.
// Unlike order items, the price here tracks live discounts.
type CartItemView struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	OriginalPrice float64 `json:"original_price"`
	UnitPrice     float64 `json:"unit_price"` // effective price
	LineTotal     float64 `json:"line_total"`
}
