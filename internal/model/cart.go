package model

type CartItem struct {
	BaseModel
	UserID    string   `db:"user_id" json:"user_id"`
	ProductID string   `db:"product_id" json:"product_id"`
	Quantity  int      `db:"quantity" json:"quantity"`
	Product   *Product `db:"-" json:"product"` // joined data
}
