package model

import "time"

type Product struct {
	BaseModel
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description"`
	Price       float64    `db:"price" json:"price"`
	Stock       int        `db:"stock" json:"stock"`
	ImageURL    *string    `db:"image_url" json:"image_url"`
	AddedBy     string     `db:"added_by" json:"added_by"` // admin user id
	Discounts   []Discount `db:"-" json:"discounts"`       // loaded separately
}

// Discount is a percentage reduction valid inside an optional time window.
// Nil StartDate means unbounded past, nil EndDate means unbounded future.
type Discount struct {
	ID         string     `db:"id" json:"id"`
	ProductID  string     `db:"product_id" json:"product_id"`
	Percentage float64    `db:"percentage" json:"percentage"`
	StartDate  *time.Time `db:"start_date" json:"start_date"`
	EndDate    *time.Time `db:"end_date" json:"end_date"`
	Active     bool       `db:"active" json:"active"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// InWindow reports whether the discount window contains now.
func (d Discount) InWindow(now time.Time) bool {
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return true
}
