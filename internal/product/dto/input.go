package dto

import "time"

type CreateProductInput struct {
	AdminID     string
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageURL    string
}

type UpdateProductInput struct {
	ID          string
	AdminID     string // ownership check
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageURL    string
}

type DiscountInput struct {
	ProductID  string
	Percentage float64
	StartDate  *time.Time
	EndDate    *time.Time
}
