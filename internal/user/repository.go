package user

import (
	"context"

	"github.com/shopcart/order-service/internal/model"
)

// Repository is read-only: registration and identity issuance live in the
// auth service upstream.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}
