// Package auth threads the authenticated identity through request context.
// Authentication itself happens upstream (gateway-issued tokens); this
// service only consumes the resolved identity and never reads ambient state.
package auth

import (
	"context"

	"github.com/shopcart/order-service/internal/model"
)

type contextKey struct{}

type UserContext struct {
	UserID string
	Email  string
	Role   model.Role
}

func WithUser(ctx context.Context, uc UserContext) context.Context {
	return context.WithValue(ctx, contextKey{}, uc)
}

func FromContext(ctx context.Context) (UserContext, bool) {
	uc, ok := ctx.Value(contextKey{}).(UserContext)
	return uc, ok
}

func GetEmail(ctx context.Context) string {
	if uc, ok := FromContext(ctx); ok {
		return uc.Email
	}
	return ""
}

func IsAdmin(ctx context.Context) bool {
	uc, ok := FromContext(ctx)
	return ok && uc.Role == model.RoleAdmin
}
