package auth

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/model"
)

// UserContext is the authenticated cashier behind a request.
type UserContext struct {
	UserID string
	Name   string
	Role   model.Role
}

type ctxKey struct{}

func WithUser(ctx context.Context, u UserContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the user put there by the auth middleware.
func FromContext(ctx context.Context) (UserContext, bool) {
	u, ok := ctx.Value(ctxKey{}).(UserContext)
	return u, ok
}

// HasRole reports whether the user holds one of roles.
func (u UserContext) HasRole(roles ...model.Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
