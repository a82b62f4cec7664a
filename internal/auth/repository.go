package auth

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/model"
)

type Repository interface {
	FindActive(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}
