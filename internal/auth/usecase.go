package auth

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/auth/dto"
)

type UseCase interface {
	Login(ctx context.Context, input *dto.LoginInput) (*dto.Session, error)
	Refresh(ctx context.Context, user UserContext) (*dto.Session, error)
	Logout(ctx context.Context, user UserContext) error
}
