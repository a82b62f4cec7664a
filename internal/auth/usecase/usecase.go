package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/auth"
	"github.com/fekuna/omnipos-register-service/internal/auth/dto"
	"github.com/fekuna/omnipos-register-service/internal/cart"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authUseCase struct {
	repo   auth.Repository
	tokens *auth.TokenManager
	carts  *cart.Registry
	logger logger.ZapLogger
}

// NewAuthUseCase drops the session cart held in carts on logout.
func NewAuthUseCase(repo auth.Repository, tokens *auth.TokenManager, carts *cart.Registry, log logger.ZapLogger) auth.UseCase {
	return &authUseCase{repo: repo, tokens: tokens, carts: carts, logger: log}
}

// Login matches the PIN against every active account, narrowed to one email
// when given.
func (uc *authUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.Session, error) {
	if input.PIN == "" {
		return nil, apperror.ErrInvalidCredentials
	}
	users, err := uc.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))
	for _, u := range users {
		if email != "" && strings.ToLower(u.Email) != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PINHash), []byte(input.PIN)) == nil {
			uc.logger.Info("cashier logged in", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
			return uc.issue(u)
		}
	}

	uc.logger.Warn("login rejected", zap.String("email", email))
	return nil, apperror.ErrInvalidCredentials
}

// Refresh extends an active session, rejecting users deactivated since the
// token was issued.
func (uc *authUseCase) Refresh(ctx context.Context, user auth.UserContext) (*dto.Session, error) {
	u, err := uc.repo.FindByID(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, apperror.ErrUnauthenticated
	}
	return uc.issue(*u)
}

// Logout forgets the cashier's open cart. Tokens are stateless and simply
// expire.
func (uc *authUseCase) Logout(_ context.Context, user auth.UserContext) error {
	if uc.carts != nil {
		uc.carts.Drop(user.UserID)
	}
	uc.logger.Info("cashier logged out", zap.String("user_id", user.UserID))
	return nil
}

func (uc *authUseCase) issue(u model.User) (*dto.Session, error) {
	token, expiresAt, err := uc.tokens.Generate(auth.UserContext{UserID: u.ID, Name: u.Name, Role: u.Role})
	if err != nil {
		return nil, err
	}
	return &dto.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
	}, nil
}
