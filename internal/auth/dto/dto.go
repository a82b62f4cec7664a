package dto

import (
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
)

type LoginInput struct {
	Email string
	PIN   string
}

type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
}
