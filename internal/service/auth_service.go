package service

import (
	"context"

	"user-directory/internal/dto"
)

type AuthService interface {
	Register(ctx context.Context, r dto.RegisterRequest) (*dto.AuthResult, error)
	Login(ctx context.Context, r dto.LoginRequest) (*dto.AuthResult, error)
}
