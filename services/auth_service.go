package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"burger-shop/models"
	"burger-shop/repositories"
	"burger-shop/utils"
)

type AuthService struct {
	store     repositories.Store
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(store repositories.Store, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{store: store, jwtSecret: jwtSecret, jwtExpiry: jwtExpiry}
}

func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Username: strings.TrimSpace(req.Username),
		Password: hashedPassword,
		Role:     models.RoleCustomer,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.store.Users().FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, models.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.jwtSecret, s.jwtExpiry, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Success: true,
		Token:   token,
		User:    *user,
	}, nil
}
