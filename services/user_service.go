package services

import (
	"context"
	"strings"

	"burger-shop/models"
	"burger-shop/repositories"
)

type UserService struct {
	store repositories.Store
}

func NewUserService(store repositories.Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	return s.store.Users().FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, models.NewValidationError("name", "name must not be empty")
		}
		user.Username = name
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := s.store.Users().UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
