package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/devjournal/internal/models"
	"github.com/maheshrc27/devjournal/internal/repository"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id string) (*models.User, error)
	RemoveUser(ctx context.Context, userID string) error
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{
		u: u,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, ErrUnauthorized
	}

	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user info: %w", err)
	}

	if !isExist {
		slog.Info("user not found", "user_id", id)
		return nil, ErrNotFound
	}

	return user, nil
}

func (s *userService) RemoveUser(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	return s.u.Remove(ctx, userID)
}
