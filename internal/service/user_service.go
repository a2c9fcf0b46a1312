package service

import (
	"context"
	"fmt"

	"github.com/hafiz27/billflow/internal/models"
	"github.com/hafiz27/billflow/internal/repository"
	"github.com/hafiz27/billflow/pkg/apperrors"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id int64) (*models.User, error)
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{
		u: u,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id int64) (*models.User, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("Error getting user info")
	}

	if !isExist {
		return nil, apperrors.ErrNotFound("User doesn't exist")
	}

	return user, nil
}
