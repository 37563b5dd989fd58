package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/templui/brainbox/internal/model"
	"github.com/templui/brainbox/internal/repository"
	"github.com/templui/brainbox/internal/validation"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepository.ByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateDisplayName(ctx context.Context, userID, name string) (*model.User, error) {
	name = strings.TrimSpace(name)

	err := validation.ValidateDisplayName(name)
	if err != nil {
		return nil, err
	}

	err = s.userRepository.UpdateDisplayName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update display name: %w", err)
	}

	return s.ByID(ctx, userID)
}
