package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/brainbox/internal/model"
	"github.com/templui/brainbox/internal/repository"
	"github.com/templui/brainbox/internal/validation"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	userRepository repository.UserRepository
	hasher         PasswordHasher
	tokenService   *TokenService
	emailService   *EmailService
}

func NewAuthService(
	userRepository repository.UserRepository,
	hasher PasswordHasher,
	tokenService *TokenService,
	emailService *EmailService,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
		tokenService:   tokenService,
		emailService:   emailService,
	}
}

// NormalizeEmail trims and lower-cases an address so that lookups and the
// uniqueness check agree on Foo@x.com and foo@x.com.
func NormalizeEmail(email string) string {
	// Casers are stateful and must not be shared across goroutines
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// Register validates and creates a user. Validation failures come back as
// validation.Errors listing every failed rule.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*model.User, error) {
	email = NormalizeEmail(email)
	displayName = strings.TrimSpace(displayName)

	err := validation.ValidateSignup(email, password, displayName)
	if err != nil {
		return nil, err
	}

	_, err = s.userRepository.ByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashedPassword,
		DisplayName:  displayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.userRepository.Create(ctx, user)
	if err != nil {
		// Lost a race with a concurrent signup for the same address
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = s.emailService.SendWelcomeEmail(ctx, user.Email, user.DisplayName)
	if err != nil {
		slog.Warn("failed to send welcome email", "error", err, "user_id", user.ID)
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login checks credentials and issues a bearer token.
// Unknown email is ErrUserNotFound, a wrong password is ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = NormalizeEmail(email)

	user, err := s.userRepository.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokenService.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}
