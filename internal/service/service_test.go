package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/templui/brainbox/internal/db/dbtest"
	"github.com/templui/brainbox/internal/markdown"
	"github.com/templui/brainbox/internal/model"
	"github.com/templui/brainbox/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

type testServices struct {
	auth    *AuthService
	users   *UserService
	content *ContentService
	share   *ShareService
	tokens  *TokenService

	contentRepository repository.ContentRepository
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	database := dbtest.Open(t)
	userRepository := repository.NewUserRepository(database)
	contentRepository := repository.NewContentRepository(database)
	shareLinkRepository := repository.NewShareLinkRepository(database)

	emailService := NewEmailService("", "noreply@example.com", "http://localhost:8090", "Brainbox", true)
	tokenService := NewTokenService(testSecret, 0)

	return &testServices{
		auth:    NewAuthService(userRepository, NewBcryptHasher(bcrypt.MinCost), tokenService, emailService),
		users:   NewUserService(userRepository),
		content: NewContentService(contentRepository),
		share:   NewShareService(shareLinkRepository, userRepository, contentRepository, markdown.NewParser(), emailService),
		tokens:  tokenService,

		contentRepository: contentRepository,
	}
}

func (s *testServices) register(t *testing.T, email string) *model.User {
	t.Helper()

	user, err := s.auth.Register(context.Background(), email, "Abcdef1!", "Alice")
	require.NoError(t, err)
	return user
}
