package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/brainbox/internal/validation"
)

func TestAuthService_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	user, err := s.auth.Register(ctx, "a@x.com", "Abcdef1!", "Alice")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "Abcdef1!", user.PasswordHash)

	loggedIn, token, err := s.auth.Login(ctx, "a@x.com", "Abcdef1!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	userID, err := s.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuthService_RegisterNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	user, err := s.auth.Register(ctx, "  Foo@X.com ", "Abcdef1!", " Alice ")
	require.NoError(t, err)
	assert.Equal(t, "foo@x.com", user.Email)
	assert.Equal(t, "Alice", user.DisplayName)

	_, _, err = s.auth.Login(ctx, "FOO@x.COM", "Abcdef1!")
	assert.NoError(t, err)
}

func TestAuthService_DuplicateEmailAnyCasing(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	s.register(t, "foo@x.com")

	for _, email := range []string{"foo@x.com", "Foo@x.com", "FOO@X.COM"} {
		_, err := s.auth.Register(ctx, email, "Abcdef1!", "Bob")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists, email)
	}

	// Still only the first account
	user, err := s.users.ByEmail(ctx, "foo@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.DisplayName)
}

func TestAuthService_RegisterReportsEveryViolation(t *testing.T) {
	s := newTestServices(t)

	_, err := s.auth.Register(context.Background(), "nope", "abc", "x")
	require.Error(t, err)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)

	assert.NotEmpty(t, verrs.Rules("email"))
	assert.NotEmpty(t, verrs.Rules("displayName"))
	assert.ElementsMatch(t,
		[]string{validation.RuleMinLength, validation.RuleUppercase, validation.RuleDigit, validation.RuleSymbol},
		verrs.Rules("password"),
	)

	_, err = s.users.ByEmail(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUserNotFound, "nothing persisted")
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	s.register(t, "a@x.com")

	_, token, err := s.auth.Login(ctx, "b@x.com", "Abcdef1!")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, token)

	_, token, err = s.auth.Login(ctx, "a@x.com", "Abcdef1?")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestUserService_UpdateDisplayName(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	user := s.register(t, "a@x.com")

	updated, err := s.users.UpdateDisplayName(ctx, user.ID, "  Bob  ")
	require.NoError(t, err)
	assert.Equal(t, "Bob", updated.DisplayName)
	assert.Equal(t, user.Email, updated.Email)

	_, err = s.users.UpdateDisplayName(ctx, user.ID, "ab")
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"length"}, verrs.Rules("displayName"))

	_, err = s.users.UpdateDisplayName(ctx, "missing", "Carol")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
