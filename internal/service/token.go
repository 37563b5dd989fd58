package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenMalformed marks a token whose payload is not an object carrying userId.
	ErrTokenMalformed = fmt.Errorf("%w: malformed payload", ErrTokenInvalid)
	ErrTokenExpired   = errors.New("token has expired")

	// ErrUnauthenticated means no credential was presented at all.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means a credential was presented but rejected. It wraps the
	// underlying token error so callers can still tell expired from invalid.
	ErrForbidden = errors.New("invalid or expired token")
)

// Claims carries the user id as the only application claim.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless HS256 bearer tokens.
// Rotating the secret invalidates every token issued with the old one.
type TokenService struct {
	secret []byte
	expiry time.Duration
	parser *jwt.Parser
}

// NewTokenService builds a token service. An expiry <= 0 issues perpetual tokens.
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		expiry: expiry,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.expiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.expiry))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify returns the user id bound to tokenString.
// Errors: ErrTokenExpired, ErrTokenMalformed, or another ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	_, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", ErrTokenMalformed
	default:
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.UserID == "" {
		return "", ErrTokenMalformed
	}

	return claims.UserID, nil
}

// Authenticate is the request gate: no token is ErrUnauthenticated, a token
// that fails verification is ErrForbidden.
func (s *TokenService) Authenticate(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrUnauthenticated
	}

	userID, err := s.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrForbidden, err)
	}

	return userID, nil
}
