// Package auth manages account registration, login and token issuance.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/user"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// DefaultTokenTTL is how long issued tokens stay valid unless overridden.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims are the JWT claims carried by issued tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Service handles registration, login and profile management.
type Service struct {
	users  storage.UserStore
	secret []byte
	issuer string
	ttl    time.Duration
	log    *logger.Logger
	now    func() time.Time
}

// New constructs an auth service signing tokens with secret.
func New(users storage.UserStore, secret []byte, issuer string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &Service{
		users:  users,
		secret: secret,
		issuer: issuer,
		ttl:    DefaultTokenTTL,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithTokenTTL overrides the issued-token lifetime.
func (s *Service) WithTokenTTL(ttl time.Duration) *Service {
	if ttl > 0 {
		s.ttl = ttl
	}
	return s
}

// Register creates a new account with a bcrypt-hashed password and returns
// the user with a fresh token.
func (s *Service) Register(ctx context.Context, name, email, password string) (user.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return user.User{}, "", apperrors.Validation("name, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return user.User{}, "", apperrors.Validation("email is invalid")
	}
	if len(password) < 6 {
		return user.User{}, "", apperrors.Validation("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, "", apperrors.Internal("hash password", err)
	}

	created, err := s.users.CreateUser(ctx, user.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return user.User{}, "", apperrors.Conflict("email is already registered")
		}
		return user.User{}, "", apperrors.Internal("create user", err)
	}

	token, err := s.issueToken(created)
	if err != nil {
		return user.User{}, "", err
	}

	s.log.WithField("user_id", created.ID).Info("user registered")
	return created, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (user.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return user.User{}, "", apperrors.Validation("email and password are required")
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.User{}, "", apperrors.Unauthorized("invalid credentials")
		}
		return user.User{}, "", apperrors.Internal("look up user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return user.User{}, "", apperrors.Unauthorized("invalid credentials")
	}

	token, err := s.issueToken(u)
	if err != nil {
		return user.User{}, "", err
	}

	s.log.WithField("user_id", u.ID).Info("user logged in")
	return u, token, nil
}

// Profile returns the account for an authenticated user id.
func (s *Service) Profile(ctx context.Context, userID string) (user.User, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.User{}, apperrors.NotFound("user")
		}
		return user.User{}, apperrors.Internal("load user", err)
	}
	return u, nil
}

// UpdateProfile changes name, email, or theme. Empty fields keep their
// current value.
func (s *Service) UpdateProfile(ctx context.Context, userID, name, email, theme string) (user.User, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		if !strings.Contains(email, "@") {
			return user.User{}, apperrors.Validation("email is invalid")
		}
		u.Email = email
	}
	if theme = strings.TrimSpace(theme); theme != "" {
		u.Theme = theme
	}

	updated, err := s.users.UpdateUser(ctx, u)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return user.User{}, apperrors.Conflict("email is already registered")
		}
		return user.User{}, apperrors.Internal("update user", err)
	}
	return updated, nil
}

// ChangePassword verifies the current password and replaces it.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < 6 {
		return apperrors.Validation("password must be at least 6 characters")
	}

	u, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return apperrors.Unauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("hash password", err)
	}
	u.PasswordHash = string(hash)

	if _, err := s.users.UpdateUser(ctx, u); err != nil {
		return apperrors.Internal("update user", err)
	}
	s.log.WithField("user_id", userID).Info("password changed")
	return nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Unauthorized("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, apperrors.Unauthorized("invalid token")
	}
	return claims, nil
}

func (s *Service) issueToken(u user.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Internal("sign token", err)
	}
	return signed, nil
}
