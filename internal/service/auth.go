package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jortega/store-api/internal/hash"
	"github.com/jortega/store-api/internal/models"
	"github.com/jortega/store-api/internal/repo"
	"gorm.io/gorm"
)

const tokenTTL = 30 * 24 * time.Hour

// AuthService is the authentication collaborator: it registers users and
// turns credentials into signed tokens. The core only ever sees the resolved
// user id.
type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	_, err := s.Repo.UserByUsername(ctx, username)
	if err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	hashed, err := hash.Password(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         "user",
		Status:       models.StatusActive,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		// The existence check above races with concurrent registrations; the
		// unique indexes on username and email have the last word.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.Repo.ActiveUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("%w: wrong credentials", ErrUnauthorized)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", nil, fmt.Errorf("%w: wrong credentials", ErrUnauthorized)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}
