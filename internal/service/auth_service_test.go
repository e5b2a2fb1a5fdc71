package service

import (
	"context"
	"testing"
	"time"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

// mockUserRepository is a manual mock for domain.UserRepository.
type mockUserRepository struct {
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc     func(ctx context.Context, user *domain.User) error
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

var _ domain.UserRepository = (*mockUserRepository)(nil)

func newTestAuthService(t *testing.T, users domain.UserRepository) AuthService {
	t.Helper()
	svc, err := NewAuthService(&config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret"},
	}, users)
	assert.NoError(t, err)
	return svc
}

func signTestToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	svc := newTestAuthService(t, &mockUserRepository{})
	ctx := context.Background()

	t.Run("valid token yields subject and email", func(t *testing.T) {
		token := signTestToken(t, "test-secret", TokenClaims{
			Email: "student@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		claims, err := svc.ValidateToken(ctx, token)
		assert.NoError(t, err)
		assert.Equal(t, "user1", claims.Subject)
		assert.Equal(t, "student@example.com", claims.Email)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token := signTestToken(t, "other-secret", TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user1"},
		})

		_, err := svc.ValidateToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signTestToken(t, "test-secret", TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})

		_, err := svc.ValidateToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("missing subject is rejected", func(t *testing.T) {
		token := signTestToken(t, "test-secret", TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		_, err := svc.ValidateToken(ctx, token)
		assert.Error(t, err)

		var domainErr *domain.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("existing profile by id", func(t *testing.T) {
		users := &mockUserRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
				return &domain.User{ID: id, Email: "student@example.com", FirstName: "Ada"}, nil
			},
		}
		svc := newTestAuthService(t, users)

		profile, err := svc.GetProfile(ctx, "user1", "student@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "user1", profile.ID)
		assert.Equal(t, "Ada", profile.FirstName)
	})

	t.Run("falls back to email lookup", func(t *testing.T) {
		users := &mockUserRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
				return nil, nil
			},
			GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return &domain.User{ID: "older-id", Email: email}, nil
			},
		}
		svc := newTestAuthService(t, users)

		profile, err := svc.GetProfile(ctx, "user1", "student@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "older-id", profile.ID)
	})

	t.Run("provisions profile on first login", func(t *testing.T) {
		var created *domain.User
		users := &mockUserRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
				return nil, nil
			},
			GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, nil
			},
			CreateFunc: func(ctx context.Context, user *domain.User) error {
				created = user
				return nil
			},
		}
		svc := newTestAuthService(t, users)

		profile, err := svc.GetProfile(ctx, "user1", "student@example.com")
		assert.NoError(t, err)
		if assert.NotNil(t, created) {
			// The row keeps the token subject as its ID so later lookups hit.
			assert.Equal(t, "user1", created.ID)
			assert.Equal(t, "student@example.com", created.Email)
			assert.False(t, created.CreatedAt.IsZero())
		}
		assert.Equal(t, "user1", profile.ID)
		assert.Equal(t, "student@example.com", profile.Email)
	})

	t.Run("no row and no email claim is not found", func(t *testing.T) {
		users := &mockUserRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
				return nil, nil
			},
		}
		svc := newTestAuthService(t, users)

		_, err := svc.GetProfile(ctx, "user1", "")
		assert.Error(t, err)

		var domainErr *domain.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	})
}
