package service

import (
	"context"
	"fmt"
	"time"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// TokenClaims are the claims we read from bearer tokens issued by the
// external auth provider. Subject carries the user ID.
type TokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// AuthService validates bearer tokens. Token issuance (signup, login,
// refresh) is fully delegated to the external auth provider; this service
// only verifies the shared-secret signature and expiry.
type AuthService interface {
	ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error)
	GetProfile(ctx context.Context, userID, email string) (*dto.UserResponse, error)
}

type authService struct {
	secret []byte
	users  domain.UserRepository
}

func NewAuthService(cfg *config.Config, users domain.UserRepository) (AuthService, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth JWT secret cannot be empty")
	}
	return &authService{
		secret: []byte(cfg.Auth.JWTSecret),
		users:  users,
	}, nil
}

// ValidateToken implements AuthService.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domain.NewError(domain.CodeUnauthorized, "Invalid token", err)
	}
	if !token.Valid {
		return nil, domain.NewUnauthorizedError("Invalid token")
	}
	if claims.Subject == "" {
		return nil, domain.NewUnauthorizedError("Token has no subject")
	}
	return claims, nil
}

// GetProfile implements AuthService. The auth provider owns identity, so a
// profile row may not exist yet on the first authenticated request; in that
// case the row is provisioned from the token claims.
func (s *authService) GetProfile(ctx context.Context, userID, email string) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load user profile", err)
	}
	if user == nil && email != "" {
		user, err = s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, domain.NewInternalError("failed to load user profile by email", err)
		}
	}
	if user == nil {
		if email == "" {
			return nil, domain.NewNotFoundError("User not found")
		}
		user = &domain.User{
			ID:        userID,
			Email:     email,
			CreatedAt: time.Now(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, domain.NewInternalError("failed to provision user profile", err)
		}
		logger.Get().Info("Provisioned user profile on first login",
			zap.String("userID", userID),
		)
	}
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}
