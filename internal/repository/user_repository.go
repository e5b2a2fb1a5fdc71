package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func (r *sqlxUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var row models.User
	query := `SELECT id, email, first_name, last_name, created_at
	          FROM users WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return userToDomain(&row), nil
}

func (r *sqlxUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row models.User
	query := `SELECT id, email, first_name, last_name, created_at
	          FROM users WHERE email = $1`

	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return userToDomain(&row), nil
}

func (r *sqlxUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, first_name, last_name, created_at)
	          VALUES (:id, :email, :first_name, :last_name, :created_at)`

	row := &models.User{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func userToDomain(m *models.User) *domain.User {
	return &domain.User{
		ID:        m.ID,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		CreatedAt: m.CreatedAt,
	}
}
