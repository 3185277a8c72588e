package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Totarae/LinkCut/internal/database"
	"github.com/Totarae/LinkCut/internal/model"
	"github.com/Totarae/LinkCut/internal/storage"
	"github.com/jackc/pgx/v5"
)

// UserRepository реализует storage.UserStore поверх PostgreSQL.
type UserRepository struct {
	DB *database.DB
}

// NewUserRepository создаёт новый экземпляр UserRepository.
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser сохраняет пользователя атомарно: ON CONFLICT (username) DO NOTHING.
// Дубликат имени возвращает storage.ErrUsernameTaken, существующая запись
// при этом не изменяется.
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `INSERT INTO users (id, username, password_hash, created_at)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (username) DO NOTHING
              RETURNING id`

	var id string
	err := r.DB.Pool.QueryRow(dbctx, query, user.ID, user.Username, user.PasswordHash, user.Created).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.ErrUsernameTaken
		}
		return fmt.Errorf("database insert error: %w", err)
	}
	return nil
}

// GetUserByUsername извлекает пользователя по имени.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	dbctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
	user := &model.User{}
	err := r.DB.Pool.QueryRow(dbctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Created,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return user, nil
}
