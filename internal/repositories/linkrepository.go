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

// LinkRepository реализует storage.LinkStore поверх PostgreSQL.
type LinkRepository struct {
	DB *database.DB
}

// NewLinkRepository создаёт новый экземпляр LinkRepository.
func NewLinkRepository(db *database.DB) *LinkRepository {
	return &LinkRepository{DB: db}
}

// SaveLink сохраняет ссылку атомарно: ON CONFLICT (code) DO NOTHING.
// Если код занят параллельной вставкой, вернётся storage.ErrCodeTaken —
// отдельной проверки существования нет, гонка check-then-insert исключена.
func (r *LinkRepository) SaveLink(ctx context.Context, link *model.ShortLink) error {
	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `INSERT INTO links (code, origin, user_id, created_at)
              VALUES ($1, $2, NULLIF($3, '')::uuid, $4)
              ON CONFLICT (code) DO NOTHING
              RETURNING id`

	err := r.DB.Pool.QueryRow(dbctx, query, link.Code, link.Origin, link.UserID, link.Created).Scan(&link.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.ErrCodeTaken
		}
		return fmt.Errorf("database insert error: %w", err)
	}
	return nil
}

// GetLink извлекает ссылку по коду.
func (r *LinkRepository) GetLink(ctx context.Context, code string) (*model.ShortLink, error) {
	dbctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	query := `SELECT id, code, origin, COALESCE(user_id::text, ''), created_at FROM links WHERE code = $1`
	link := &model.ShortLink{}
	err := r.DB.Pool.QueryRow(dbctx, query, code).Scan(
		&link.ID, &link.Code, &link.Origin, &link.UserID, &link.Created,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrLinkNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return link, nil
}

// GetLinksByOwner возвращает все ссылки пользователя, новые первыми.
func (r *LinkRepository) GetLinksByOwner(ctx context.Context, userID string) ([]*model.ShortLink, error) {
	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT id, code, origin, COALESCE(user_id::text, ''), created_at
              FROM links WHERE user_id = $1::uuid ORDER BY created_at DESC`
	rows, err := r.DB.Pool.Query(dbctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links by owner: %w", err)
	}
	defer rows.Close()

	var results []*model.ShortLink
	for rows.Next() {
		link := &model.ShortLink{}
		if err := rows.Scan(&link.ID, &link.Code, &link.Origin, &link.UserID, &link.Created); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		results = append(results, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return results, nil
}

// Ping проверяет доступность базы данных.
func (r *LinkRepository) Ping(ctx context.Context) error {
	return r.DB.Ping(ctx)
}
