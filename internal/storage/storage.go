package storage

import (
	"context"
	"errors"

	"github.com/Totarae/LinkCut/internal/model"
)

// Ошибки хранилища. Репозитории БД и in-memory реализации возвращают
// одни и те же значения, чтобы вышележащие слои различали их через errors.Is.
var (
	// ErrCodeTaken — код уже занят (коллизия при вставке).
	ErrCodeTaken = errors.New("short code already taken")
	// ErrLinkNotFound — ссылка с таким кодом не существует.
	ErrLinkNotFound = errors.New("short link not found")
	// ErrUsernameTaken — имя пользователя уже зарегистрировано.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
)

//go:generate mockgen -destination=../mocks/mock_storage.go -package=mocks github.com/Totarae/LinkCut/internal/storage LinkStore,UserStore

// LinkStore определяет интерфейс хранилища коротких ссылок.
type LinkStore interface {
	// SaveLink атомарно сохраняет ссылку (insert-if-absent по коду).
	// Возвращает ErrCodeTaken, если код уже существует.
	SaveLink(ctx context.Context, link *model.ShortLink) error
	// GetLink возвращает ссылку по коду.
	GetLink(ctx context.Context, code string) (*model.ShortLink, error)
	// GetLinksByOwner возвращает все ссылки пользователя,
	// отсортированные по времени создания (новые первыми).
	GetLinksByOwner(ctx context.Context, userID string) ([]*model.ShortLink, error)
	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error
}

// UserStore определяет интерфейс хранилища пользователей.
type UserStore interface {
	// CreateUser атомарно сохраняет пользователя (insert-if-absent по имени).
	// Возвращает ErrUsernameTaken, если имя уже занято.
	CreateUser(ctx context.Context, user *model.User) error
	// GetUserByUsername возвращает пользователя по имени.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}
