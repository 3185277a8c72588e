package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/Totarae/LinkCut/internal/model"
)

// MemoryLinkStore — потокобезопасное in-memory хранилище ссылок.
// Используется в режиме без БД (локальная разработка, тесты).
type MemoryLinkStore struct {
	mu     sync.RWMutex
	links  map[string]*model.ShortLink
	nextID uint
}

// NewMemoryLinkStore инициализирует пустое хранилище ссылок.
func NewMemoryLinkStore() *MemoryLinkStore {
	return &MemoryLinkStore{links: make(map[string]*model.ShortLink)}
}

// SaveLink вставляет ссылку, если код свободен. Проверка и вставка
// выполняются под одной блокировкой — эквивалент insert-if-absent.
func (s *MemoryLinkStore) SaveLink(_ context.Context, link *model.ShortLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.links[link.Code]; exists {
		return ErrCodeTaken
	}
	s.nextID++
	link.ID = s.nextID

	stored := *link
	s.links[link.Code] = &stored
	return nil
}

// GetLink возвращает копию записи, чтобы вызывающий не мог изменить хранилище.
func (s *MemoryLinkStore) GetLink(_ context.Context, code string) (*model.ShortLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.links[code]
	if !ok {
		return nil, ErrLinkNotFound
	}
	copied := *link
	return &copied, nil
}

// GetLinksByOwner возвращает ссылки пользователя, новые первыми.
func (s *MemoryLinkStore) GetLinksByOwner(_ context.Context, userID string) ([]*model.ShortLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*model.ShortLink, 0)
	for _, link := range s.links {
		if link.UserID != "" && link.UserID == userID {
			copied := *link
			results = append(results, &copied)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Created.After(results[j].Created)
	})
	return results, nil
}

// Ping для in-memory хранилища всегда успешен.
func (s *MemoryLinkStore) Ping(_ context.Context) error { return nil }

// MemoryUserStore — потокобезопасное in-memory хранилище пользователей.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*model.User // ключ — username
}

// NewMemoryUserStore инициализирует пустое хранилище пользователей.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*model.User)}
}

// CreateUser вставляет пользователя, если имя свободно.
// Повторная регистрация не изменяет уже сохранённую запись.
func (s *MemoryUserStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return ErrUsernameTaken
	}
	stored := *user
	s.users[user.Username] = &stored
	return nil
}

// GetUserByUsername возвращает копию записи пользователя.
func (s *MemoryUserStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}
