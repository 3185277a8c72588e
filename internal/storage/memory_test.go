package storage_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Totarae/LinkCut/internal/model"
	"github.com/Totarae/LinkCut/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тест сохранения и получения ссылки
func TestMemoryLinkStore_SaveAndGet(t *testing.T) {
	store := storage.NewMemoryLinkStore()
	ctx := context.Background()

	link := &model.ShortLink{Code: "abc1234", Origin: "https://yandex.ru", Created: time.Now()}
	require.NoError(t, store.SaveLink(ctx, link))
	assert.NotZero(t, link.ID)

	got, err := store.GetLink(ctx, "abc1234")
	require.NoError(t, err)
	assert.Equal(t, "https://yandex.ru", got.Origin)
}

// Повторная вставка того же кода должна вернуть ErrCodeTaken
func TestMemoryLinkStore_DuplicateCode(t *testing.T) {
	store := storage.NewMemoryLinkStore()
	ctx := context.Background()

	link := &model.ShortLink{Code: "dup0000", Origin: "https://example.com/a"}
	require.NoError(t, store.SaveLink(ctx, link))

	other := &model.ShortLink{Code: "dup0000", Origin: "https://example.com/b"}
	err := store.SaveLink(ctx, other)
	assert.ErrorIs(t, err, storage.ErrCodeTaken)

	// исходная запись не должна измениться
	got, err := store.GetLink(ctx, "dup0000")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", got.Origin)
}

func TestMemoryLinkStore_NotFound(t *testing.T) {
	store := storage.NewMemoryLinkStore()

	_, err := store.GetLink(context.Background(), "missing1")
	assert.ErrorIs(t, err, storage.ErrLinkNotFound)
}

// Ссылки пользователя возвращаются новыми вперёд, анонимные не попадают
func TestMemoryLinkStore_GetLinksByOwner(t *testing.T) {
	store := storage.NewMemoryLinkStore()
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 3; i++ {
		link := &model.ShortLink{
			Code:    fmt.Sprintf("user%03d", i),
			Origin:  fmt.Sprintf("https://example.com/%d", i),
			UserID:  "user-1",
			Created: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, store.SaveLink(ctx, link))
	}
	anon := &model.ShortLink{Code: "anon000", Origin: "https://example.com/anon", Created: base}
	require.NoError(t, store.SaveLink(ctx, anon))

	links, err := store.GetLinksByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, "user002", links[0].Code)
	assert.Equal(t, "user000", links[2].Code)

	// у незнакомого пользователя пустой список, а не ошибка
	empty, err := store.GetLinksByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// Конкурентные вставки разных кодов не должны теряться
func TestMemoryLinkStore_ConcurrentSave(t *testing.T) {
	store := storage.NewMemoryLinkStore()
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			link := &model.ShortLink{
				Code:   fmt.Sprintf("conc%03d", n),
				Origin: fmt.Sprintf("https://example.com/%d", n),
			}
			assert.NoError(t, store.SaveLink(ctx, link))
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		got, err := store.GetLink(ctx, fmt.Sprintf("conc%03d", i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("https://example.com/%d", i), got.Origin)
	}
}

func TestMemoryUserStore_CreateAndGet(t *testing.T) {
	store := storage.NewMemoryUserStore()
	ctx := context.Background()

	user := &model.User{ID: "id-1", Username: "alice", PasswordHash: "hash-1", Created: time.Now()}
	require.NoError(t, store.CreateUser(ctx, user))

	got, err := store.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "hash-1", got.PasswordHash)
}

// Дубликат имени не должен перезаписать сохранённые учётные данные
func TestMemoryUserStore_DuplicateUsername(t *testing.T) {
	store := storage.NewMemoryUserStore()
	ctx := context.Background()

	first := &model.User{ID: "id-1", Username: "bob", PasswordHash: "hash-1"}
	require.NoError(t, store.CreateUser(ctx, first))

	second := &model.User{ID: "id-2", Username: "bob", PasswordHash: "hash-2"}
	err := store.CreateUser(ctx, second)
	assert.ErrorIs(t, err, storage.ErrUsernameTaken)

	got, err := store.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "hash-1", got.PasswordHash)
}

func TestMemoryUserStore_NotFound(t *testing.T) {
	store := storage.NewMemoryUserStore()

	_, err := store.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
