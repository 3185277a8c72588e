package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(2)
	defer h.Close()
	ctx := context.Background()

	hash, err := h.Hash(ctx, "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "correct-horse")

	assert.NoError(t, h.Compare(ctx, hash, "correct-horse"))

	err = h.Compare(ctx, hash, "battery-staple")
	assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)
}

// Занятый пул и дедлайн запроса: ожидание должно прерваться, а не виснуть
func TestHasher_Timeout(t *testing.T) {
	h := NewHasher(1)

	block := make(chan struct{})
	h.jobs <- func() { <-block } // занимаем единственного воркера

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := h.Hash(ctx, "correct-horse")
	assert.ErrorIs(t, err, ErrHashTimeout)

	err = h.Compare(ctx, "whatever", "correct-horse")
	assert.ErrorIs(t, err, ErrHashTimeout)

	close(block)
	h.Close()
}
