package service

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashTimeout — запрос отменён или истёк, пока ждал/выполнял bcrypt.
var ErrHashTimeout = errors.New("password hashing timed out")

// Hasher выполняет bcrypt на ограниченном пуле воркеров.
// bcrypt намеренно дорогой; без пула всплеск логинов занял бы
// все CPU и задушил остальные запросы.
type Hasher struct {
	jobs chan func()
	wg   sync.WaitGroup
	once sync.Once
}

// NewHasher запускает пул. workers <= 0 означает GOMAXPROCS.
func NewHasher(workers int) *Hasher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	h := &Hasher{jobs: make(chan func())}
	for i := 0; i < workers; i++ {
		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			for job := range h.jobs {
				job()
			}
		}()
	}
	return h
}

type hashResult struct {
	hash string
	err  error
}

// Hash хэширует пароль. Ожидание свободного воркера прерывается
// по ctx — медленный клиент не держит пул бесконечно.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	out := make(chan hashResult, 1)
	job := func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		out <- hashResult{hash: string(hash), err: err}
	}

	select {
	case h.jobs <- job:
	case <-ctx.Done():
		return "", ErrHashTimeout
	}

	select {
	case res := <-out:
		return res.hash, res.err
	case <-ctx.Done():
		return "", ErrHashTimeout
	}
}

// Compare сверяет пароль с хэшем на пуле. Несовпадение возвращается
// как ошибка bcrypt, отмена контекста — как ErrHashTimeout.
func (h *Hasher) Compare(ctx context.Context, hash, password string) error {
	out := make(chan error, 1)
	job := func() {
		out <- bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	}

	select {
	case h.jobs <- job:
	case <-ctx.Done():
		return ErrHashTimeout
	}

	select {
	case err := <-out:
		return err
	case <-ctx.Done():
		return ErrHashTimeout
	}
}

// Close останавливает воркеров после завершения принятых задач.
func (h *Hasher) Close() {
	h.once.Do(func() {
		close(h.jobs)
		h.wg.Wait()
	})
}
