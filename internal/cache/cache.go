// Package cache — необязательный Redis-кэш для горячего пути редиректа.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Сентинел негативного кэша: "кода нет в БД". Пустую строку в качестве
// сентинела использовать нельзя — она неотличима от промаха.
const notFoundSentinel = "__nil__"

const (
	keyPrefix = "lc:"
	ttl       = time.Hour
	emptyTTL  = 30 * time.Second
	opTimeout = 100 * time.Millisecond
)

// LinkCache кэширует соответствие код -> origin, включая негативные записи.
type LinkCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewLinkCache подключается к Redis и проверяет соединение.
func NewLinkCache(addr, password string, logger *zap.Logger) (*LinkCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &LinkCache{client: client, logger: logger}, nil
}

func (c *LinkCache) logUnavailable(err error) {
	c.logger.Warn("Redis недоступен, запрос идёт мимо кэша", zap.Error(err))
}

// Get возвращает (origin, ok). Для негативной записи origin == "" и ok == true.
// Ошибки Redis считаются промахом: кэш не должен ронять запрос.
func (c *LinkCache) Get(ctx context.Context, code string) (string, bool) {
	opctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := c.client.Get(opctx, keyPrefix+code).Result()
	if err != nil {
		// redis.Nil — обычный промах; недоступный Redis трактуем так же,
		// кэш не должен ронять запрос
		if !errors.Is(err, redis.Nil) {
			c.logUnavailable(err)
		}
		return "", false
	}
	if res == notFoundSentinel {
		return "", true
	}
	return res, true
}

// Set сохраняет положительную запись. Перекрывает негативный сентинел,
// чтобы только что созданный код сразу резолвился.
func (c *LinkCache) Set(ctx context.Context, code, origin string) {
	opctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_ = c.client.Set(opctx, keyPrefix+code, origin, ttl).Err()
}

// SetNotFound сохраняет негативную запись с коротким TTL (защита от
// повторных промахов в БД по несуществующим кодам).
func (c *LinkCache) SetNotFound(ctx context.Context, code string) {
	opctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_ = c.client.Set(opctx, keyPrefix+code, notFoundSentinel, emptyTTL).Err()
}

// Close закрывает соединение с Redis.
func (c *LinkCache) Close() error {
	return c.client.Close()
}
