package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Totarae/LinkCut/internal/cache"
	"github.com/Totarae/LinkCut/internal/codegen"
	"github.com/Totarae/LinkCut/internal/model"
	"github.com/Totarae/LinkCut/internal/storage"
	"go.uber.org/zap"
)

// ErrInvalidURL — оригинальный URL синтаксически некорректен.
var ErrInvalidURL = errors.New("invalid url")

// ErrExhausted — бюджет повторов генерации кода исчерпан.
var ErrExhausted = errors.New("short code space exhausted")

// maxCodeAttempts ограничивает повторы generate+insert при коллизиях.
// Цикл конечный: после него create честно отвечает ошибкой, а не виснет.
const maxCodeAttempts = 5

// LinkService реализует сценарии создания, резолва и листинга ссылок.
type LinkService struct {
	Store   storage.LinkStore
	Cache   *cache.LinkCache // может быть nil
	Logger  *zap.Logger
	BaseURL string
}

// NewLinkService создаёт сервис ссылок. cache может быть nil.
func NewLinkService(store storage.LinkStore, linkCache *cache.LinkCache, logger *zap.Logger, baseURL string) *LinkService {
	return &LinkService{
		Store:   store,
		Cache:   linkCache,
		Logger:  logger,
		BaseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Create валидирует URL, генерирует код и атомарно вставляет запись.
// userID пустой для анонимного создания.
func (s *LinkService) Create(ctx context.Context, originalURL, userID string) (*model.ShortLink, error) {
	if err := validateURL(originalURL); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := codegen.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}

		link := &model.ShortLink{
			Code:    code,
			Origin:  originalURL,
			UserID:  userID,
			Created: time.Now(),
		}
		err = s.Store.SaveLink(ctx, link)
		if errors.Is(err, storage.ErrCodeTaken) {
			s.Logger.Info("Коллизия кода, повтор", zap.String("code", code), zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, err
		}

		// перекрываем возможный негативный сентинел
		if s.Cache != nil {
			s.Cache.Set(ctx, link.Code, link.Origin)
		}
		return link, nil
	}

	return nil, ErrExhausted
}

// Resolve возвращает оригинальный URL по коду: сначала кэш, затем хранилище.
func (s *LinkService) Resolve(ctx context.Context, code string) (string, error) {
	if s.Cache != nil {
		if origin, ok := s.Cache.Get(ctx, code); ok {
			if origin == "" {
				return "", storage.ErrLinkNotFound // негативный кэш
			}
			return origin, nil
		}
	}

	link, err := s.Store.GetLink(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrLinkNotFound) && s.Cache != nil {
			s.Cache.SetNotFound(ctx, code)
		}
		return "", err
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, code, link.Origin)
	}
	return link.Origin, nil
}

// ListByOwner возвращает ссылки пользователя, новые первыми.
// Пустой список — нормальный результат, не ошибка.
func (s *LinkService) ListByOwner(ctx context.Context, userID string) ([]*model.ShortLink, error) {
	links, err := s.Store.GetLinksByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if links == nil {
		links = []*model.ShortLink{}
	}
	return links, nil
}

// ShortURL собирает абсолютный короткий URL для ответа API.
func (s *LinkService) ShortURL(code string) string {
	return s.BaseURL + "/" + code
}

// Ping проверяет доступность хранилища.
func (s *LinkService) Ping(ctx context.Context) error {
	return s.Store.Ping(ctx)
}

// validateURL принимает только абсолютные http/https URL с хостом.
func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrInvalidURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	if strings.TrimSpace(u.Host) == "" {
		return ErrInvalidURL
	}
	return nil
}
