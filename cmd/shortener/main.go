package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Totarae/LinkCut/internal/auth"
	"github.com/Totarae/LinkCut/internal/cache"
	"github.com/Totarae/LinkCut/internal/config"
	"github.com/Totarae/LinkCut/internal/database"
	"github.com/Totarae/LinkCut/internal/handlers"
	"github.com/Totarae/LinkCut/internal/repositories"
	"github.com/Totarae/LinkCut/internal/router"
	"github.com/Totarae/LinkCut/internal/service"
	"github.com/Totarae/LinkCut/internal/storage"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Инициализация конфигурации
	cfg := config.NewConfig()

	tokens, err := auth.NewTokenManager(cfg.AuthSecret, cfg.TokenIssuer, cfg.TokenTTL)
	if err != nil {
		logger.Fatal("Ошибка инициализации токенов", zap.Error(err))
	}

	hasher := service.NewHasher(cfg.HashWorkers)
	defer hasher.Close()

	// Выбор хранилища по режиму
	var (
		linkStore storage.LinkStore
		userStore storage.UserStore
	)
	if cfg.Mode == "database" {
		db, err := database.NewDB(cfg.DatabaseDSN, logger)
		if err != nil {
			logger.Fatal("Ошибка подключения к БД", zap.Error(err))
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			logger.Fatal("Ошибка применения миграций", zap.Error(err))
		}

		linkStore = repositories.NewLinkRepository(db)
		userStore = repositories.NewUserRepository(db)
	} else {
		logger.Info("БД не настроена, используется in-memory хранилище")
		linkStore = storage.NewMemoryLinkStore()
		userStore = storage.NewMemoryUserStore()
	}

	var linkCache *cache.LinkCache
	if cfg.RedisAddr != "" {
		linkCache, err = cache.NewLinkCache(cfg.RedisAddr, cfg.RedisPassword, logger)
		if err != nil {
			logger.Fatal("Ошибка подключения к Redis", zap.Error(err))
		}
		defer linkCache.Close()
	}

	links := service.NewLinkService(linkStore, linkCache, logger, cfg.BaseURL)
	authSvc := service.NewAuthService(userStore, tokens, hasher, logger)

	handler := handlers.NewHandler(links, authSvc, logger)
	r := router.NewRouter(handler, tokens, logger)

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Сервер запущен", zap.String("address", cfg.ServerAddress))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка при запуске сервера", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("Останавливаем сервер")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Ошибка при остановке сервера", zap.Error(err))
		}
	}
}
