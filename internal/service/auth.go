package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Totarae/LinkCut/internal/auth"
	"github.com/Totarae/LinkCut/internal/model"
	"github.com/Totarae/LinkCut/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidUsername — имя не проходит по длине (3..32 после trim).
	ErrInvalidUsername = errors.New("username is not allowed")
	// ErrInvalidPassword — пароль не проходит по длине (8..72, предел bcrypt).
	ErrInvalidPassword = errors.New("password is not allowed")
	// ErrInvalidCredentials — неизвестное имя или неверный пароль.
	// Причина не различается, чтобы исключить перебор имён.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService реализует регистрацию, вход и проверку токена.
type AuthService struct {
	Users  storage.UserStore
	Tokens *auth.TokenManager
	Hasher *Hasher
	Logger *zap.Logger
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(users storage.UserStore, tokens *auth.TokenManager, hasher *Hasher, logger *zap.Logger) *AuthService {
	return &AuthService{
		Users:  users,
		Tokens: tokens,
		Hasher: hasher,
		Logger: logger,
	}
}

// Register регистрирует пользователя и возвращает его id.
// Имена чувствительны к регистру, нормализация — только TrimSpace.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 32 {
		return "", ErrInvalidUsername
	}
	if len(password) < 8 || len(password) > 72 {
		return "", ErrInvalidPassword
	}

	hash, err := s.Hasher.Hash(ctx, password)
	if err != nil {
		return "", err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Created:      time.Now(),
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// Login проверяет учётные данные и выпускает токен сессии.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := s.Hasher.Compare(ctx, user.PasswordHash, password); err != nil {
		if errors.Is(err, ErrHashTimeout) {
			return "", err
		}
		return "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Sign(user.ID)
	if err != nil {
		s.Logger.Error("Не удалось подписать токен", zap.Error(err))
		return "", err
	}
	return token, nil
}

// Authenticate проверяет bearer-токен и возвращает id пользователя.
// Проверка stateless, обращений к хранилищу нет.
func (s *AuthService) Authenticate(token string) (string, error) {
	return s.Tokens.Verify(token)
}
