// Package auth выпускает и проверяет bearer-токены сессий.
//
// Сессии stateless: HS256 JWT с issuer, sub (id пользователя), exp и jti.
// Сервер не хранит состояние сессии, поэтому проверка токена не создаёт
// узких мест на горячем пути. jti оставлен на случай появления deny-list.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken — токен отсутствует, подделан, просрочен или выдан не нами.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager подписывает и проверяет токены одним секретом.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager валидирует параметры и создаёт менеджер токенов.
func NewTokenManager(secret, issuer string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("auth: secret is empty")
	}
	if issuer == "" {
		return nil, errors.New("auth: issuer is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: ttl must be > 0")
	}
	return &TokenManager{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

// Sign выпускает токен для пользователя.
func (m *TokenManager) Sign(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("auth: empty user id")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		ID:        uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return token, nil
}

// Verify проверяет токен и возвращает id пользователя.
// Любая причина отказа сворачивается в ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
