package model

import "time"

// ShortenRequest представляет структуру запроса на сокращение URL.
type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortenResponse представляет структуру ответа с сокращённым URL.
type ShortenResponse struct {
	Code     string `json:"code"`
	ShortURL string `json:"short_url"`
}

// RegisterRequest представляет запрос на регистрацию пользователя.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse возвращается после успешной регистрации.
type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginRequest представляет запрос на вход.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse содержит bearer-токен сессии.
type LoginResponse struct {
	Token string `json:"token"`
}

// UserLink — одна ссылка пользователя в ответе GET /api/v1/users/mine.
type UserLink struct {
	Code    string    `json:"code"`
	URL     string    `json:"url"`
	Created time.Time `json:"created_at"`
}
