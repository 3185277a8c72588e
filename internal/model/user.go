package model

import "time"

// User представляет зарегистрированного пользователя.
// Пароль хранится только в виде bcrypt-хэша.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Created      time.Time
}
