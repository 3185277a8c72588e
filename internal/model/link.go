package model

import "time"

// ShortLink представляет сопоставление короткого кода и оригинального URL.
// Код уникален и после создания не переиспользуется.
type ShortLink struct {
	ID      uint
	Code    string
	Origin  string
	UserID  string // пустая строка — анонимная ссылка
	Created time.Time
}
