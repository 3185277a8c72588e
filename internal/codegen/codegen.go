// Package codegen генерирует короткие коды ссылок.
//
// Генерация случайная (crypto/rand), без общего счётчика: несколько
// воркеров могут генерировать коды параллельно без координации.
// Коллизии разрешаются на уровне хранилища (atomic insert-if-absent
// с ограниченным числом повторов).
package codegen

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CodeLength — длина короткого кода. 62^7 ≈ 3.5e12 вариантов,
// вероятность коллизии при ожидаемом объёме корпуса пренебрежимо мала.
const CodeLength = 7

var codeRe = regexp.MustCompile(fmt.Sprintf(`^[0-9a-zA-Z]{%d}$`, CodeLength))

// Generate возвращает случайный base62-код длиной CodeLength.
func Generate() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("codegen: read random: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}

// Valid сообщает, может ли строка быть кодом, выданным Generate.
// Позволяет отсечь заведомо чужие пути до похода в хранилище.
func Valid(code string) bool {
	return codeRe.MatchString(code)
}
