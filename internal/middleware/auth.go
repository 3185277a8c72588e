package middleware

import (
	"net/http"
	"strings"

	"github.com/Totarae/LinkCut/internal/auth"
)

// parseBearer извлекает токен из заголовка Authorization.
// Возвращает пустую строку, если формат не "Bearer <token>".
func parseBearer(header string) string {
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return ""
	}
	return fields[1]
}

// AuthRequired пропускает только запросы с валидным bearer-токеном.
// id пользователя кладётся в контекст запроса.
func AuthRequired(tokens *auth.TokenManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := parseBearer(r.Header.Get("Authorization"))
			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			userID, err := tokens.Verify(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

// AuthOptional разбирает токен, если он есть; анонимные и невалидные
// запросы проходят дальше без identity. Никакого серверного
// "текущего пользователя" нет — только то, что принёс сам запрос.
func AuthOptional(tokens *auth.TokenManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := parseBearer(r.Header.Get("Authorization"))
			if token != "" {
				if userID, err := tokens.Verify(token); err == nil {
					r = r.WithContext(auth.WithUserID(r.Context(), userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
