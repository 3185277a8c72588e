package auth

import "context"

type identityKey struct{}

// WithUserID кладёт id аутентифицированного пользователя в контекст запроса.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, identityKey{}, userID)
}

// UserID достаёт id пользователя из контекста.
// ok == false означает анонимный запрос.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(identityKey{}).(string)
	return userID, ok && userID != ""
}
