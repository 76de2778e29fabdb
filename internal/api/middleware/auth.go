package middleware

import (
	"context"
	"net/http"

	"github.com/spotbook/appointment-service/internal/api/handlers"
)

// HeaderAccountID заголовок с идентификатором аккаунта
// Аутентификацию выполняет внешний identity provider; сервис доверяет
// заголовку, проставленному шлюзом
const HeaderAccountID = "X-Account-ID"

type accountIDKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth требует наличия заголовка X-Account-ID и кладет его в контекст
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID := r.Header.Get(HeaderAccountID)
			if accountID == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, HeaderAccountID)
				handlers.RespondUnauthorized(w, "account id header is required")
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey{}, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountIDFromContext возвращает ID аккаунта, положенный Auth middleware
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey{}).(string)
	return id, ok
}
