package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

// HeaderBusinessID заголовок аутентификации бизнеса
// Валидацию токена выполняет API gateway, сюда приходит уже проверенный ID
const HeaderBusinessID = "X-Business-ID"

type businessIDKey struct{}

// Auth требует заголовок X-Business-ID с положительным числом
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderBusinessID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Business-ID")
			return
		}

		businessID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || businessID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-Business-ID")
			return
		}

		ctx := context.WithValue(r.Context(), businessIDKey{}, businessID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BusinessID возвращает ID бизнеса из контекста запроса
// Второе значение false означает, что запрос не прошёл через Auth
func BusinessID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(businessIDKey{}).(int64)
	return id, ok
}
