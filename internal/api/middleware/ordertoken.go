package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
)

// HeaderOrderToken заголовок с токеном активного заказа покупателя
const HeaderOrderToken = "X-Order-Token"

type ctxKey int

const orderTokenKey ctxKey = iota

const msgMissingOrderToken = "отсутствует заголовок X-Order-Token"

// OrderToken middleware требует заголовок X-Order-Token и кладет его
// значение в контекст запроса
// Корзина передается явным токеном, а не ambient-сессией
func OrderToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(HeaderOrderToken)
		if token == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingOrderToken)
			return
		}

		ctx := context.WithValue(r.Context(), orderTokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OrderTokenFromContext возвращает токен заказа из контекста запроса
// Пустая строка означает, что middleware не применялся (публичный маршрут)
func OrderTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(orderTokenKey).(string); ok {
		return token
	}
	return ""
}

// OptionalOrderToken кладет токен в контекст, если заголовок передан,
// но не требует его - для публичных read-only маршрутов, где токен
// лишь уточняет результат (исключение собственного слота)
func OptionalOrderToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(HeaderOrderToken)
		if token != "" {
			ctx := context.WithValue(r.Context(), orderTokenKey, token)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
