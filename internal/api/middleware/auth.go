package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/jwtauth"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "доступ запрещен"
)

// ErrNoPrincipal в контексте нет аутентифицированного вызывающего
var ErrNoPrincipal = errors.New("middleware: no principal in context")

type ctxKey string

const principalKey ctxKey = "principal"

// TokenParser проверяет значение заголовка Authorization
type TokenParser interface {
	ParseBearer(header string) (*jwtauth.Claims, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// WithPrincipal кладет вызывающего в контекст
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext достает вызывающего, положенного Auth
func PrincipalFromContext(ctx context.Context) (domain.Principal, error) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	if !ok || p.BusinessID <= 0 {
		return domain.Principal{}, ErrNoPrincipal
	}
	return p, nil
}

// Auth пропускает только запросы с валидным Bearer токеном владельца бизнеса
func Auth(tokens TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tokens.ParseBearer(r.Header.Get("Authorization"))
			if err != nil {
				logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			if claims.Role != domain.RoleBusinessAdmin || claims.BusinessID <= 0 {
				logger.Warn("%s %s - Forbidden: user_id=%d, role=%q", r.Method, r.URL.Path, claims.UserID, claims.Role)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			ctx := WithPrincipal(r.Context(), domain.Principal{
				UserID:     claims.UserID,
				BusinessID: claims.BusinessID,
				Email:      claims.Email,
				Role:       claims.Role,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
