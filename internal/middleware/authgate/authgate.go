package authgate

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	resp "github.com/h-rawat/book-api/internal/lib/api/response"
	"github.com/h-rawat/book-api/internal/lib/jwt"
	sl "github.com/h-rawat/book-api/internal/lib/logger"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type ctxKey struct{}

type Verifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// New rejects requests without a well-formed "Bearer <token>" header with 401
// and requests whose token fails verification with 403. Verified claims are
// stored in the request context.
func New(log *slog.Logger, verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.authgate"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Info("missing bearer token")

				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("Access denied: token missing"))

				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				log.Info("token rejected", sl.Err(err))

				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, resp.Error("Invalid token"))

				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims attached by the gateway.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*jwt.Claims)
	return claims, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}

	return token, true
}
