package router

import (
	"log/slog"
	"net/http"

	_ "github.com/h-rawat/book-api/docs"
	"github.com/h-rawat/book-api/internal/http_server/handlers/books"
	forgotPassword "github.com/h-rawat/book-api/internal/http_server/handlers/forgot_password"
	"github.com/h-rawat/book-api/internal/http_server/handlers/login"
	"github.com/h-rawat/book-api/internal/http_server/handlers/register"
	resetPassword "github.com/h-rawat/book-api/internal/http_server/handlers/reset_password"
	resp "github.com/h-rawat/book-api/internal/lib/api/response"
	"github.com/h-rawat/book-api/internal/middleware/authgate"
	"github.com/h-rawat/book-api/internal/middleware/metrics"
	rateLimit "github.com/h-rawat/book-api/internal/middleware/ratelimit"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Accounts interface {
	register.UserRegisterer
	login.UserAuthenticator
	forgotPassword.ResetRequester
	resetPassword.PasswordResetter
}

type Deps struct {
	Log                *slog.Logger
	Accounts           Accounts
	Catalog            books.Catalog
	Verifier           authgate.Verifier
	CORSAllowedOrigins []string
}

func New(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Prometheus)
	r.Use(middleware.Heartbeat("/ping"))

	if len(d.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: d.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.With(rateLimit.Register()).Post("/register", register.New(d.Log, d.Accounts))
	r.With(rateLimit.Login()).Post("/login", login.New(d.Log, d.Accounts))
	r.With(rateLimit.ForgotPassword()).Post("/forgot-password", forgotPassword.New(d.Log, d.Accounts))
	r.With(rateLimit.ResetPassword()).Post("/reset-password/{token}", resetPassword.New(d.Log, d.Accounts))

	r.Route("/api/books", func(r chi.Router) {
		r.Use(authgate.New(d.Log, d.Verifier))

		r.Get("/", books.List(d.Log, d.Catalog))
		r.Post("/", books.Create(d.Log, d.Catalog))
		r.Get("/{id}", books.Get(d.Log, d.Catalog))
		r.Put("/{id}", books.Update(d.Log, d.Catalog))
		r.Delete("/{id}", books.Delete(d.Log, d.Catalog))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, resp.Error("Not found"))
	})

	return r
}
