package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/h-rawat/book-api/internal/auth"
	"github.com/h-rawat/book-api/internal/lib/api/request"
	resp "github.com/h-rawat/book-api/internal/lib/api/response"
	sl "github.com/h-rawat/book-api/internal/lib/logger"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Request struct {
	Username string `json:"username" example:"a@b.com"`
	Password string `json:"password" example:"secret1"`
}

type UserRegisterer interface {
	RegisterNewUser(ctx context.Context, in auth.RegisterInput) (int64, error)
}

// New godoc
// @Summary      Register a new user
// @Description  Creates an account. The username must be a valid e-mail address and the
// @Description  password at least 6 characters long; every violated rule is reported.
// @Description  A confirmation e-mail is queued after the account is stored.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  Request  true  "Credentials"
// @Success      201  {object}  response.Response  "Registration successful"
// @Failure      400  {object}  response.Response  "Validation failed"
// @Failure      409  {object}  response.Response  "Username already exists"
// @Failure      500  {object}  response.Response  "Internal server error"
// @Router       /register [post]
func New(log *slog.Logger, registerer UserRegisterer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.register.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := request.DecodeJSON(w, r, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		_, err := registerer.RegisterNewUser(ctx, auth.RegisterInput{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			var verr *auth.ValidationError

			switch {
			case errors.As(err, &verr):
				log.Info("Invalid request", sl.Err(err))

				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.ValidationError(verr.Errors))
			case errors.Is(err, auth.ErrUserExists):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, resp.Error("Username already exists"))
			default:
				log.Error("failed to register user", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Internal server error"))
			}

			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, resp.Message("Registration successful"))
	}
}
