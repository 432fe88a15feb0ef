package login

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

type Response struct {
	resp.Response
	Token string `json:"token"`
}

type UserAuthenticator interface {
	Login(ctx context.Context, in auth.LoginInput) (string, error)
}

// New godoc
// @Summary      Log in
// @Description  Exchanges credentials for a bearer token valid for two hours.
// @Description  Unknown usernames and wrong passwords produce the same response.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  Request  true  "Credentials"
// @Success      200  {object}  Response  "Session token"
// @Failure      400  {object}  response.Response  "Validation failed"
// @Failure      401  {object}  response.Response  "Invalid credentials"
// @Failure      500  {object}  response.Response  "Internal server error"
// @Router       /login [post]
func New(log *slog.Logger, authenticator UserAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"

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

		token, err := authenticator.Login(ctx, auth.LoginInput{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			var verr *auth.ValidationError

			switch {
			case errors.As(err, &verr):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.ValidationError(verr.Errors))
			case errors.Is(err, auth.ErrInvalidCredentials):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("Invalid credentials"))
			default:
				log.Error("failed to login user", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Internal server error"))
			}

			return
		}

		ResponseOK(w, r, token)
	}
}

func ResponseOK(w http.ResponseWriter, r *http.Request, token string) {
	render.JSON(w, r, Response{
		Response: resp.OK(),
		Token:    token,
	})
}
