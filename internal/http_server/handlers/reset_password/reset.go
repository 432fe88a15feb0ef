package resetPassword

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

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Request struct {
	NewPassword string `json:"newPassword" example:"newpass1"`
}

type PasswordResetter interface {
	ResetPassword(ctx context.Context, in auth.ResetPasswordInput) error
}

// New godoc
// @Summary      Reset a password
// @Description  Sets a new password using the token from the reset e-mail. The token is
// @Description  consumed on success; unknown and expired tokens are rejected alike.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        token  path  string   true  "Reset token"
// @Param        body   body  Request  true  "New password"
// @Success      200  {object}  response.Response  "Password has been reset"
// @Failure      400  {object}  response.Response  "Invalid or expired token, or missing field"
// @Failure      500  {object}  response.Response  "Internal server error"
// @Router       /reset-password/{token} [post]
func New(log *slog.Logger, resetter PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.resetPassword.New"

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

		err := resetter.ResetPassword(ctx, auth.ResetPasswordInput{
			Token:       chi.URLParam(r, "token"),
			NewPassword: req.NewPassword,
		})
		if err != nil {
			var verr *auth.ValidationError

			switch {
			case errors.As(err, &verr):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.ValidationError(verr.Errors))
			case errors.Is(err, auth.ErrInvalidOrExpiredToken):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("Invalid or expired token"))
			default:
				log.Error("failed to reset password", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Internal server error"))
			}

			return
		}

		render.JSON(w, r, resp.Message("Password has been reset"))
	}
}
