package forgotPassword

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
	Email string `json:"email" example:"a@b.com"`
}

type ResetRequester interface {
	ForgotPassword(ctx context.Context, in auth.ForgotPasswordInput) error
}

// New godoc
// @Summary      Request a password reset
// @Description  Issues a single-use reset token valid for one hour and e-mails it to the
// @Description  account address. Requesting again replaces any outstanding token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  Request  true  "Account e-mail"
// @Success      200  {object}  response.Response  "Reset e-mail sent"
// @Failure      400  {object}  response.Response  "Email is required"
// @Failure      404  {object}  response.Response  "User not found"
// @Failure      500  {object}  response.Response  "Internal server error"
// @Router       /forgot-password [post]
func New(log *slog.Logger, requester ResetRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.forgotPassword.New"

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

		err := requester.ForgotPassword(ctx, auth.ForgotPasswordInput{Email: req.Email})
		if err != nil {
			var verr *auth.ValidationError

			switch {
			case errors.As(err, &verr):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.ValidationError(verr.Errors))
			case errors.Is(err, auth.ErrUserNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("User not found"))
			default:
				log.Error("failed to start password reset", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Internal server error"))
			}

			return
		}

		render.JSON(w, r, resp.Message("Password reset email sent"))
	}
}
