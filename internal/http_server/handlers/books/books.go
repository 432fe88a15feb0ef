package books

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/h-rawat/book-api/internal/catalog"
	"github.com/h-rawat/book-api/internal/lib/api/request"
	resp "github.com/h-rawat/book-api/internal/lib/api/response"
	sl "github.com/h-rawat/book-api/internal/lib/logger"
	"github.com/h-rawat/book-api/internal/models"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Catalog interface {
	ParseBookInput(raw []byte) (catalog.BookInput, error)
	List(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id string) (models.Book, error)
	Create(ctx context.Context, in catalog.BookInput) (models.Book, error)
	Update(ctx context.Context, id string, in catalog.BookInput) (models.Book, error)
	Delete(ctx context.Context, id string) error
}

// List godoc
// @Summary      List books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Book
// @Failure      401  {object}  response.Response  "Access denied: token missing"
// @Failure      403  {object}  response.Response  "Invalid token"
// @Failure      500  {object}  response.Response  "Internal server error"
// @Router       /api/books [get]
func List(log *slog.Logger, c Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.books.List"

		log := requestLogger(log, r, op)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		books, err := c.List(ctx)
		if err != nil {
			fail(w, r, log, err)
			return
		}

		render.JSON(w, r, books)
	}
}

// Get godoc
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  models.Book
// @Failure      401  {object}  response.Response  "Access denied: token missing"
// @Failure      403  {object}  response.Response  "Invalid token"
// @Failure      404  {object}  response.Response  "Book not found"
// @Failure      500  {object}  response.Response  "Internal server error"
// @Router       /api/books/{id} [get]
func Get(log *slog.Logger, c Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.books.Get"

		log := requestLogger(log, r, op)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		book, err := c.Get(ctx, chi.URLParam(r, "id"))
		if err != nil {
			fail(w, r, log, err)
			return
		}

		render.JSON(w, r, book)
	}
}

// Create godoc
// @Summary      Create a book
// @Description  title and author are required; publishedYear must be a non-negative
// @Description  integer and genre a string when present. All violations are reported.
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      catalog.BookInput  true  "Book"
// @Success      201   {object}  models.Book
// @Failure      400   {object}  response.Response  "Validation failed"
// @Failure      401   {object}  response.Response  "Access denied: token missing"
// @Failure      403   {object}  response.Response  "Invalid token"
// @Failure      500   {object}  response.Response  "Internal server error"
// @Router       /api/books [post]
func Create(log *slog.Logger, c Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.books.Create"

		log := requestLogger(log, r, op)

		in, ok := parse(w, r, log, c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		book, err := c.Create(ctx, in)
		if err != nil {
			fail(w, r, log, err)
			return
		}

		log.Info("book created", slog.String("book_id", book.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, book)
	}
}

// Update godoc
// @Summary      Replace a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Book ID"
// @Param        body  body      catalog.BookInput  true  "Book"
// @Success      200   {object}  models.Book
// @Failure      400   {object}  response.Response  "Validation failed"
// @Failure      401   {object}  response.Response  "Access denied: token missing"
// @Failure      403   {object}  response.Response  "Invalid token"
// @Failure      404   {object}  response.Response  "Book not found"
// @Failure      500   {object}  response.Response  "Internal server error"
// @Router       /api/books/{id} [put]
func Update(log *slog.Logger, c Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.books.Update"

		log := requestLogger(log, r, op)

		in, ok := parse(w, r, log, c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		book, err := c.Update(ctx, chi.URLParam(r, "id"), in)
		if err != nil {
			fail(w, r, log, err)
			return
		}

		render.JSON(w, r, book)
	}
}

// Delete godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  response.Response  "Book deleted"
// @Failure      401  {object}  response.Response  "Access denied: token missing"
// @Failure      403  {object}  response.Response  "Invalid token"
// @Failure      404  {object}  response.Response  "Book not found"
// @Failure      500  {object}  response.Response  "Internal server error"
// @Router       /api/books/{id} [delete]
func Delete(log *slog.Logger, c Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.books.Delete"

		log := requestLogger(log, r, op)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id := chi.URLParam(r, "id")

		if err := c.Delete(ctx, id); err != nil {
			fail(w, r, log, err)
			return
		}

		log.Info("book deleted", slog.String("book_id", id))

		render.JSON(w, r, resp.Message("Book deleted"))
	}
}

func requestLogger(log *slog.Logger, r *http.Request, op string) *slog.Logger {
	return log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func parse(w http.ResponseWriter, r *http.Request, log *slog.Logger, c Catalog) (catalog.BookInput, bool) {
	body, err := request.ReadBody(w, r)
	if err != nil {
		log.Error("Failed to read request body", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp.Error("Failed to decode request"))

		return catalog.BookInput{}, false
	}

	in, err := c.ParseBookInput(body)
	if err != nil {
		fail(w, r, log, err)
		return catalog.BookInput{}, false
	}

	return in, true
}

func fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var verr *catalog.ValidationError

	switch {
	case errors.As(err, &verr):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp.ValidationError(verr.Errors))
	case errors.Is(err, catalog.ErrBookNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, resp.Error("Book not found"))
	default:
		log.Error("catalog request failed", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, resp.Error("Internal server error"))
	}
}
