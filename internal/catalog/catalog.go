package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	sl "github.com/h-rawat/book-api/internal/lib/logger"
	"github.com/h-rawat/book-api/internal/lib/validation"
	"github.com/h-rawat/book-api/internal/models"
	"github.com/h-rawat/book-api/internal/storage"

	"github.com/go-playground/validator/v10"
)

var ErrBookNotFound = errors.New("book not found")

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

type BookStore interface {
	Books(ctx context.Context) ([]models.Book, error)
	Book(ctx context.Context, id string) (models.Book, error)
	SaveBook(ctx context.Context, b models.Book) (models.Book, error)
	UpdateBook(ctx context.Context, b models.Book) (models.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// BookInput is the validated body of a create or update request.
type BookInput struct {
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	PublishedYear *int    `json:"publishedYear"`
	Genre         *string `json:"genre"`
}

type Catalog struct {
	log      *slog.Logger
	validate *validator.Validate
	store    BookStore
}

func New(log *slog.Logger, validate *validator.Validate, store BookStore) *Catalog {
	return &Catalog{
		log:      log,
		validate: validate,
		store:    store,
	}
}

// ParseBookInput decodes a JSON object, checking field types and required
// fields together so that every problem is reported at once.
func (c *Catalog) ParseBookInput(raw []byte) (BookInput, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return BookInput{}, &ValidationError{Errors: []string{"request body must be a JSON object"}}
	}

	var (
		in   BookInput
		errs []string
	)

	if v, ok := present(fields, "title"); ok {
		if err := json.Unmarshal(v, &in.Title); err != nil {
			errs = append(errs, "title must be a string")
		}
	}

	if v, ok := present(fields, "author"); ok {
		if err := json.Unmarshal(v, &in.Author); err != nil {
			errs = append(errs, "author must be a string")
		}
	}

	if err := c.validate.Struct(in); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			for _, fe := range validateErrs {
				if !typeErrorReported(errs, fe.Field()) {
					errs = append(errs, validation.Messages(validator.ValidationErrors{fe})...)
				}
			}
		}
	}

	if v, ok := present(fields, "publishedYear"); ok {
		year, valid := nonNegativeInt(v)
		if !valid {
			errs = append(errs, "publishedYear must be a non-negative integer")
		} else {
			in.PublishedYear = &year
		}
	}

	if v, ok := present(fields, "genre"); ok {
		var genre string
		if err := json.Unmarshal(v, &genre); err != nil {
			errs = append(errs, "genre must be a string if provided")
		} else {
			in.Genre = &genre
		}
	}

	if len(errs) > 0 {
		return BookInput{}, &ValidationError{Errors: errs}
	}

	return in, nil
}

func (c *Catalog) List(ctx context.Context) ([]models.Book, error) {
	const op = "catalog.List"

	books, err := c.store.Books(ctx)
	if err != nil {
		c.log.Error("failed to list books", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return books, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (models.Book, error) {
	const op = "catalog.Get"

	b, err := c.store.Book(ctx, id)
	if err != nil {
		return models.Book{}, c.wrap(op, err)
	}

	return b, nil
}

func (c *Catalog) Create(ctx context.Context, in BookInput) (models.Book, error) {
	const op = "catalog.Create"

	b, err := c.store.SaveBook(ctx, in.book(""))
	if err != nil {
		return models.Book{}, c.wrap(op, err)
	}

	c.log.Info("book created", slog.String("op", op), slog.String("book_id", b.ID))

	return b, nil
}

// Update replaces every field of the book with id.
func (c *Catalog) Update(ctx context.Context, id string, in BookInput) (models.Book, error) {
	const op = "catalog.Update"

	b, err := c.store.UpdateBook(ctx, in.book(id))
	if err != nil {
		return models.Book{}, c.wrap(op, err)
	}

	c.log.Info("book updated", slog.String("op", op), slog.String("book_id", id))

	return b, nil
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	const op = "catalog.Delete"

	if err := c.store.DeleteBook(ctx, id); err != nil {
		return c.wrap(op, err)
	}

	c.log.Info("book deleted", slog.String("op", op), slog.String("book_id", id))

	return nil
}

func (c *Catalog) wrap(op string, err error) error {
	if errors.Is(err, storage.ErrBookNotFound) {
		return fmt.Errorf("%s: %w", op, ErrBookNotFound)
	}

	c.log.Error("book store failure", slog.String("op", op), sl.Err(err))

	return fmt.Errorf("%s: %w", op, err)
}

func (in BookInput) book(id string) models.Book {
	return models.Book{
		ID:            id,
		Title:         in.Title,
		Author:        in.Author,
		PublishedYear: in.PublishedYear,
		Genre:         in.Genre,
	}
}

// present treats JSON null the same as an absent field.
func present(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := fields[key]
	if !ok || string(v) == "null" {
		return nil, false
	}

	return v, true
}

func nonNegativeInt(raw json.RawMessage) (int, bool) {
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}

	if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, false
	}

	return int(n), true
}

func typeErrorReported(errs []string, field string) bool {
	for _, e := range errs {
		if strings.HasPrefix(e, field+" ") {
			return true
		}
	}

	return false
}
