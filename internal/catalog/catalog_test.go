package catalog

import (
	"context"
	"errors"
	"testing"

	sl "github.com/h-rawat/book-api/internal/lib/logger"
	"github.com/h-rawat/book-api/internal/lib/validation"
	"github.com/h-rawat/book-api/internal/models"
	"github.com/h-rawat/book-api/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog() *Catalog {
	return New(sl.NewDiscardLogger(), validation.New(), memory.New())
}

func TestParseBookInput_Valid(t *testing.T) {
	c := newTestCatalog()

	in, err := c.ParseBookInput([]byte(`{"title":"The Great Book","author":"Jane Doe","publishedYear":2023,"genre":"Fiction"}`))
	require.NoError(t, err)

	assert.Equal(t, "The Great Book", in.Title)
	assert.Equal(t, "Jane Doe", in.Author)
	require.NotNil(t, in.PublishedYear)
	assert.Equal(t, 2023, *in.PublishedYear)
	require.NotNil(t, in.Genre)
	assert.Equal(t, "Fiction", *in.Genre)
}

func TestParseBookInput_OptionalFieldsAbsent(t *testing.T) {
	c := newTestCatalog()

	in, err := c.ParseBookInput([]byte(`{"title":"T","author":"A","genre":null}`))
	require.NoError(t, err)

	assert.Nil(t, in.PublishedYear)
	assert.Nil(t, in.Genre)
}

func TestParseBookInput_CollectsAllErrors(t *testing.T) {
	c := newTestCatalog()

	_, err := c.ParseBookInput([]byte(`{"publishedYear":-1,"genre":5}`))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"title is required",
		"author is required",
		"publishedYear must be a non-negative integer",
		"genre must be a string if provided",
	}, verr.Errors)
}

func TestParseBookInput_YearChecks(t *testing.T) {
	c := newTestCatalog()

	cases := map[string]bool{
		`0`:      true,
		`1999`:   true,
		`1999.5`: false,
		`-3`:     false,
		`"1999"`: false,
		`true`:   false,
	}

	for year, ok := range cases {
		_, err := c.ParseBookInput([]byte(`{"title":"T","author":"A","publishedYear":` + year + `}`))
		if ok {
			assert.NoError(t, err, "year %s", year)
		} else {
			assert.Error(t, err, "year %s", year)
		}
	}
}

func TestParseBookInput_WrongTitleType(t *testing.T) {
	c := newTestCatalog()

	_, err := c.ParseBookInput([]byte(`{"title":42,"author":"A"}`))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"title must be a string"}, verr.Errors)
}

func TestParseBookInput_NotAnObject(t *testing.T) {
	c := newTestCatalog()

	for _, body := range []string{``, `[]`, `null`, `"x"`} {
		_, err := c.ParseBookInput([]byte(body))

		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), "body %q", body)
	}
}

func TestCatalog_CRUD(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()

	created, err := c.Create(ctx, BookInput{Title: "T", Author: "A"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	genre := "Nonfiction"
	updated, err := c.Update(ctx, created.ID, BookInput{Title: "T2", Author: "A2", Genre: &genre})
	require.NoError(t, err)
	assert.Equal(t, models.Book{ID: created.ID, Title: "T2", Author: "A2", Genre: &genre}, updated)

	books, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)

	require.NoError(t, c.Delete(ctx, created.ID))

	_, err = c.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = c.Update(ctx, created.ID, BookInput{Title: "T", Author: "A"})
	assert.ErrorIs(t, err, ErrBookNotFound)

	assert.ErrorIs(t, c.Delete(ctx, created.ID), ErrBookNotFound)
}
