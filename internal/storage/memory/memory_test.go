package memory

import (
	"context"
	"testing"
	"time"

	"github.com/h-rawat/book-api/internal/models"
	"github.com/h-rawat/book-api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo_SaveUser_Duplicate(t *testing.T) {
	r := New()
	ctx := context.Background()

	id, err := r.SaveUser(ctx, "a@b.com", []byte("hash"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = r.SaveUser(ctx, "a@b.com", []byte("hash"))
	assert.ErrorIs(t, err, storage.ErrUserExists)
}

func TestMemoryRepo_User_NotFound(t *testing.T) {
	_, err := New().User(context.Background(), "nobody@b.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestMemoryRepo_ResetPassword(t *testing.T) {
	r := New()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	uid, err := r.SaveUser(ctx, "a@b.com", []byte("old"))
	require.NoError(t, err)
	require.NoError(t, r.SetResetToken(ctx, uid, "tokhash", now.Add(time.Hour)))

	_, err = r.ResetPassword(ctx, "wrong", now, []byte("new"))
	assert.ErrorIs(t, err, storage.ErrResetTokenNotFound)

	got, err := r.ResetPassword(ctx, "tokhash", now, []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, uid, got)

	u, err := r.User(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), u.PassHash)
	assert.Nil(t, u.ResetTokenHash)
	assert.Nil(t, u.ResetTokenExpiresAt)

	_, err = r.ResetPassword(ctx, "tokhash", now, []byte("newer"))
	assert.ErrorIs(t, err, storage.ErrResetTokenNotFound)
}

func TestMemoryRepo_ResetPassword_ExpiryBoundary(t *testing.T) {
	r := New()
	ctx := context.Background()
	expiresAt := time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC)

	uid, err := r.SaveUser(ctx, "a@b.com", []byte("old"))
	require.NoError(t, err)
	require.NoError(t, r.SetResetToken(ctx, uid, "tokhash", expiresAt))

	_, err = r.ResetPassword(ctx, "tokhash", expiresAt, []byte("new"))
	assert.ErrorIs(t, err, storage.ErrResetTokenNotFound)

	_, err = r.ResetPassword(ctx, "tokhash", expiresAt.Add(time.Millisecond), []byte("new"))
	assert.ErrorIs(t, err, storage.ErrResetTokenNotFound)

	_, err = r.ResetPassword(ctx, "tokhash", expiresAt.Add(-time.Millisecond), []byte("new"))
	assert.NoError(t, err)
}

func TestMemoryRepo_SetResetToken_Supersedes(t *testing.T) {
	r := New()
	ctx := context.Background()
	now := time.Now()

	uid, err := r.SaveUser(ctx, "a@b.com", []byte("old"))
	require.NoError(t, err)
	require.NoError(t, r.SetResetToken(ctx, uid, "first", now.Add(time.Hour)))
	require.NoError(t, r.SetResetToken(ctx, uid, "second", now.Add(time.Hour)))

	_, err = r.ResetPassword(ctx, "first", now, []byte("new"))
	assert.ErrorIs(t, err, storage.ErrResetTokenNotFound)

	_, err = r.ResetPassword(ctx, "second", now, []byte("new"))
	assert.NoError(t, err)

	assert.ErrorIs(t, r.SetResetToken(ctx, 99, "x", now), storage.ErrUserNotFound)
}

func TestMemoryRepo_UserIsCopy(t *testing.T) {
	r := New()
	ctx := context.Background()

	_, err := r.SaveUser(ctx, "a@b.com", []byte("hash"))
	require.NoError(t, err)

	u, err := r.User(ctx, "a@b.com")
	require.NoError(t, err)
	u.PassHash[0] = 'X'

	again, err := r.User(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("hash"), again.PassHash)
}

func TestMemoryRepo_BookLifecycle(t *testing.T) {
	r := New()
	ctx := context.Background()
	year := 2023

	first, err := r.SaveBook(ctx, models.Book{Title: "One", Author: "A", PublishedYear: &year})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	second, err := r.SaveBook(ctx, models.Book{Title: "Two", Author: "B"})
	require.NoError(t, err)

	books, err := r.Books(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, first.ID, books[0].ID)
	assert.Equal(t, second.ID, books[1].ID)

	second.Title = "Two, revised"
	updated, err := r.UpdateBook(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "Two, revised", updated.Title)

	got, err := r.Book(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Two, revised", got.Title)

	require.NoError(t, r.DeleteBook(ctx, first.ID))
	assert.ErrorIs(t, r.DeleteBook(ctx, first.ID), storage.ErrBookNotFound)

	_, err = r.Book(ctx, first.ID)
	assert.ErrorIs(t, err, storage.ErrBookNotFound)

	_, err = r.UpdateBook(ctx, models.Book{ID: "missing"})
	assert.ErrorIs(t, err, storage.ErrBookNotFound)

	books, err = r.Books(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}
