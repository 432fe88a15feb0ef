package memory

import (
	"context"
	"sync"
	"time"

	"github.com/h-rawat/book-api/internal/models"
	"github.com/h-rawat/book-api/internal/storage"

	"github.com/google/uuid"
)

// MemoryRepo keeps users and books in process memory. All operations hold a
// single mutex, so each call is atomic with respect to the others.
type MemoryRepo struct {
	mu sync.Mutex

	nextUserID int64
	users      map[string]*models.User

	books     map[string]models.Book
	bookOrder []string
}

func New() *MemoryRepo {
	return &MemoryRepo{
		users: make(map[string]*models.User),
		books: make(map[string]models.Book),
	}
}

func (r *MemoryRepo) SaveUser(_ context.Context, username string, passHash []byte) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; ok {
		return 0, storage.ErrUserExists
	}

	r.nextUserID++

	r.users[username] = &models.User{
		ID:        r.nextUserID,
		Username:  username,
		PassHash:  append([]byte(nil), passHash...),
		CreatedAt: time.Now().UTC(),
	}

	return r.nextUserID, nil
}

func (r *MemoryRepo) User(_ context.Context, username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[username]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}

	return copyUser(u), nil
}

func (r *MemoryRepo) SetResetToken(_ context.Context, uid int64, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == uid {
			u.ResetTokenHash = &tokenHash
			u.ResetTokenExpiresAt = &expiresAt
			return nil
		}
	}

	return storage.ErrUserNotFound
}

func (r *MemoryRepo) ResetPassword(_ context.Context, tokenHash string, now time.Time, passHash []byte) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.HasPendingReset(now) && *u.ResetTokenHash == tokenHash {
			u.PassHash = append([]byte(nil), passHash...)
			u.ResetTokenHash = nil
			u.ResetTokenExpiresAt = nil
			return u.ID, nil
		}
	}

	return 0, storage.ErrResetTokenNotFound
}

func (r *MemoryRepo) Books(_ context.Context) ([]models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := make([]models.Book, 0, len(r.bookOrder))
	for _, id := range r.bookOrder {
		books = append(books, r.books[id])
	}

	return books, nil
}

func (r *MemoryRepo) Book(_ context.Context, id string) (models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return models.Book{}, storage.ErrBookNotFound
	}

	return b, nil
}

func (r *MemoryRepo) SaveBook(_ context.Context, b models.Book) (models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = uuid.NewString()

	r.books[b.ID] = b
	r.bookOrder = append(r.bookOrder, b.ID)

	return b, nil
}

func (r *MemoryRepo) UpdateBook(_ context.Context, b models.Book) (models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[b.ID]; !ok {
		return models.Book{}, storage.ErrBookNotFound
	}

	r.books[b.ID] = b

	return b, nil
}

func (r *MemoryRepo) DeleteBook(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return storage.ErrBookNotFound
	}

	delete(r.books, id)

	for i, bid := range r.bookOrder {
		if bid == id {
			r.bookOrder = append(r.bookOrder[:i], r.bookOrder[i+1:]...)
			break
		}
	}

	return nil
}

func (r *MemoryRepo) Close() {}

func copyUser(u *models.User) models.User {
	c := *u
	c.PassHash = append([]byte(nil), u.PassHash...)

	if u.ResetTokenHash != nil {
		h := *u.ResetTokenHash
		c.ResetTokenHash = &h
	}

	if u.ResetTokenExpiresAt != nil {
		t := *u.ResetTokenExpiresAt
		c.ResetTokenExpiresAt = &t
	}

	return c
}
