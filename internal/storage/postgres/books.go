package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/h-rawat/book-api/internal/models"
	"github.com/h-rawat/book-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *PostgresRepo) Books(ctx context.Context) ([]models.Book, error) {
	const op = "storage.postgres.Books"

	query := `
		SELECT id::text, title, author, published_year, genre
		FROM books
		ORDER BY created_at, id;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	books := make([]models.Book, 0)

	for rows.Next() {
		var b models.Book

		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.PublishedYear, &b.Genre); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return books, nil
}

func (r *PostgresRepo) Book(ctx context.Context, id string) (models.Book, error) {
	const op = "storage.postgres.Book"

	bookID, err := uuid.Parse(id)
	if err != nil {
		return models.Book{}, storage.ErrBookNotFound
	}

	query := `
		SELECT id::text, title, author, published_year, genre
		FROM books
		WHERE id = $1;
	`

	var b models.Book

	err = r.db.QueryRow(ctx, query, bookID).Scan(&b.ID, &b.Title, &b.Author, &b.PublishedYear, &b.Genre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Book{}, storage.ErrBookNotFound
		}

		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

func (r *PostgresRepo) SaveBook(ctx context.Context, b models.Book) (models.Book, error) {
	const op = "storage.postgres.SaveBook"

	query := `
		INSERT INTO books (id, title, author, published_year, genre)
		VALUES ($1, $2, $3, $4, $5);
	`

	id := uuid.New()

	if _, err := r.db.Exec(ctx, query, id, b.Title, b.Author, b.PublishedYear, b.Genre); err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	b.ID = id.String()

	return b, nil
}

func (r *PostgresRepo) UpdateBook(ctx context.Context, b models.Book) (models.Book, error) {
	const op = "storage.postgres.UpdateBook"

	bookID, err := uuid.Parse(b.ID)
	if err != nil {
		return models.Book{}, storage.ErrBookNotFound
	}

	query := `
		UPDATE books
		SET title = $1, author = $2, published_year = $3, genre = $4
		WHERE id = $5;
	`

	ct, err := r.db.Exec(ctx, query, b.Title, b.Author, b.PublishedYear, b.Genre, bookID)
	if err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	if ct.RowsAffected() == 0 {
		return models.Book{}, storage.ErrBookNotFound
	}

	return b, nil
}

func (r *PostgresRepo) DeleteBook(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteBook"

	bookID, err := uuid.Parse(id)
	if err != nil {
		return storage.ErrBookNotFound
	}

	ct, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, bookID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if ct.RowsAffected() == 0 {
		return storage.ErrBookNotFound
	}

	return nil
}
