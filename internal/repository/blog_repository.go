package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusclubs/club-blog-service/internal/domain"
)

// BlogRepository defines persistence access for member posts.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	Update(ctx context.Context, blog *domain.Blog) error
	GetByID(ctx context.Context, id string) (*domain.Blog, error)
	ListByStatus(ctx context.Context, status domain.BlogStatus, limit int) ([]*domain.Blog, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Blog, error)
}

type blogRepository struct {
	pool *pgxpool.Pool
}

// NewBlogRepository returns a Postgres-backed implementation.
func NewBlogRepository(pool *pgxpool.Pool) BlogRepository {
	return &blogRepository{pool: pool}
}

func (r *blogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	const query = `
        INSERT INTO blogs (author_id, title, content, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		blog.AuthorID,
		blog.Title,
		blog.Content,
		blog.Status,
	).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
}

func (r *blogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	const query = `
        UPDATE blogs SET title=$1, content=$2, status=$3, rejection_reason=$4, published_at=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		blog.Title,
		blog.Content,
		blog.Status,
		blog.RejectionReason,
		blog.PublishedAt,
		blog.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	const query = `
        SELECT b.id, b.author_id, u.name, b.title, b.content, b.status, b.rejection_reason,
               b.created_at, b.updated_at, b.published_at
        FROM blogs b JOIN users u ON u.id = b.author_id
        WHERE b.id=$1`

	var blog domain.Blog
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&blog.ID,
		&blog.AuthorID,
		&blog.AuthorName,
		&blog.Title,
		&blog.Content,
		&blog.Status,
		&blog.RejectionReason,
		&blog.CreatedAt,
		&blog.UpdatedAt,
		&blog.PublishedAt,
	); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) ListByStatus(ctx context.Context, status domain.BlogStatus, limit int) ([]*domain.Blog, error) {
	const query = `
        SELECT b.id, b.author_id, u.name, b.title, b.content, b.status, b.rejection_reason,
               b.created_at, b.updated_at, b.published_at
        FROM blogs b JOIN users u ON u.id = b.author_id
        WHERE b.status=$1 ORDER BY b.created_at DESC LIMIT $2`

	return r.list(ctx, query, status, limit)
}

func (r *blogRepository) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Blog, error) {
	const query = `
        SELECT b.id, b.author_id, u.name, b.title, b.content, b.status, b.rejection_reason,
               b.created_at, b.updated_at, b.published_at
        FROM blogs b JOIN users u ON u.id = b.author_id
        WHERE b.author_id=$1 ORDER BY b.created_at DESC LIMIT $2`

	return r.list(ctx, query, authorID, limit)
}

func (r *blogRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Blog, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []*domain.Blog
	for rows.Next() {
		var blog domain.Blog
		if err := rows.Scan(
			&blog.ID,
			&blog.AuthorID,
			&blog.AuthorName,
			&blog.Title,
			&blog.Content,
			&blog.Status,
			&blog.RejectionReason,
			&blog.CreatedAt,
			&blog.UpdatedAt,
			&blog.PublishedAt,
		); err != nil {
			return nil, err
		}
		blogs = append(blogs, &blog)
	}
	return blogs, rows.Err()
}
