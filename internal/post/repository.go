// AngelaMos | 2026
// repository.go

package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fundlift/backend/internal/core"
)

const postColumns = `
	id, author_id, title, content, post_type, is_fundable,
	likes_count, views_count, is_public, status, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	GetByIDAndBumpViews(ctx context.Context, id int64) (*Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params ListPostsParams) ([]Post, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO posts (
			author_id, title, content, post_type, is_fundable,
			is_public, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING id, likes_count, views_count, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		post.AuthorID,
		post.Title,
		post.Content,
		post.PostType,
		post.IsFundable,
		post.IsPublic,
		post.Status,
	).Scan(
		&post.ID,
		&post.LikesCount,
		&post.ViewsCount,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Post, error) {
	query := `SELECT` + postColumns + `
		FROM posts
		WHERE id = $1`

	var post Post
	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

func (r *repository) GetByIDAndBumpViews(
	ctx context.Context,
	id int64,
) (*Post, error) {
	query := `
		UPDATE posts
		SET views_count = views_count + 1
		WHERE id = $1
		RETURNING` + postColumns

	var post Post
	err := r.db.QueryRowxContext(ctx, query, id).StructScan(&post)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

func (r *repository) Update(ctx context.Context, post *Post) error {
	query := `
		UPDATE posts
		SET title = $2,
			content = $3,
			post_type = $4,
			is_fundable = $5,
			is_public = $6,
			status = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.PostType,
		post.IsFundable,
		post.IsPublic,
		post.Status,
	).Scan(&post.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update post: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete post: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListPostsParams,
) ([]Post, int, error) {
	where := " WHERE is_public = true AND status = 'published'"
	args := []any{}
	argN := 1

	if params.PostType != "" {
		where += fmt.Sprintf(" AND post_type = $%d", argN)
		args = append(args, params.PostType)
		argN++
	}
	if params.AuthorID != 0 {
		where += fmt.Sprintf(" AND author_id = $%d", argN)
		args = append(args, params.AuthorID)
		argN++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM posts" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT%s
		FROM posts%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		postColumns, where, argN, argN+1,
	)
	args = append(args, params.PageSize, params.Offset())

	var posts []Post
	if err := r.db.SelectContext(ctx, &posts, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	return posts, total, nil
}
