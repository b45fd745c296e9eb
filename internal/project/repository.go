// AngelaMos | 2026
// repository.go

package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fundlift/backend/internal/core"
)

const projectColumns = `
	id, owner_id, title, description, short_description, repo_url,
	funding_goal, funding_raised, currency, category, status,
	is_featured, is_public, views_count, published_at, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id int64) (*Project, error)
	GetByIDAndBumpViews(ctx context.Context, id int64) (*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params ListProjectsParams) ([]Project, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, project *Project) error {
	query := `
		INSERT INTO projects (
			owner_id, title, description, short_description, repo_url,
			funding_goal, currency, category, status, is_public, published_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		RETURNING id, funding_raised, views_count, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		project.OwnerID,
		project.Title,
		project.Description,
		project.ShortDescription,
		project.RepoURL,
		project.FundingGoal,
		project.Currency,
		project.Category,
		project.Status,
		project.IsPublic,
		project.PublishedAt,
	).Scan(
		&project.ID,
		&project.FundingRaised,
		&project.ViewsCount,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id int64,
) (*Project, error) {
	query := `SELECT` + projectColumns + `
		FROM projects
		WHERE id = $1`

	var project Project
	err := r.db.GetContext(ctx, &project, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get project: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

// GetByIDAndBumpViews increments the view counter and reads the row in one
// statement, so concurrent reads never lose a count.
func (r *repository) GetByIDAndBumpViews(
	ctx context.Context,
	id int64,
) (*Project, error) {
	query := `
		UPDATE projects
		SET views_count = views_count + 1
		WHERE id = $1
		RETURNING` + projectColumns

	var project Project
	err := r.db.QueryRowxContext(ctx, query, id).StructScan(&project)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get project: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

func (r *repository) Update(ctx context.Context, project *Project) error {
	query := `
		UPDATE projects
		SET title = $2,
			description = $3,
			short_description = $4,
			repo_url = $5,
			funding_goal = $6,
			category = $7,
			status = $8,
			is_public = $9,
			published_at = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		project.ID,
		project.Title,
		project.Description,
		project.ShortDescription,
		project.RepoURL,
		project.FundingGoal,
		project.Category,
		project.Status,
		project.IsPublic,
		project.PublishedAt,
	).Scan(&project.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update project: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete project: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListProjectsParams,
) ([]Project, int, error) {
	where := " WHERE is_public = true"
	args := []any{}
	argN := 1

	if params.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, params.Status)
		argN++
	}
	if params.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", argN)
		args = append(args, params.Category)
		argN++
	}
	if params.OwnerID != 0 {
		where += fmt.Sprintf(" AND owner_id = $%d", argN)
		args = append(args, params.OwnerID)
		argN++
	}
	if params.Search != "" {
		where += fmt.Sprintf(" AND title ILIKE $%d", argN)
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argN++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM projects" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT%s
		FROM projects%s
		ORDER BY is_featured DESC, created_at DESC
		LIMIT $%d OFFSET $%d`,
		projectColumns, where, argN, argN+1,
	)
	args = append(args, params.PageSize, params.Offset())

	var projects []Project
	if err := r.db.SelectContext(ctx, &projects, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}

	return projects, total, nil
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
