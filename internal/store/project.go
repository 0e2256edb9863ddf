package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/JhonW67/ProjectHub/types"
)

// ProjectRepository handles persistence for projects.
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns projects with their owning group's name.
func (r *ProjectRepository) List(ctx context.Context, offset, limit int) ([]types.Project, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM projects`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT p.id, p.group_id, COALESCE(p.event_id, 0), p.title, p.description, g.name, p.created_at, p.updated_at
		FROM projects p
		LEFT JOIN groups g ON g.id = p.group_id
		ORDER BY p.id
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects := make([]types.Project, 0, limit)
	for rows.Next() {
		var project types.Project
		if err := rows.Scan(
			&project.ID,
			&project.GroupID,
			&project.EventID,
			&project.Title,
			&project.Description,
			&project.GroupName,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id int) (types.Project, error) {
	const query = `
		SELECT p.id, p.group_id, COALESCE(p.event_id, 0), p.title, p.description, g.name, p.created_at, p.updated_at
		FROM projects p
		LEFT JOIN groups g ON g.id = p.group_id
		WHERE p.id = $1`
	var project types.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.GroupID,
		&project.EventID,
		&project.Title,
		&project.Description,
		&project.GroupName,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Project{}, ErrNotFound
		}
		return types.Project{}, err
	}
	return project, nil
}

// AverageScore returns the mean evaluation score for a project, or nil
// when the project has no evaluations yet.
func (r *ProjectRepository) AverageScore(ctx context.Context, projectID int) (*float64, error) {
	const query = `SELECT AVG(score) FROM evaluations WHERE project_id = $1`
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, query, projectID).Scan(&avg); err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	value := avg.Float64
	return &value, nil
}

// ListByGroup returns the projects owned by a group.
func (r *ProjectRepository) ListByGroup(ctx context.Context, groupID int) ([]types.Project, error) {
	const query = `
		SELECT id, group_id, COALESCE(event_id, 0), title, description, created_at, updated_at
		FROM projects
		WHERE group_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]types.Project, 0)
	for rows.Next() {
		var project types.Project
		if err := rows.Scan(
			&project.ID,
			&project.GroupID,
			&project.EventID,
			&project.Title,
			&project.Description,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Create(ctx context.Context, project types.Project) (types.Project, error) {
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	const query = `
		INSERT INTO projects (group_id, event_id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		project.GroupID,
		nullInt(project.EventID),
		project.Title,
		project.Description,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.ID); err != nil {
		return types.Project{}, err
	}
	return project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project types.Project) (types.Project, error) {
	project.UpdatedAt = time.Now()

	const query = `
		UPDATE projects
		SET title = $1,
			description = $2,
			event_id = $3,
			updated_at = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		project.Title,
		project.Description,
		nullInt(project.EventID),
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return types.Project{}, err
	}
	if err := requireAffected(result); err != nil {
		return types.Project{}, err
	}
	return project, nil
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}
