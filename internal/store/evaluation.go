package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/JhonW67/ProjectHub/types"
)

// EvaluationRepository handles persistence for project evaluations.
type EvaluationRepository struct {
	db *sql.DB
}

func NewEvaluationRepository(db *sql.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

func (r *EvaluationRepository) ListByProject(ctx context.Context, projectID int) ([]types.Evaluation, error) {
	const query = `
		SELECT id, project_id, professor_id, score, comment, created_at
		FROM evaluations
		WHERE project_id = $1
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	evaluations := make([]types.Evaluation, 0)
	for rows.Next() {
		var evaluation types.Evaluation
		if err := rows.Scan(
			&evaluation.ID,
			&evaluation.ProjectID,
			&evaluation.ProfessorID,
			&evaluation.Score,
			&evaluation.Comment,
			&evaluation.CreatedAt,
		); err != nil {
			return nil, err
		}
		evaluations = append(evaluations, evaluation)
	}
	return evaluations, rows.Err()
}

func (r *EvaluationRepository) Create(ctx context.Context, evaluation types.Evaluation) (types.Evaluation, error) {
	evaluation.CreatedAt = time.Now()

	const query = `
		INSERT INTO evaluations (project_id, professor_id, score, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		evaluation.ProjectID,
		evaluation.ProfessorID,
		evaluation.Score,
		evaluation.Comment,
		evaluation.CreatedAt,
	).Scan(&evaluation.ID); err != nil {
		return types.Evaluation{}, err
	}
	return evaluation, nil
}
