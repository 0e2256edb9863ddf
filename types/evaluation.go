package types

import "time"

// Evaluation is a professor's score for a project. Scores are in [0, 10].
type Evaluation struct {
	ID          int       `json:"id" db:"id"`
	ProjectID   int       `json:"project_id" db:"project_id"`
	ProfessorID int       `json:"professor_id" db:"professor_id"`
	Score       float64   `json:"score" db:"score"`
	Comment     string    `json:"comment,omitempty" db:"comment"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
