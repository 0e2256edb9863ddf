package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/JhonW67/ProjectHub/types"
	"github.com/rs/zerolog"
)

const publishTimeout = 5 * time.Second

// Publisher is the broker surface the notifier needs. Satisfied by
// *mq.Bus.
type Publisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// Notifier publishes domain events to the message broker, best-effort.
// A nil publisher disables publishing entirely, which keeps broker-less
// deployments viable.
type Notifier struct {
	publisher Publisher
	channel   string
	log       zerolog.Logger
}

func NewNotifier(publisher Publisher, channel string, log zerolog.Logger) *Notifier {
	return &Notifier{publisher: publisher, channel: channel, log: log}
}

// EvaluationCreated announces a new evaluation. Publishing happens off
// the request path; a broker outage never fails the evaluation itself.
func (n *Notifier) EvaluationCreated(evaluation types.Evaluation, project types.Project) {
	if n == nil || n.publisher == nil {
		return
	}

	payload := struct {
		Type         string  `json:"type"`
		EvaluationID int     `json:"evaluation_id"`
		ProjectID    int     `json:"project_id"`
		ProjectTitle string  `json:"project_title"`
		GroupID      int     `json:"group_id"`
		ProfessorID  int     `json:"professor_id"`
		Score        float64 `json:"score"`
	}{
		Type:         "evaluation.created",
		EvaluationID: evaluation.ID,
		ProjectID:    project.ID,
		ProjectTitle: project.Title,
		GroupID:      project.GroupID,
		ProfessorID:  evaluation.ProfessorID,
		Score:        evaluation.Score,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		n.log.Warn().Err(err).Msg("failed to encode evaluation notification")
		return
	}

	attrs := map[string]string{
		"type":       payload.Type,
		"project_id": strconv.Itoa(project.ID),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if _, err := n.publisher.Publish(ctx, n.channel, data, attrs); err != nil {
			n.log.Warn().Err(err).Int("evaluation_id", evaluation.ID).Msg("failed to publish evaluation notification")
		}
	}()
}
