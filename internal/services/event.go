package services

import (
	"context"

	"github.com/JhonW67/ProjectHub/types"
)

// EventRepository defines persistence operations for showcase events.
type EventRepository interface {
	List(ctx context.Context) ([]types.Event, error)
	Get(ctx context.Context, id int) (types.Event, error)
	Create(ctx context.Context, event types.Event) (types.Event, error)
	Update(ctx context.Context, event types.Event) (types.Event, error)
}

// EventService encapsulates event use-cases.
type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

func (s *EventService) List(ctx context.Context) ([]types.Event, error) {
	return s.repo.List(ctx)
}

func (s *EventService) Get(ctx context.Context, id int) (types.Event, error) {
	return s.repo.Get(ctx, id)
}

func (s *EventService) Create(ctx context.Context, event types.Event) (types.Event, error) {
	if !event.EndsAt.After(event.StartsAt) {
		return types.Event{}, ErrInvalidEventWindow
	}
	return s.repo.Create(ctx, event)
}

func (s *EventService) Update(ctx context.Context, event types.Event) (types.Event, error) {
	if !event.EndsAt.After(event.StartsAt) {
		return types.Event{}, ErrInvalidEventWindow
	}
	return s.repo.Update(ctx, event)
}
