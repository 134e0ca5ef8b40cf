package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"launchpath/internal/domain"
	"launchpath/internal/repository"
)

var ErrUnknownMilestone = errors.New("unknown milestone")

type MilestoneService struct {
	engine     *DecisionEngine
	states     repository.UserStateRepository
	milestones repository.MilestoneRepository
	now        func() time.Time
}

func NewMilestoneService(engine *DecisionEngine, states repository.UserStateRepository, milestones repository.MilestoneRepository) *MilestoneService {
	return &MilestoneService{
		engine:     engine,
		states:     states,
		milestones: milestones,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// MilestonesForPath devuelve los hitos estaticos de un path en orden.
func (s *MilestoneService) MilestonesForPath(pathID string) []domain.Milestone {
	return s.engine.Catalog().Milestones(pathID)
}

// List combina los hitos del path actual con lo que el usuario ya completo.
func (s *MilestoneService) List(ctx context.Context, userID string) ([]domain.MilestoneStatus, error) {
	state, err := loadState(ctx, s.states, userID)
	if err != nil {
		return nil, err
	}
	if state.CurrentDirection == "" {
		return nil, ErrNoDirection
	}
	records, err := s.milestones.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	done := make(map[string]time.Time, len(records))
	for _, r := range records {
		done[r.MilestoneKey] = r.CompletedAt
	}

	defs := s.MilestonesForPath(state.CurrentDirection)
	out := make([]domain.MilestoneStatus, 0, len(defs))
	for _, m := range defs {
		st := domain.MilestoneStatus{Milestone: m}
		if at, ok := done[m.Key]; ok {
			at := at
			st.Completed = true
			st.CompletedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

// Complete marca un hito del path actual. Marcarlo dos veces no cambia nada.
func (s *MilestoneService) Complete(ctx context.Context, userID, key string) error {
	state, err := loadState(ctx, s.states, userID)
	if err != nil {
		return err
	}
	m, ok := s.engine.Catalog().Milestone(key)
	if !ok || m.PathID != state.CurrentDirection {
		return ErrUnknownMilestone
	}
	return s.milestones.Complete(ctx, domain.MilestoneRecord{
		ID:           uuid.NewString(),
		UserID:       userID,
		MilestoneKey: key,
		CompletedAt:  s.now(),
	})
}
