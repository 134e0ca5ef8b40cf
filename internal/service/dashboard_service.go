package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"launchpath/internal/domain"
	"launchpath/internal/repository"
)

const dashboardHistory = 5

// Dashboard resume el estado de operacion de un usuario.
type Dashboard struct {
	Mode            domain.Mode             `json:"mode"`
	Direction       *domain.BusinessPath    `json:"direction,omitempty"`
	Commitment      *domain.Commitment      `json:"commitment,omitempty"`
	Staleness       *domain.Staleness       `json:"staleness,omitempty"`
	CurrentFocus    *domain.CurrentFocus    `json:"current_focus,omitempty"`
	NextLever       domain.NextLever        `json:"next_lever"`
	RecentCheckIns  []domain.CheckIn        `json:"recent_check_ins"`
	Profile         *domain.BusinessProfile `json:"profile,omitempty"`
	SessionOutcomes []domain.SessionOutcome `json:"session_outcomes"`
}

type DashboardService struct {
	logger      *zap.Logger
	engine      *DecisionEngine
	states      repository.UserStateRepository
	commitments repository.CommitmentRepository
	checkIns    repository.CheckInRepository
	profiles    repository.BusinessProfileRepository
	outcomes    repository.SessionOutcomeRepository
	now         func() time.Time
}

func NewDashboardService(
	logger *zap.Logger,
	engine *DecisionEngine,
	states repository.UserStateRepository,
	commitments repository.CommitmentRepository,
	checkIns repository.CheckInRepository,
	profiles repository.BusinessProfileRepository,
	outcomes repository.SessionOutcomeRepository,
) *DashboardService {
	return &DashboardService{
		logger:      logger,
		engine:      engine,
		states:      states,
		commitments: commitments,
		checkIns:    checkIns,
		profiles:    profiles,
		outcomes:    outcomes,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *DashboardService) Get(ctx context.Context, userID string) (Dashboard, error) {
	state, err := loadState(ctx, s.states, userID)
	if err != nil {
		return Dashboard{}, err
	}
	recent, err := s.checkIns.ListByUser(ctx, userID, dashboardHistory)
	if err != nil {
		s.logger.Error("load recent check-ins failed", zap.String("user_id", userID), zap.Error(err))
		return Dashboard{}, err
	}
	if recent == nil {
		recent = []domain.CheckIn{}
	}
	dash := Dashboard{Mode: state.CurrentMode, RecentCheckIns: recent}

	active, err := s.commitments.GetActive(ctx, userID)
	switch {
	case err == nil:
		dash.Commitment = &active
		staleness := ExperimentStaleness(active.Deadline, s.now())
		dash.Staleness = &staleness
	case !errors.Is(err, pgx.ErrNoRows):
		s.logger.Error("load active commitment failed", zap.String("user_id", userID), zap.Error(err))
		return Dashboard{}, err
	}

	profile, err := s.profiles.Get(ctx, userID)
	switch {
	case err == nil:
		dash.Profile = &profile
	case !errors.Is(err, pgx.ErrNoRows):
		s.logger.Error("load business profile failed", zap.String("user_id", userID), zap.Error(err))
		return Dashboard{}, err
	}

	outcomes, err := s.outcomes.ListRecent(ctx, userID, dashboardHistory)
	if err != nil {
		s.logger.Error("load session outcomes failed", zap.String("user_id", userID), zap.Error(err))
		return Dashboard{}, err
	}
	if outcomes == nil {
		outcomes = []domain.SessionOutcome{}
	}
	dash.SessionOutcomes = outcomes

	if path, ok := s.engine.Catalog().Path(state.CurrentDirection); ok {
		dash.Direction = &path
		focus := s.engine.CurrentFocus(path.ID, recent)
		dash.CurrentFocus = &focus
	}
	dash.NextLever = NextLever(recent, dash.Commitment != nil)
	return dash, nil
}
