package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"launchpath/internal/domain"
	"launchpath/internal/metrics"
	"launchpath/internal/repository"
)

var (
	ErrUnknownPath    = errors.New("unknown business path")
	ErrPathNotViable  = errors.New("path is not a viable fit")
	ErrPathEliminated = errors.New("path was eliminated")
	ErrPathIsCurrent  = errors.New("cannot eliminate the current direction")
)

// CommitResult es lo que ve el usuario al elegir un path.
type CommitResult struct {
	State      domain.UserState    `json:"state"`
	Path       domain.BusinessPath `json:"path"`
	Commitment domain.Commitment   `json:"commitment"`
	Insight    string              `json:"insight"`
}

// JourneyService mueve al usuario entre modos: orientacion, evaluacion, compromiso y operacion.
type JourneyService struct {
	logger    *zap.Logger
	engine    *DecisionEngine
	states    repository.UserStateRepository
	metrics   *metrics.Metrics
	threshold float64
	window    time.Duration
	now       func() time.Time
}

func NewJourneyService(
	logger *zap.Logger,
	engine *DecisionEngine,
	states repository.UserStateRepository,
	m *metrics.Metrics,
	threshold float64,
	window time.Duration,
) *JourneyService {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultViableThreshold
	}
	if window <= 0 {
		window = defaultCommitmentWindow
	}
	return &JourneyService{
		logger:    logger,
		engine:    engine,
		states:    states,
		metrics:   m,
		threshold: threshold,
		window:    window,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *JourneyService) State(ctx context.Context, userID string) (domain.UserState, error) {
	return loadState(ctx, s.states, userID)
}

// CompleteOrientation pasa de orient a evaluate. En cualquier otro modo no cambia nada.
func (s *JourneyService) CompleteOrientation(ctx context.Context, userID string) (domain.UserState, error) {
	state, err := loadState(ctx, s.states, userID)
	if err != nil {
		return domain.UserState{}, err
	}
	if state.CurrentMode != domain.ModeOrient {
		return state, nil
	}
	state.CurrentMode = domain.ModeEvaluate
	state.UpdatedAt = s.now()
	if err := s.states.Update(ctx, state); err != nil {
		return domain.UserState{}, err
	}
	return state, nil
}

// Commit fija la direccion, arranca el primer capitulo y crea el primer compromiso del path en una sola escritura.
func (s *JourneyService) Commit(ctx context.Context, userID, pathID string) (CommitResult, error) {
	path, ok := s.engine.Catalog().Path(pathID)
	if !ok {
		return CommitResult{}, ErrUnknownPath
	}
	state, err := loadState(ctx, s.states, userID)
	if err != nil {
		return CommitResult{}, err
	}
	if state.Evaluation == nil {
		return CommitResult{}, ErrEvaluationMissing
	}
	if state.IsEliminated(pathID) {
		return CommitResult{}, ErrPathEliminated
	}
	if !IsViable(s.engine.RankPathsByFit(*state.Evaluation), pathID, s.threshold) {
		return CommitResult{}, ErrPathNotViable
	}

	now := s.now()
	state.CurrentDirection = pathID
	state.CurrentMode = domain.ModeOperate
	state.CurrentChapterID = ""
	if chapters := s.engine.Catalog().Chapters(pathID); len(chapters) > 0 {
		state.CurrentChapterID = chapters[0].ID
	}
	state.UpdatedAt = now

	commitment := domain.Commitment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    path.FirstCommitment,
		Deadline:  now.Add(s.window),
		IsActive:  true,
		CreatedAt: now,
	}
	outcome := domain.SessionOutcome{
		ID:          uuid.NewString(),
		UserID:      userID,
		WhatChanged: fmt.Sprintf("Started %s path. Beginning with Chapter 1.", path.Name),
		CreatedAt:   now,
	}
	if err := s.states.Commit(ctx, state, commitment, outcome); err != nil {
		return CommitResult{}, fmt.Errorf("commit to path: %w", err)
	}

	s.metrics.ObserveCommitment(pathID)
	s.logger.Info("committed to path", zap.String("user_id", userID), zap.String("path_id", pathID))
	return CommitResult{
		State:      state,
		Path:       path,
		Commitment: commitment,
		Insight:    path.Insight,
	}, nil
}

// EliminateDirection descarta un path para el usuario. Repetirlo no tiene efecto.
func (s *JourneyService) EliminateDirection(ctx context.Context, userID, pathID string) (domain.UserState, error) {
	if !s.engine.Catalog().HasPath(pathID) {
		return domain.UserState{}, ErrUnknownPath
	}
	state, err := loadState(ctx, s.states, userID)
	if err != nil {
		return domain.UserState{}, err
	}
	if state.CurrentDirection == pathID {
		return domain.UserState{}, ErrPathIsCurrent
	}
	if state.IsEliminated(pathID) {
		return state, nil
	}
	state.EliminatedDirections = append(state.EliminatedDirections, pathID)
	state.UpdatedAt = s.now()
	if err := s.states.Update(ctx, state); err != nil {
		return domain.UserState{}, err
	}
	return state, nil
}
