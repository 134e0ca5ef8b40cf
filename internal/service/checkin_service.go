package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"launchpath/internal/domain"
	"launchpath/internal/metrics"
	"launchpath/internal/repository"
)

const defaultCommitmentWindow = 7 * 24 * time.Hour

var (
	ErrNoActiveCommitment = errors.New("no active commitment")
	ErrNoDirection        = errors.New("no direction chosen")
	ErrInvalidOutcome     = errors.New("invalid check-in outcome")
)

type CheckInInput struct {
	Completed bool
	Outcome   string
	Learned   string
}

// CheckInOptions son las respuestas validas para la direccion actual del usuario.
type CheckInOptions struct {
	Direction      string            `json:"direction"`
	Commitment     domain.Commitment `json:"commitment"`
	Outcomes       []string          `json:"outcomes"`
	LearnedOptions []string          `json:"learned_options"`
}

type CheckInResult struct {
	CheckIn        domain.CheckIn        `json:"check_in"`
	Signal         domain.Signal         `json:"signal"`
	Adjustment     domain.PathAdjustment `json:"adjustment"`
	NextCommitment domain.Commitment     `json:"next_commitment"`
}

// CheckInService cierra el ciclo de un compromiso: clasifica, ajusta y abre el siguiente.
type CheckInService struct {
	logger      *zap.Logger
	engine      *DecisionEngine
	states      repository.UserStateRepository
	commitments repository.CommitmentRepository
	checkIns    repository.CheckInRepository
	metrics     *metrics.Metrics
	window      time.Duration
	now         func() time.Time
}

func NewCheckInService(
	logger *zap.Logger,
	engine *DecisionEngine,
	states repository.UserStateRepository,
	commitments repository.CommitmentRepository,
	checkIns repository.CheckInRepository,
	m *metrics.Metrics,
	window time.Duration,
) *CheckInService {
	if window <= 0 {
		window = defaultCommitmentWindow
	}
	return &CheckInService{
		logger:      logger,
		engine:      engine,
		states:      states,
		commitments: commitments,
		checkIns:    checkIns,
		metrics:     m,
		window:      window,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *CheckInService) Options(ctx context.Context, userID string) (CheckInOptions, error) {
	direction, commitment, err := s.activeContext(ctx, userID)
	if err != nil {
		return CheckInOptions{}, err
	}
	table, _ := s.engine.Catalog().Direction(direction)
	return CheckInOptions{
		Direction:      direction,
		Commitment:     commitment,
		Outcomes:       table.Outcomes,
		LearnedOptions: s.engine.Catalog().LearnedOptions(),
	}, nil
}

// Submit registra el check-in del compromiso activo y lo reemplaza por la siguiente accion.
func (s *CheckInService) Submit(ctx context.Context, userID string, input CheckInInput) (CheckInResult, error) {
	direction, commitment, err := s.activeContext(ctx, userID)
	if err != nil {
		return CheckInResult{}, err
	}
	if err := s.validate(direction, input); err != nil {
		return CheckInResult{}, err
	}

	signal := ClassifySignal(input.Completed, input.Outcome, input.Learned)
	adjustment := s.engine.DeterminePathAdjustment(signal.Type, direction, commitment.Action)

	now := s.now()
	checkIn := domain.CheckIn{
		ID:                uuid.NewString(),
		UserID:            userID,
		CommitmentID:      commitment.ID,
		Completed:         input.Completed,
		Outcome:           input.Outcome,
		Learned:           input.Learned,
		SignalType:        signal.Type,
		SignalExplanation: signal.Explanation,
		PathAdjustment:    adjustment.Adjustment,
		NextAction:        adjustment.NextAction,
		CreatedAt:         now,
	}
	next := domain.Commitment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    adjustment.NextAction,
		Deadline:  now.Add(s.window),
		IsActive:  true,
		CreatedAt: now,
	}
	if err := s.checkIns.Record(ctx, checkIn, next); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CheckInResult{}, ErrNoActiveCommitment
		}
		return CheckInResult{}, fmt.Errorf("record check-in: %w", err)
	}

	s.metrics.ObserveCheckIn(string(signal.Type), string(adjustment.Adjustment))
	s.logger.Info("check-in recorded",
		zap.String("user_id", userID),
		zap.String("path_id", direction),
		zap.String("signal", string(signal.Type)),
		zap.String("adjustment", string(adjustment.Adjustment)),
		zap.String("previous_action", commitment.Action),
	)
	return CheckInResult{
		CheckIn:        checkIn,
		Signal:         signal,
		Adjustment:     adjustment,
		NextCommitment: next,
	}, nil
}

// History devuelve los check-ins del usuario, el mas reciente primero.
func (s *CheckInService) History(ctx context.Context, userID string, limit int) ([]domain.CheckIn, error) {
	return s.checkIns.ListByUser(ctx, userID, limit)
}

func (s *CheckInService) activeContext(ctx context.Context, userID string) (string, domain.Commitment, error) {
	state, err := loadState(ctx, s.states, userID)
	if err != nil {
		return "", domain.Commitment{}, err
	}
	if state.CurrentDirection == "" {
		return "", domain.Commitment{}, ErrNoDirection
	}
	if !s.engine.Catalog().HasPath(state.CurrentDirection) {
		// una direccion guardada que ya no existe en el catalogo
		return "", domain.Commitment{}, ErrUnknownPath
	}
	commitment, err := s.commitments.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.Commitment{}, ErrNoActiveCommitment
		}
		return "", domain.Commitment{}, err
	}
	return state.CurrentDirection, commitment, nil
}

// validate exige un outcome del catalogo cuando el compromiso se cumplio.
// Sin cumplir, el outcome es opcional pero si viene tiene que ser del catalogo.
func (s *CheckInService) validate(direction string, input CheckInInput) error {
	if !input.Completed && input.Outcome == "" {
		return s.validateLearned(input.Learned)
	}
	table, _ := s.engine.Catalog().Direction(direction)
	for _, o := range table.Outcomes {
		if o == input.Outcome {
			return s.validateLearned(input.Learned)
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidOutcome, input.Outcome)
}

func (s *CheckInService) validateLearned(learned string) error {
	if learned == "" {
		return nil
	}
	for _, l := range s.engine.Catalog().LearnedOptions() {
		if l == learned {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown learned option %q", ErrInvalidOutcome, learned)
}
