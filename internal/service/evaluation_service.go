package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"launchpath/internal/catalog"
	"launchpath/internal/domain"
	"launchpath/internal/metrics"
	"launchpath/internal/repository"
)

var (
	ErrInvalidEvaluation = errors.New("invalid evaluation")
	ErrEvaluationMissing = errors.New("evaluation not completed")
)

const answerTolerance = 1e-9

// EvaluationResult es el ranking particionado con el corte configurado.
type EvaluationResult struct {
	Evaluation domain.Evaluation  `json:"evaluation"`
	Viable     []domain.FitResult `json:"viable"`
	PoorFit    []domain.FitResult `json:"poor_fit"`
}

// ScoreAnswers convierte las respuestas del cuestionario en una evaluacion.
// Cada pregunta debe responderse con uno de sus valores; cada dimension es el promedio de sus preguntas.
func ScoreAnswers(questions []catalog.Question, answers map[string]float64) (domain.Evaluation, error) {
	known := make(map[string]struct{}, len(questions))
	sums := make(map[domain.Dimension]float64, len(domain.Dimensions))
	counts := make(map[domain.Dimension]int, len(domain.Dimensions))

	for _, q := range questions {
		known[q.ID] = struct{}{}
		v, ok := answers[q.ID]
		if !ok {
			return domain.Evaluation{}, fmt.Errorf("%w: question %q unanswered", ErrInvalidEvaluation, q.ID)
		}
		if !isOptionValue(q, v) {
			return domain.Evaluation{}, fmt.Errorf("%w: %v is not an option of %q", ErrInvalidEvaluation, v, q.ID)
		}
		sums[q.Dimension] += v
		counts[q.Dimension]++
	}
	for id := range answers {
		if _, ok := known[id]; !ok {
			return domain.Evaluation{}, fmt.Errorf("%w: unknown question %q", ErrInvalidEvaluation, id)
		}
	}

	mean := func(d domain.Dimension) float64 {
		if counts[d] == 0 {
			return 0
		}
		return sums[d] / float64(counts[d])
	}
	eval := domain.Evaluation{
		Patience:           mean(domain.DimensionPatience),
		RejectionTolerance: mean(domain.DimensionRejectionTolerance),
		BuildVsSell:        mean(domain.DimensionBuildVsSell),
		Leverage:           mean(domain.DimensionLeverage),
	}
	if err := eval.Validate(); err != nil {
		return domain.Evaluation{}, fmt.Errorf("%w: %v", ErrInvalidEvaluation, err)
	}
	return eval, nil
}

func isOptionValue(q catalog.Question, v float64) bool {
	for _, opt := range q.Options {
		if math.Abs(opt.Value-v) < answerTolerance {
			return true
		}
	}
	return false
}

// EvaluationService guarda la autoevaluacion y deriva el ranking de paths.
type EvaluationService struct {
	logger    *zap.Logger
	engine    *DecisionEngine
	states    repository.UserStateRepository
	metrics   *metrics.Metrics
	threshold float64
	now       func() time.Time
}

func NewEvaluationService(logger *zap.Logger, engine *DecisionEngine, states repository.UserStateRepository, m *metrics.Metrics, threshold float64) *EvaluationService {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultViableThreshold
	}
	return &EvaluationService{
		logger:    logger,
		engine:    engine,
		states:    states,
		metrics:   m,
		threshold: threshold,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *EvaluationService) Questions() []catalog.Question {
	return s.engine.Catalog().Questions()
}

// Submit puntua las respuestas, guarda la evaluacion y devuelve el ranking.
// Un usuario que ya opera un path conserva su modo.
func (s *EvaluationService) Submit(ctx context.Context, userID string, answers map[string]float64) (EvaluationResult, error) {
	eval, err := ScoreAnswers(s.Questions(), answers)
	if err != nil {
		return EvaluationResult{}, err
	}

	state, err := loadState(ctx, s.states, userID)
	if err != nil {
		return EvaluationResult{}, err
	}
	state.Evaluation = &eval
	if state.CurrentMode != domain.ModeOperate {
		state.CurrentMode = domain.ModeCommit
	}
	state.UpdatedAt = s.now()
	if err := s.states.Update(ctx, state); err != nil {
		return EvaluationResult{}, fmt.Errorf("save evaluation: %w", err)
	}

	s.logger.Info("evaluation saved",
		zap.String("user_id", userID),
		zap.Float64("patience", eval.Patience),
		zap.Float64("rejection_tolerance", eval.RejectionTolerance),
		zap.Float64("build_vs_sell", eval.BuildVsSell),
		zap.Float64("leverage", eval.Leverage),
	)
	return s.rank(eval), nil
}

// Ranking vuelve a derivar el ranking desde la evaluacion guardada.
func (s *EvaluationService) Ranking(ctx context.Context, userID string) (EvaluationResult, error) {
	state, err := loadState(ctx, s.states, userID)
	if err != nil {
		return EvaluationResult{}, err
	}
	if state.Evaluation == nil {
		return EvaluationResult{}, ErrEvaluationMissing
	}
	return s.rank(*state.Evaluation), nil
}

func (s *EvaluationService) rank(eval domain.Evaluation) EvaluationResult {
	ranked := s.engine.RankPathsByFit(eval)
	s.metrics.ObserveRanking()
	viable, poor := ViablePaths(ranked, s.threshold)
	return EvaluationResult{Evaluation: eval, Viable: viable, PoorFit: poor}
}

func loadState(ctx context.Context, states repository.UserStateRepository, userID string) (domain.UserState, error) {
	state, err := states.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserState{}, ErrUserNotFound
		}
		return domain.UserState{}, err
	}
	return state, nil
}
