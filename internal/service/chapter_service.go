package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"launchpath/internal/catalog"
	"launchpath/internal/domain"
	"launchpath/internal/repository"
)

var (
	ErrChapterNotCurrent = errors.New("chapter is not the current one")
	ErrChapterIncomplete = errors.New("chapter outputs incomplete")
)

// ChapterProgress es el capitulo actual dentro del path elegido.
type ChapterProgress struct {
	Chapter  domain.Chapter `json:"chapter"`
	Position int            `json:"position"`
	Total    int            `json:"total"`
}

type ChapterService struct {
	logger   *zap.Logger
	engine   *DecisionEngine
	states   repository.UserStateRepository
	chapters repository.ChapterRepository
	now      func() time.Time
}

func NewChapterService(logger *zap.Logger, engine *DecisionEngine, states repository.UserStateRepository, chapters repository.ChapterRepository) *ChapterService {
	return &ChapterService{
		logger:   logger,
		engine:   engine,
		states:   states,
		chapters: chapters,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Current devuelve nil cuando el usuario no tiene direccion o ya termino todos los capitulos.
func (s *ChapterService) Current(ctx context.Context, userID string) (*ChapterProgress, error) {
	state, err := loadState(ctx, s.states, userID)
	if err != nil {
		return nil, err
	}
	if state.CurrentDirection == "" {
		return nil, ErrNoDirection
	}
	ch, ok := s.engine.Catalog().Chapter(state.CurrentChapterID)
	if !ok {
		return nil, nil
	}
	return &ChapterProgress{
		Chapter:  ch,
		Position: ch.Sequence,
		Total:    len(s.engine.Catalog().Chapters(ch.PathID)),
	}, nil
}

// Complete guarda las salidas del capitulo actual y avanza al siguiente.
// Devuelve el nuevo progreso, o nil si con este capitulo se completo el path.
func (s *ChapterService) Complete(ctx context.Context, userID, chapterID string, outputs map[string]string) (*ChapterProgress, error) {
	state, err := loadState(ctx, s.states, userID)
	if err != nil {
		return nil, err
	}
	if state.CurrentDirection == "" {
		return nil, ErrNoDirection
	}
	if chapterID == "" || state.CurrentChapterID != chapterID {
		return nil, ErrChapterNotCurrent
	}
	ch, ok := s.engine.Catalog().Chapter(chapterID)
	if !ok {
		return nil, ErrChapterNotCurrent
	}
	if missing := MissingOutputs(ch, outputs); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrChapterIncomplete, strings.Join(missing, ", "))
	}

	now := s.now()
	output := domain.ChapterOutput{
		ID:          uuid.NewString(),
		UserID:      userID,
		ChapterID:   chapterID,
		Outputs:     outputs,
		Completed:   true,
		CompletedAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	next, hasNext := s.engine.Catalog().NextChapter(chapterID)
	nextID := ""
	if hasNext {
		nextID = next.ID
	}
	if err := s.chapters.CompleteChapter(ctx, output, ch.PathID, nextID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChapterNotCurrent
		}
		return nil, fmt.Errorf("complete chapter: %w", err)
	}

	if !hasNext {
		s.logger.Info("path completed", zap.String("user_id", userID), zap.String("path_id", ch.PathID))
		return nil, nil
	}
	return &ChapterProgress{
		Chapter:  next,
		Position: next.Sequence,
		Total:    len(s.engine.Catalog().Chapters(next.PathID)),
	}, nil
}

func (s *ChapterService) Outputs(ctx context.Context, userID string) ([]domain.ChapterOutput, error) {
	return s.chapters.ListOutputs(ctx, userID)
}

func (s *ChapterService) Completions(ctx context.Context, userID string) ([]domain.PathCompletion, error) {
	return s.chapters.ListPathCompletions(ctx, userID)
}

// BusinessSummary arma el resumen del negocio de la direccion actual con las salidas completadas.
// Se omiten los items sin valor y las secciones que quedan vacias.
func (s *ChapterService) BusinessSummary(ctx context.Context, userID string) (domain.BusinessSummary, error) {
	state, err := loadState(ctx, s.states, userID)
	if err != nil {
		return domain.BusinessSummary{}, err
	}
	if state.CurrentDirection == "" {
		return domain.BusinessSummary{}, ErrNoDirection
	}
	outputs, err := s.chapters.ListOutputs(ctx, userID)
	if err != nil {
		return domain.BusinessSummary{}, fmt.Errorf("list chapter outputs: %w", err)
	}
	templates, _ := s.engine.Catalog().SummaryTemplate(state.CurrentDirection)
	return FillBusinessSummary(state.CurrentDirection, templates, outputs), nil
}

// FillBusinessSummary completa las plantillas con las salidas de capitulos completados.
func FillBusinessSummary(pathID string, templates []catalog.SummarySectionTemplate, outputs []domain.ChapterOutput) domain.BusinessSummary {
	byChapter := make(map[string]map[string]string, len(outputs))
	for _, o := range outputs {
		if o.Completed {
			byChapter[o.ChapterID] = o.Outputs
		}
	}

	summary := domain.BusinessSummary{PathID: pathID, Sections: []domain.SummarySection{}}
	for _, tmpl := range templates {
		var items []domain.SummaryItem
		for _, item := range tmpl.Items {
			value := byChapter[item.ChapterID][item.Field]
			if strings.TrimSpace(value) == "" {
				continue
			}
			items = append(items, domain.SummaryItem{Label: item.Label, Value: value})
		}
		if len(items) > 0 {
			summary.Sections = append(summary.Sections, domain.SummarySection{Title: tmpl.Title, Items: items})
		}
	}
	return summary
}

// MissingOutputs lista los campos requeridos sin valor.
func MissingOutputs(ch domain.Chapter, outputs map[string]string) []string {
	var missing []string
	for _, f := range ch.RequiredOutputs {
		if strings.TrimSpace(outputs[f.FieldName]) == "" {
			missing = append(missing, f.FieldName)
		}
	}
	return missing
}
