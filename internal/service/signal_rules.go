package service

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"launchpath/internal/catalog"
	"launchpath/internal/domain"
)

// LearnedMoreOfThis es la unica respuesta de "aprendizaje" que confirma traccion.
const LearnedMoreOfThis = "This works. I need to do more."

const (
	explanationStrong        = "Clear traction. The market is responding."
	explanationUnclearResult = "Activity happened, but results are unclear."
	explanationNeedsWork     = "You showed up, but the approach needs work."
	explanationNoSignal      = "No meaningful signal generated yet."
)

var (
	tractionMarkers   = []string{"first sale", "Landed a client", "performed well"}
	partialMarkers    = []string{"no sales yet", "no commitments", "small response"}
	noTractionMarkers = []string{"no traction", "no response", "no engagement"}
)

// ClassifySignal clasifica un check-in. Gana la primera regla que aplique.
// La comparacion de outcome es por substring y sensible a mayusculas; learned debe coincidir exacto.
func ClassifySignal(completed bool, outcome, learned string) domain.Signal {
	if !completed {
		return domain.Signal{Type: domain.SignalWeak, Explanation: explanationNoSignal}
	}
	switch {
	case containsAny(outcome, tractionMarkers) && learned == LearnedMoreOfThis:
		return domain.Signal{Type: domain.SignalStrong, Explanation: explanationStrong}
	case containsAny(outcome, partialMarkers):
		return domain.Signal{Type: domain.SignalMixed, Explanation: explanationUnclearResult}
	case containsAny(outcome, noTractionMarkers):
		return domain.Signal{Type: domain.SignalMixed, Explanation: explanationNeedsWork}
	}
	return domain.Signal{Type: domain.SignalWeak, Explanation: explanationNoSignal}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// RandomSource devuelve un valor uniforme en [0, 1).
type RandomSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRandomSource usa el generador global de math/rand/v2.
var DefaultRandomSource RandomSource = globalRand{}

// DecisionEngine aplica las reglas de ajuste sobre las tablas del catalogo.
type DecisionEngine struct {
	catalog *catalog.Catalog
	rng     RandomSource
}

func NewDecisionEngine(cat *catalog.Catalog, rng RandomSource) *DecisionEngine {
	if rng == nil {
		rng = DefaultRandomSource
	}
	return &DecisionEngine{catalog: cat, rng: rng}
}

// Catalog expone el catalogo con el que fue construido el motor.
func (e *DecisionEngine) Catalog() *catalog.Catalog {
	return e.catalog
}

// RankPathsByFit rankea el catalogo completo. Una evaluacion fuera de rango es un error de programacion.
func (e *DecisionEngine) RankPathsByFit(evaluation domain.Evaluation) []domain.FitResult {
	if err := evaluation.Validate(); err != nil {
		panic(fmt.Sprintf("rank paths: invalid evaluation: %v", err))
	}
	return RankPathsByFit(e.catalog.Paths(), evaluation)
}

// AdjustmentFor mapea la senal al ajuste. Una senal debil se resuelve 50/50 entre pivot y escalate.
func (e *DecisionEngine) AdjustmentFor(signal domain.SignalType) domain.Adjustment {
	switch signal {
	case domain.SignalStrong:
		return domain.AdjustmentDoubleDown
	case domain.SignalMixed:
		return domain.AdjustmentNarrow
	case domain.SignalWeak:
		if e.rng.Float64() > 0.5 {
			return domain.AdjustmentPivot
		}
		return domain.AdjustmentEscalate
	}
	panic(fmt.Sprintf("unknown signal type %q", signal))
}

// DeterminePathAdjustment decide el ajuste y la siguiente accion para la direccion.
// currentAction no altera la busqueda; se recibe para que el llamador pueda registrarlo.
func (e *DecisionEngine) DeterminePathAdjustment(signal domain.SignalType, direction, currentAction string) domain.PathAdjustment {
	table, ok := e.catalog.Direction(direction)
	if !ok {
		panic(fmt.Sprintf("unknown direction %q", direction))
	}
	adj := e.AdjustmentFor(signal)
	return domain.PathAdjustment{
		Adjustment: adj,
		NextAction: table.Actions[adj],
	}
}
