package service

import (
	"math"
	"sort"

	"launchpath/internal/domain"
)

const (
	strongFitThreshold = 0.7
	viableFitThreshold = 0.4

	// DefaultViableThreshold es el corte que usan los llamadores para separar paths viables.
	DefaultViableThreshold = viableFitThreshold
)

// FitScore calcula el ajuste lineal entre la evaluacion del usuario y el perfil ideal del path.
// Una coincidencia perfecta da 1; una distancia L1 de 4 o mas da 0.
func FitScore(user, weight domain.Evaluation) float64 {
	totalDiff := math.Abs(user.Patience-weight.Patience) +
		math.Abs(user.RejectionTolerance-weight.RejectionTolerance) +
		math.Abs(user.BuildVsSell-weight.BuildVsSell) +
		math.Abs(user.Leverage-weight.Leverage)
	return math.Max(0, 4-totalDiff) / 4
}

// FitReasonFor traduce el puntaje a uno de los tres textos fijos.
func FitReasonFor(score float64) string {
	switch {
	case score > strongFitThreshold:
		return domain.FitReasonStrong
	case score > viableFitThreshold:
		return domain.FitReasonViable
	default:
		return domain.FitReasonPoor
	}
}

// RankPathsByFit puntua cada path y los ordena de mayor a menor ajuste.
// Los empates conservan el orden del catalogo.
func RankPathsByFit(paths []domain.BusinessPath, evaluation domain.Evaluation) []domain.FitResult {
	results := make([]domain.FitResult, 0, len(paths))
	for _, p := range paths {
		score := FitScore(evaluation, p.EvaluationWeight)
		results = append(results, domain.FitResult{
			Path:      p,
			FitScore:  score,
			FitReason: FitReasonFor(score),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FitScore > results[j].FitScore
	})
	return results
}

// ViablePaths separa un ranking en viables (score > threshold) y de mal ajuste.
// El corte es politica del llamador, por eso no vive dentro de RankPathsByFit.
func ViablePaths(ranked []domain.FitResult, threshold float64) (viable, poor []domain.FitResult) {
	for _, r := range ranked {
		if r.FitScore > threshold {
			viable = append(viable, r)
		} else {
			poor = append(poor, r)
		}
	}
	return viable, poor
}

// IsViable indica si un path concreto supera el corte para la evaluacion dada.
func IsViable(ranked []domain.FitResult, pathID string, threshold float64) bool {
	for _, r := range ranked {
		if r.Path.ID == pathID {
			return r.FitScore > threshold
		}
	}
	return false
}
