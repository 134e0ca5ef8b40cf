package domain

// BusinessPath es una entrada inmutable del catalogo de modelos de negocio.
type BusinessPath struct {
	ID                string     `json:"id" yaml:"id"`
	Name              string     `json:"name" yaml:"name"`
	Description       string     `json:"description" yaml:"description"`
	WhatItInvolves    string     `json:"what_it_involves" yaml:"what_it_involves"`
	TimeToFirstSignal string     `json:"time_to_first_signal" yaml:"time_to_first_signal"`
	MonthlyRevenue    string     `json:"monthly_revenue" yaml:"monthly_revenue"`
	CommonFailureMode string     `json:"common_failure_mode" yaml:"common_failure_mode"`
	BadFitFor         []string   `json:"bad_fit_for" yaml:"bad_fit_for"`
	EvaluationWeight  Evaluation `json:"evaluation_weight" yaml:"evaluation_weight"`
	Insight           string     `json:"insight,omitempty" yaml:"insight"`
	FirstCommitment   string     `json:"-" yaml:"first_commitment"`
}

const (
	FitReasonStrong = "Strong fit. Your constraints align well with this path."
	FitReasonViable = "Viable option. Some misalignment but workable."
	FitReasonPoor   = "Poor fit right now. Core constraints misaligned."
)

// FitResult se calcula en cada ranking; nunca se persiste.
type FitResult struct {
	Path      BusinessPath `json:"path"`
	FitScore  float64      `json:"fit_score"`
	FitReason string       `json:"fit_reason"`
}
