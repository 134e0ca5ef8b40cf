package domain

import "time"

type BusinessStage string

const (
	StageIdea          BusinessStage = "idea"
	StageTesting       BusinessStage = "testing"
	StageEarlyTraction BusinessStage = "early_traction"
)

func (s BusinessStage) Valid() bool {
	switch s {
	case StageIdea, StageTesting, StageEarlyTraction:
		return true
	}
	return false
}

// BusinessProfile es lo que el usuario sabe hoy de su negocio. Todo es opcional salvo la etapa.
type BusinessProfile struct {
	UserID             string        `json:"user_id"`
	BusinessName       string        `json:"business_name"`
	BusinessType       string        `json:"business_type"`
	CurrentStage       BusinessStage `json:"current_stage"`
	TargetCustomer     string        `json:"target_customer"`
	WhereToReachThem   string        `json:"where_to_reach_them"`
	CurrentAlternative string        `json:"current_alternative"`
	ProblemToSolve     string        `json:"problem_to_solve"`
	WhatOffering       string        `json:"what_offering"`
	QuitCriteria       string        `json:"quit_criteria"`
	TimePerWeek        string        `json:"time_per_week"`
	MoneyAvailable     string        `json:"money_available"`
	ExistingSkills     []string      `json:"existing_skills"`
	MissingSkills      []string      `json:"missing_skills"`
	SuccessIn30Days    string        `json:"success_in_30_days"`
	FailureSignal      string        `json:"failure_signal"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// SessionOutcome es una entrada del registro de "que cambio".
type SessionOutcome struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	WhatChanged string    `json:"what_changed"`
	CreatedAt   time.Time `json:"created_at"`
}
