package domain

import "time"

type SignalType string

const (
	SignalWeak   SignalType = "weak"
	SignalMixed  SignalType = "mixed"
	SignalStrong SignalType = "strong"
)

type Adjustment string

const (
	AdjustmentDoubleDown Adjustment = "double_down"
	AdjustmentNarrow     Adjustment = "narrow"
	AdjustmentPivot      Adjustment = "pivot"
	AdjustmentEscalate   Adjustment = "escalate"
)

// Adjustments lista todos los ajustes posibles; cada direccion debe tener una accion por cada uno.
var Adjustments = []Adjustment{
	AdjustmentDoubleDown,
	AdjustmentNarrow,
	AdjustmentPivot,
	AdjustmentEscalate,
}

type Signal struct {
	Type        SignalType `json:"type"`
	Explanation string     `json:"explanation"`
}

type PathAdjustment struct {
	Adjustment Adjustment `json:"adjustment"`
	NextAction string     `json:"next_action"`
}

// Commitment es una accion acotada en el tiempo que el usuario acepto intentar.
type Commitment struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Action      string     `json:"action"`
	Deadline    time.Time  `json:"deadline"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CheckIn es el registro inmutable de un check-in: entradas crudas mas el resultado calculado.
type CheckIn struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	CommitmentID      string     `json:"commitment_id"`
	Completed         bool       `json:"completed"`
	Outcome           string     `json:"outcome"`
	Learned           string     `json:"learned"`
	SignalType        SignalType `json:"signal_type"`
	SignalExplanation string     `json:"signal_explanation"`
	PathAdjustment    Adjustment `json:"path_adjustment"`
	NextAction        string     `json:"next_action"`
	CreatedAt         time.Time  `json:"created_at"`
}
