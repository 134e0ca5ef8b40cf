package domain

import "time"

type Mode string

const (
	ModeOrient   Mode = "orient"
	ModeEvaluate Mode = "evaluate"
	ModeCommit   Mode = "commit"
	ModeOperate  Mode = "operate"
)

// UserState guarda en que etapa del recorrido esta el usuario.
type UserState struct {
	UserID               string      `json:"user_id"`
	CurrentMode          Mode        `json:"current_mode"`
	CurrentDirection     string      `json:"current_direction,omitempty"`
	EliminatedDirections []string    `json:"eliminated_directions"`
	Evaluation           *Evaluation `json:"evaluation,omitempty"`
	CurrentChapterID     string      `json:"current_chapter_id,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// IsEliminated indica si el usuario descarto la direccion.
func (s UserState) IsEliminated(pathID string) bool {
	for _, d := range s.EliminatedDirections {
		if d == pathID {
			return true
		}
	}
	return false
}
