package domain

import "time"

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldList     FieldType = "list"
	FieldBoolean  FieldType = "boolean"
)

type ChapterField struct {
	FieldName string    `json:"field_name" yaml:"field_name"`
	Label     string    `json:"label" yaml:"label"`
	Type      FieldType `json:"type" yaml:"type"`
}

// Chapter es contenido guiado estatico; solo se modelan los campos requeridos.
type Chapter struct {
	ID                 string         `json:"id" yaml:"id"`
	PathID             string         `json:"path_id" yaml:"path_id"`
	Sequence           int            `json:"sequence" yaml:"sequence"`
	Title              string         `json:"title" yaml:"title"`
	CompletionCriteria string         `json:"completion_criteria" yaml:"completion_criteria"`
	RequiredOutputs    []ChapterField `json:"required_outputs" yaml:"required_outputs"`
}

type ChapterOutput struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	ChapterID   string            `json:"chapter_id"`
	Outputs     map[string]string `json:"outputs"`
	Completed   bool              `json:"completed"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type PathCompletion struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	PathID      string    `json:"path_id"`
	CompletedAt time.Time `json:"completed_at"`
}
