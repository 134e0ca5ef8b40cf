package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Reminder es el aviso de un compromiso vencido.
type Reminder struct {
	To       string
	Name     string
	Action   string
	Deadline time.Time
	Message  string
}

// Sender define la interfaz para el envio de recordatorios.
type Sender interface {
	SendCommitmentReminder(ctx context.Context, r Reminder) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendCommitmentReminder(_ context.Context, _ Reminder) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}

const reminderSubject = "Your experiment is overdue"

func reminderBody(r Reminder) string {
	greeting := "Hi,"
	if name := strings.TrimSpace(r.Name); name != "" {
		greeting = fmt.Sprintf("Hi %s,", name)
	}
	return fmt.Sprintf(
		"%s\n\nYour current commitment:\n  %s\n\nDeadline: %s UTC\n%s\n",
		greeting,
		r.Action,
		r.Deadline.UTC().Format("2006-01-02 15:04"),
		r.Message,
	)
}
