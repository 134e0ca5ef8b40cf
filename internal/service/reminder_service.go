package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"launchpath/internal/email"
	"launchpath/internal/repository"
)

// ReminderService avisa por correo cuando un experimento entra en decaimiento (mas de 3 dias vencido).
type ReminderService struct {
	logger      *zap.Logger
	commitments repository.CommitmentRepository
	sender      email.Sender
	now         func() time.Time
}

func NewReminderService(logger *zap.Logger, commitments repository.CommitmentRepository, sender email.Sender) *ReminderService {
	return &ReminderService{
		logger:      logger,
		commitments: commitments,
		sender:      sender,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SendOverdue envia un recordatorio por cada compromiso en decaimiento y devuelve cuantos se enviaron.
// Un fallo de envio se registra y no detiene al resto.
func (s *ReminderService) SendOverdue(ctx context.Context) (int, error) {
	now := s.now()
	overdue, err := s.commitments.ListOverdue(ctx, now.Add(-decayDays*24*time.Hour))
	if err != nil {
		return 0, fmt.Errorf("list overdue commitments: %w", err)
	}

	sent := 0
	for _, o := range overdue {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		staleness := ExperimentStaleness(o.Commitment.Deadline, now)
		if staleness.DaysOverdue <= decayDays {
			continue
		}
		err := s.sender.SendCommitmentReminder(ctx, email.Reminder{
			To:       o.Email,
			Name:     o.DisplayName,
			Action:   o.Commitment.Action,
			Deadline: o.Commitment.Deadline,
			Message:  staleness.Message,
		})
		if err != nil {
			s.logger.Warn("send reminder failed",
				zap.String("user_id", o.Commitment.UserID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}
	s.logger.Info("reminders sent", zap.Int("sent", sent), zap.Int("overdue", len(overdue)))
	return sent, nil
}
