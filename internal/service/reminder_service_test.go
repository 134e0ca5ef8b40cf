package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"launchpath/internal/domain"
	"launchpath/internal/repository"
)

func overdueFor(userID, email string, deadline time.Time) repository.OverdueCommitment {
	return repository.OverdueCommitment{
		Commitment:  domain.Commitment{ID: "c-" + userID, UserID: userID, Action: "Send 10 outreach messages", Deadline: deadline, IsActive: true},
		Email:       email,
		DisplayName: userID,
	}
}

func TestReminderService_SendsOnlyDecayingExperiments(t *testing.T) {
	now := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockCommitmentRepo{overdue: []repository.OverdueCommitment{
		overdueFor("u1", "u1@example.com", now.Add(-5*24*time.Hour)),
		overdueFor("u2", "u2@example.com", now.Add(-3*24*time.Hour)),
		overdueFor("u3", "u3@example.com", now.Add(-9*24*time.Hour)),
	}}
	sender := &mockSender{fail: map[string]error{"u3@example.com": errors.New("mailbox full")}}
	svc := NewReminderService(zap.NewNop(), repo, sender)
	svc.now = fixedClock(now)

	sent, err := svc.SendOverdue(context.Background())
	if err != nil {
		t.Fatalf("send overdue: %v", err)
	}
	if sent != 1 || len(sender.sent) != 1 {
		t.Fatalf("expected one reminder, got %d", sent)
	}
	r := sender.sent[0]
	if r.To != "u1@example.com" || r.Name != "u1" {
		t.Fatalf("unexpected reminder %+v", r)
	}
	if r.Message != "5 days overdue. Signal decaying. Either check in or kill this experiment." {
		t.Fatalf("unexpected message %q", r.Message)
	}
}

func TestReminderService_StopsOnCancelledContext(t *testing.T) {
	now := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockCommitmentRepo{overdue: []repository.OverdueCommitment{
		overdueFor("u1", "u1@example.com", now.Add(-5*24*time.Hour)),
	}}
	sender := &mockSender{}
	svc := NewReminderService(zap.NewNop(), repo, sender)
	svc.now = fixedClock(now)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.SendOverdue(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no reminders after cancel")
	}
}
