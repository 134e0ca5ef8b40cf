package email

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestBuildMessage_Headers(t *testing.T) {
	msg := buildMessage("noreply@launchpath.app", "Launchpath", "ana@example.com", "Subject line", "body")
	if !strings.HasPrefix(msg, "From: Launchpath <noreply@launchpath.app>\r\n") {
		t.Fatalf("unexpected from header: %q", msg)
	}
	if !strings.Contains(msg, "To: ana@example.com\r\n") {
		t.Fatalf("missing to header: %q", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\nbody") {
		t.Fatalf("body not separated from headers: %q", msg)
	}
}

func TestReminderBody(t *testing.T) {
	r := Reminder{
		To:       "ana@example.com",
		Name:     "Ana",
		Action:   "Reach out to 10 people",
		Deadline: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Message:  "5 days overdue. Signal decaying. Either check in or kill this experiment.",
	}
	body := reminderBody(r)
	for _, want := range []string{"Hi Ana,", "Reach out to 10 people", "2024-03-01 09:30", "Signal decaying"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body: %q", want, body)
		}
	}

	r.Name = ""
	if !strings.HasPrefix(reminderBody(r), "Hi,\n") {
		t.Fatalf("expected generic greeting")
	}
}

func TestNewSMTPSender_Validation(t *testing.T) {
	if _, err := NewSMTPSender("", 587, "", "", "from@example.com", "", false); err == nil {
		t.Fatalf("expected error without host")
	}
	if _, err := NewSMTPSender("smtp.example.com", 0, "", "", "", "", false); err == nil {
		t.Fatalf("expected error without from")
	}
	s, err := NewSMTPSender("smtp.example.com", 0, "", "", "from@example.com", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.port != 587 {
		t.Fatalf("expected default port 587, got %d", s.port)
	}
	if err := s.SendCommitmentReminder(context.Background(), Reminder{}); err == nil {
		t.Fatalf("expected error without recipient")
	}
}

func TestDisabledSender(t *testing.T) {
	err := NewDisabledSender("smtp not configured").SendCommitmentReminder(context.Background(), Reminder{To: "a@b.c"})
	if err == nil || err.Error() != "smtp not configured" {
		t.Fatalf("unexpected error: %v", err)
	}
}
