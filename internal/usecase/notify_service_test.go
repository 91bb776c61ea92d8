package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
)

type fakeSender struct {
	mu     sync.Mutex
	sent   map[string]string
	reject map[string]struct{}
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		sent:   make(map[string]string),
		reject: make(map[string]struct{}),
	}
}

func (s *fakeSender) Send(_ context.Context, toEmail, _, _, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, bad := s.reject[toEmail]; bad {
		return fmt.Errorf("mailbox %s rejected", toEmail)
	}
	s.sent[toEmail] = body
	return nil
}

func newNotifyFixture(t *testing.T) (*poolFixture, *NotifyService, *fakeSender) {
	t.Helper()

	f := newPoolFixture()
	sender := newFakeSender()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewNotifyService(f.entryRepo, sender, 2, logger)
	return f, svc, sender
}

func TestNotifyService_Recipients_DeduplicatesEmails(t *testing.T) {
	f, svc, _ := newNotifyFixture(t)
	submitEntry(t, f, "Pat Jordan", "pat@example.com", eastRegionSelections())
	submitEntry(t, f, "Pat Again", "PAT@example.com", eastRegionSelections())
	submitEntry(t, f, "Sam Reyes", "sam@example.com", eastRegionSelections())

	recipients, err := svc.Recipients(t.Context())
	if err != nil {
		t.Fatalf("recipients failed: %v", err)
	}
	if len(recipients) != 2 {
		t.Fatalf("unexpected recipient count: %d", len(recipients))
	}
	if recipients[0].Email != "pat@example.com" || recipients[1].Email != "sam@example.com" {
		t.Fatalf("unexpected recipients: %+v", recipients)
	}
}

func TestNotifyService_SendBulk_PersonalizesMessage(t *testing.T) {
	_, svc, sender := newNotifyFixture(t)

	result, err := svc.SendBulk(t.Context(), BulkSendInput{
		Subject: "Pool update",
		Message: "Hi {name} ({nickname}), standings are live for {email}.",
		Recipients: []Recipient{
			{Name: "Pat Jordan", Nickname: "PJ", Email: "pat@example.com"},
		},
	})
	if err != nil {
		t.Fatalf("send bulk failed: %v", err)
	}
	if result.SuccessCount != 1 || result.FailedCount != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	body := sender.sent["pat@example.com"]
	want := "Hi Pat Jordan (PJ), standings are live for pat@example.com."
	if body != want {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestNotifyService_SendBulk_ReportsPerRecipient(t *testing.T) {
	_, svc, sender := newNotifyFixture(t)
	sender.reject["sam@example.com"] = struct{}{}

	result, err := svc.SendBulk(t.Context(), BulkSendInput{
		Subject: "Pool update",
		Message: "Standings are live.",
		Recipients: []Recipient{
			{Name: "Pat Jordan", Email: "pat@example.com"},
			{Name: "Sam Reyes", Email: "sam@example.com"},
		},
	})
	if err != nil {
		t.Fatalf("send bulk failed: %v", err)
	}
	if result.SuccessCount != 1 || result.FailedCount != 1 || result.Total != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if len(result.Deliveries) != 2 {
		t.Fatalf("unexpected delivery count: %d", len(result.Deliveries))
	}
	if result.Deliveries[0].Email != "pat@example.com" || result.Deliveries[0].Status != deliveryStatusSuccess {
		t.Fatalf("unexpected first delivery: %+v", result.Deliveries[0])
	}
	if result.Deliveries[1].Email != "sam@example.com" || result.Deliveries[1].Status != deliveryStatusFailed {
		t.Fatalf("unexpected second delivery: %+v", result.Deliveries[1])
	}
}

func TestNotifyService_SendBulk_ValidatesInput(t *testing.T) {
	_, svc, _ := newNotifyFixture(t)

	cases := []struct {
		name  string
		input BulkSendInput
	}{
		{
			name:  "missing subject",
			input: BulkSendInput{Message: "hello", Recipients: []Recipient{{Email: "pat@example.com"}}},
		},
		{
			name:  "missing message",
			input: BulkSendInput{Subject: "hello", Recipients: []Recipient{{Email: "pat@example.com"}}},
		},
		{
			name:  "no recipients",
			input: BulkSendInput{Subject: "hello", Message: "hello"},
		},
		{
			name:  "recipient without email",
			input: BulkSendInput{Subject: "hello", Message: "hello", Recipients: []Recipient{{Name: "Pat"}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SendBulk(t.Context(), tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestNotifyService_SendBulk_RequiresSender(t *testing.T) {
	f := newPoolFixture()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewNotifyService(f.entryRepo, nil, 2, logger)

	_, err := svc.SendBulk(t.Context(), BulkSendInput{
		Subject:    "Pool update",
		Message:    "Standings are live.",
		Recipients: []Recipient{{Email: "pat@example.com"}},
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
