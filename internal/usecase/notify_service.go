package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/bracket-pool/internal/domain/entry"
)

const defaultNotifyWorkers = 4

// Sender delivers one message to one address.
type Sender interface {
	Send(ctx context.Context, toEmail, toName, subject, body string) error
}

type Recipient struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type BulkSendInput struct {
	Subject    string
	Message    string
	Recipients []Recipient
	MaxWorkers int
}

type BulkSendResult struct {
	Total         int              `json:"total"`
	SuccessCount  int              `json:"success_count"`
	FailedCount   int              `json:"failed_count"`
	WorkerCount   int              `json:"worker_count"`
	Deliveries    []DeliveryResult `json:"deliveries"`
}

type DeliveryResult struct {
	Email      string `json:"email"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	deliveryStatusSuccess = "success"
	deliveryStatusFailed  = "failed"
)

// NotifyService fans bulk mail out to pool participants over a worker
// pool. Message bodies support {name}, {nickname} and {email}
// placeholders substituted per recipient.
type NotifyService struct {
	entryRepo entry.Repository
	sender    Sender
	workers   int
	logger    *slog.Logger
}

func NewNotifyService(entryRepo entry.Repository, sender Sender, workers int, logger *slog.Logger) *NotifyService {
	if workers <= 0 {
		workers = defaultNotifyWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &NotifyService{
		entryRepo: entryRepo,
		sender:    sender,
		workers:   workers,
		logger:    logger,
	}
}

// Recipients lists every participant with a distinct email address.
func (s *NotifyService) Recipients(ctx context.Context) ([]Recipient, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotifyService.Recipients")
	defer span.End()

	entries, err := s.entryRepo.ListRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	out := make([]Recipient, 0, len(entries))
	for _, e := range entries {
		email := strings.ToLower(strings.TrimSpace(e.Email))
		if email == "" {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, Recipient{
			Name:     e.PlayerName,
			Nickname: e.Nickname,
			Email:    email,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Email < out[j].Email
	})
	return out, nil
}

func (s *NotifyService) SendBulk(ctx context.Context, input BulkSendInput) (BulkSendResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotifyService.SendBulk")
	defer span.End()

	if s.sender == nil {
		return BulkSendResult{}, fmt.Errorf("%w: mail sender is not configured", ErrDependencyUnavailable)
	}

	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if subject == "" || message == "" {
		return BulkSendResult{}, fmt.Errorf("%w: subject and message are required", ErrInvalidInput)
	}
	if len(input.Recipients) == 0 {
		return BulkSendResult{}, fmt.Errorf("%w: at least one recipient is required", ErrInvalidInput)
	}
	for _, recipient := range input.Recipients {
		if strings.TrimSpace(recipient.Email) == "" {
			return BulkSendResult{}, fmt.Errorf("%w: recipient email is required", ErrInvalidInput)
		}
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = s.workers
	}
	if workerCount > len(input.Recipients) {
		workerCount = len(input.Recipients)
	}

	result := BulkSendResult{
		Total:       len(input.Recipients),
		WorkerCount: workerCount,
		Deliveries:  make([]DeliveryResult, 0, len(input.Recipients)),
	}

	deliveries := make(chan DeliveryResult, len(input.Recipients))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BulkSendResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, recipient := range input.Recipients {
		recipient := recipient
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := DeliveryResult{Email: recipient.Email}

			body := personalizeMessage(message, recipient)
			if sendErr := s.sender.Send(ctx, recipient.Email, recipient.Name, subject, body); sendErr != nil {
				row.Status = deliveryStatusFailed
				row.Message = sendErr.Error()
				failedCount.Add(1)
			} else {
				row.Status = deliveryStatusSuccess
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			deliveries <- row
		}); err != nil {
			workers.Done()
			return BulkSendResult{}, fmt.Errorf("submit delivery to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(deliveries)

	for row := range deliveries {
		result.Deliveries = append(result.Deliveries, row)
	}

	sort.SliceStable(result.Deliveries, func(i, j int) bool {
		return result.Deliveries[i].Email < result.Deliveries[j].Email
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "bulk mail dispatched",
		"total", result.Total, "success", result.SuccessCount, "failed", result.FailedCount)
	return result, nil
}

func personalizeMessage(message string, recipient Recipient) string {
	replacer := strings.NewReplacer(
		"{name}", recipient.Name,
		"{nickname}", recipient.Nickname,
		"{email}", recipient.Email,
	)
	return replacer.Replace(message)
}
