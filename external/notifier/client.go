package notifier

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/bracket-pool/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var errMailTransient = crerr.New("mail provider transient failure")

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	SenderName     string
	SenderEmail    string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client delivers transactional mail through a Brevo-style HTTP API.
type Client struct {
	client         *http.Client
	baseURL        string
	apiKey         string
	senderName     string
	senderEmail    string
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		senderName:     strings.TrimSpace(cfg.SenderName),
		senderEmail:    strings.TrimSpace(cfg.SenderEmail),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type mailAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type sendMailRequest struct {
	Sender      mailAddress   `json:"sender"`
	To          []mailAddress `json:"to"`
	Subject     string        `json:"subject"`
	TextContent string        `json:"textContent"`
}

// Send posts one message to the provider's transactional send
// endpoint. Transport failures and retryable statuses trip the
// circuit breaker; a 4xx rejection does not.
func (c *Client) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "mail circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("mail provider is temporarily unavailable: %w", err)
		}
	}

	if strings.TrimSpace(toEmail) == "" {
		return crerr.New("recipient email is required")
	}

	baseURL, err := validateHTTPBaseURL(c.baseURL)
	if err != nil {
		return crerr.Wrap(err, "invalid NOTIFIER_BASE_URL")
	}
	sendURL := baseURL + "/v3/smtp/email"

	payload := sendMailRequest{
		Sender:      mailAddress{Name: c.senderName, Email: c.senderEmail},
		To:          []mailAddress{{Name: strings.TrimSpace(toName), Email: strings.TrimSpace(toEmail)}},
		Subject:     subject,
		TextContent: body,
	}

	rawBody, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal mail payload")
	}
	bodyText := truncateForLog(string(rawBody), 4096)
	curlPreview := buildSendCurlPreview(sendURL, bodyText)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("mail.send_url", sendURL),
			attribute.String("mail.to", toEmail),
			attribute.String("mail.request_curl_preview", curlPreview),
		)
	}
	c.logger.InfoContext(ctx, "mail send request", "to", toEmail, "subject", subject, "curl_preview", curlPreview)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, strings.NewReader(string(rawBody)))
	if err != nil {
		return crerr.Wrap(err, "create mail request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: send mail to=%s: %v", errMailTransient, toEmail, err)
		c.recordCircuitResult(callErr)
		return callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if isRetryableStatus(resp.StatusCode) {
			callErr := fmt.Errorf(
				"%w: send mail status=%d to=%s body=%s",
				errMailTransient,
				resp.StatusCode,
				toEmail,
				strings.TrimSpace(string(raw)),
			)
			c.recordCircuitResult(callErr)
			return callErr
		}

		callErr := fmt.Errorf(
			"send mail status=%d to=%s body=%s",
			resp.StatusCode,
			toEmail,
			strings.TrimSpace(string(raw)),
		)
		c.recordCircuitResult(callErr)
		return callErr
	}

	c.logger.InfoContext(ctx, "mail sent", "to", toEmail, "subject", subject)
	c.recordCircuitResult(nil)
	return nil
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func buildSendCurlPreview(sendURL, body string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(sendURL))
	appendPart("-H")
	appendPart(shellQuote("Authorization: Bearer ***"))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errMailTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
