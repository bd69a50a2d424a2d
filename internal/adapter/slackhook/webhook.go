package slackhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"aws-slack-notifier/internal/domain/model"
	"aws-slack-notifier/internal/domain/ports"
)

// Webhook posts messages to Slack incoming webhooks.
type Webhook struct {
	httpClient *http.Client
	logger     ports.Logger
}

var _ ports.Deliverer = (*Webhook)(nil)

// NewWebhook creates a Slack webhook client.
func NewWebhook(timeout time.Duration, logger ports.Logger) *Webhook {
	return &Webhook{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Deliver posts msg to endpoint once and classifies the response.
// The error is non-nil only when no response was received.
func (w *Webhook) Deliver(ctx context.Context, msg model.Message, endpoint string) (model.Outcome, error) {
	if endpoint == "" {
		return model.Outcome{}, fmt.Errorf("webhook URL is empty")
	}

	body, err := json.Marshal(toWebhookMessage(msg))
	if err != nil {
		return model.Outcome{}, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return model.Outcome{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = int64(len(body))

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	outcome := model.Classify(resp.StatusCode, reasonPhrase(resp))
	if w.logger != nil {
		w.logger.Info(ctx, "slack webhook responded", "status", resp.StatusCode, "outcome", outcome.Kind.String())
	}
	return outcome, nil
}

func toWebhookMessage(msg model.Message) *slack.WebhookMessage {
	return &slack.WebhookMessage{
		Channel: msg.Channel,
		Attachments: []slack.Attachment{
			{
				Color:      string(msg.Color),
				Title:      msg.Title,
				Text:       msg.Body,
				Footer:     msg.Footer,
				FooterIcon: msg.FooterIcon,
				Ts:         json.Number(strconv.FormatInt(msg.Timestamp, 10)),
			},
		},
	}
}

// reasonPhrase strips the numeric code from the status line.
func reasonPhrase(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
