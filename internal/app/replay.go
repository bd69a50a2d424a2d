package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-lambda-go/events"

	"aws-slack-notifier/internal/domain/model"
)

// Replay processes an SNS envelope read from r, as the Lambda runtime would.
func (a *App) Replay(ctx context.Context, r io.Reader) error {
	var event events.SNSEvent
	if err := json.NewDecoder(r).Decode(&event); err != nil {
		return fmt.Errorf("decode SNS event: %w", err)
	}
	return a.HandleSNS(ctx, event)
}

// ReplayMessage processes a bare SNS message body.
func (a *App) ReplayMessage(ctx context.Context, subject, message string) error {
	return a.notify.Handle(ctx, model.Envelope{
		MessageID: "replay",
		Subject:   subject,
		Message:   message,
	})
}
