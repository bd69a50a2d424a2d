package ports

import (
	"context"

	"aws-slack-notifier/internal/domain/model"
)

// Deliverer posts a formatted message to a chat webhook and classifies the response.
// A non-nil error means no response was received at all.
type Deliverer interface {
	Deliver(ctx context.Context, msg model.Message, endpoint string) (model.Outcome, error)
}
