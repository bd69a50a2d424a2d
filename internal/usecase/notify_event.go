package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aws-slack-notifier/internal/config"
	"aws-slack-notifier/internal/domain/model"
	"aws-slack-notifier/internal/domain/payload"
	"aws-slack-notifier/internal/domain/policy"
	"aws-slack-notifier/internal/domain/ports"
)

// Router resolves the webhook destination for a payload kind.
type Router interface {
	Route(kind payload.Kind) (config.Route, bool)
}

// NotifyEvent turns one SNS notification into at most one chat message.
//
// Only server-side delivery failures are returned to the caller. Malformed
// events and rejected requests are logged and absorbed so the platform does
// not spend its retry budget on them.
type NotifyEvent struct {
	router   Router
	notifier ports.Deliverer
	metrics  ports.Metrics
	logger   ports.Logger
	region   string
}

// NotifyEventConfig holds settings shared by every evaluation.
type NotifyEventConfig struct {
	Region string
}

// NewNotifyEvent constructs a NotifyEvent use case.
func NewNotifyEvent(
	router Router,
	notifier ports.Deliverer,
	metrics ports.Metrics,
	logger ports.Logger,
	cfg NotifyEventConfig,
) *NotifyEvent {
	return &NotifyEvent{
		router:   router,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		region:   cfg.Region,
	}
}

// Handle processes env. A non-nil error asks the platform to retry.
func (n *NotifyEvent) Handle(ctx context.Context, env model.Envelope) error {
	n.logger.Info(ctx, "received notification", "messageId", env.MessageID, "subject", env.Subject)

	p, err := payload.Parse(env.Message)
	if err != nil {
		n.metrics.EventReceived("invalid")
		n.logger.Error(ctx, "discarding unparseable notification", "messageId", env.MessageID, "error", err)
		return nil
	}
	kind := string(p.Kind())
	n.metrics.EventReceived(kind)

	route, ok := n.router.Route(p.Kind())
	if !ok {
		n.metrics.Decision(kind, "unrouted")
		n.logger.Warn(ctx, "no webhook configured for notification", "kind", kind)
		return nil
	}

	pol, ok := policy.ForKind(p.Kind())
	if !ok {
		n.metrics.Decision(kind, "unrouted")
		n.logger.Warn(ctx, "no policy for notification", "kind", kind)
		return nil
	}

	decision, err := pol.Evaluate(p, policy.Context{
		Region:     n.region,
		Channel:    route.Channel,
		FooterIcon: route.FooterIcon,
	})
	if err != nil {
		n.metrics.Decision(kind, "invalid")
		n.logger.Error(ctx, "discarding malformed notification", "kind", kind, "error", err)
		return nil
	}

	if reason, suppressed := decision.Suppressed(); suppressed {
		n.metrics.Decision(kind, "suppressed")
		n.logger.Info(ctx, "skipping notification", "kind", kind, "reason", reason)
		return nil
	}
	n.metrics.Decision(kind, "deliver")

	msg, _ := decision.Message()
	return n.deliver(ctx, msg, route.WebhookURL)
}

func (n *NotifyEvent) deliver(ctx context.Context, msg model.Message, endpoint string) error {
	start := time.Now()
	outcome, err := n.notifier.Deliver(ctx, msg, endpoint)
	if err != nil {
		n.metrics.Delivery("transport_error", time.Since(start))
		n.logger.Error(ctx, "failed to reach slack webhook", "error", err)
		return fmt.Errorf("deliver notification: %w", err)
	}
	n.metrics.Delivery(outcome.Kind.String(), time.Since(start))

	switch outcome.Kind {
	case model.OutcomeSuccess:
		n.logger.Info(ctx, "message posted successfully", "status", outcome.StatusCode)
		return nil
	case model.OutcomeClientError:
		// The request itself was rejected; a retry would get the same answer.
		n.logger.Error(ctx, "error posting message to slack API", "status", outcome.StatusCode, "reason", outcome.Status)
		return nil
	default:
		err := &model.DeliveryError{Outcome: outcome}
		n.logger.Error(ctx, "slack API server error", "status", outcome.StatusCode, "reason", outcome.Status)
		return err
	}
}

// IsRetryable reports whether err returned by Handle should trigger a redelivery.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var de *model.DeliveryError
	if errors.As(err, &de) {
		return de.Outcome.Retryable()
	}
	return true
}
