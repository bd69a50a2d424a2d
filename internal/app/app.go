package app

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"aws-slack-notifier/internal/adapter/metrics"
	"aws-slack-notifier/internal/domain/model"
	"aws-slack-notifier/internal/domain/ports"
	"aws-slack-notifier/internal/usecase"
)

// App exposes the notifier through its runtime surfaces: the Lambda
// runtime, an HTTP endpoint and one-shot replays.
type App struct {
	notify  *usecase.NotifyEvent
	metrics *metrics.Recorder
	logger  ports.Logger
}

// New constructs an App instance.
func New(notify *usecase.NotifyEvent, recorder *metrics.Recorder, logger ports.Logger) *App {
	return &App{
		notify:  notify,
		metrics: recorder,
		logger:  logger,
	}
}

// RunLambda hands control to the Lambda runtime. It does not return.
func (a *App) RunLambda() {
	lambda.Start(a.HandleSNS)
}

// HandleSNS processes the first record of an SNS delivery. A returned error
// makes the platform retry the invocation.
func (a *App) HandleSNS(ctx context.Context, event events.SNSEvent) error {
	if len(event.Records) == 0 {
		a.logger.Warn(ctx, "received SNS event without records")
		return nil
	}
	if len(event.Records) > 1 {
		a.logger.Warn(ctx, "ignoring extra SNS records", "count", len(event.Records))
	}
	return a.notify.Handle(ctx, envelopeFrom(event.Records[0].SNS))
}

func envelopeFrom(sns events.SNSEntity) model.Envelope {
	return model.Envelope{
		MessageID: sns.MessageID,
		TopicARN:  sns.TopicArn,
		Subject:   sns.Subject,
		Message:   sns.Message,
	}
}
