package policy

import (
	"fmt"

	"aws-slack-notifier/internal/domain/model"
	"aws-slack-notifier/internal/domain/payload"
)

const (
	alarmFooter     = "CloudWatch"
	alarmConsoleURL = "https://console.aws.amazon.com/cloudwatch/home?region=%s#s=Alarms&alarm=%s"

	// DefaultAlarmFooterIcon is the CloudWatch console favicon.
	DefaultAlarmFooterIcon = "https://s3.amazonaws.com/cloudwatch-console-static-content-s3/1.0/images/favicon.ico"
)

// AlarmState is a CloudWatch alarm state.
type AlarmState string

const (
	StateAlarm            AlarmState = "ALARM"
	StateOK               AlarmState = "OK"
	StateInsufficientData AlarmState = "INSUFFICIENT_DATA"
)

// Color returns the attachment color for s. Unknown states report false.
func (s AlarmState) Color() (model.Color, bool) {
	switch s {
	case StateAlarm:
		return model.ColorDanger, true
	case StateOK:
		return model.ColorGood, true
	case StateInsufficientData:
		return model.ColorWarning, true
	default:
		return model.ColorDefault, false
	}
}

// AlarmPolicy reports every alarm transition.
type AlarmPolicy struct{}

// Evaluate implements Policy.
func (AlarmPolicy) Evaluate(p payload.Payload, ctx Context) (model.Decision, error) {
	ev, ok := p.(payload.AlarmEvent)
	if !ok {
		return model.Decision{}, &PolicyError{Field: "payload", Reason: fmt.Sprintf("alarm policy cannot evaluate %s payload", p.Kind())}
	}

	switch {
	case ev.AlarmName == "":
		return model.Decision{}, missing("AlarmName")
	case ev.NewStateValue == "":
		return model.Decision{}, missing("NewStateValue")
	case ev.StateChangeTime == "":
		return model.Decision{}, missing("StateChangeTime")
	}

	ts, err := parseTimestamp("StateChangeTime", ev.StateChangeTime)
	if err != nil {
		return model.Decision{}, err
	}

	state := AlarmState(ev.NewStateValue)
	color, _ := state.Color()

	var body string
	if state == StateAlarm {
		body = fmt.Sprintf("%s\n\n%s", ev.AlarmDescription, ev.NewStateReason)
	}

	link := fmt.Sprintf(alarmConsoleURL, ctx.Region, escapeComponent(ev.AlarmName))
	icon := ctx.FooterIcon
	if icon == "" {
		icon = DefaultAlarmFooterIcon
	}

	return model.Deliver(model.Message{
		Channel:    ctx.Channel,
		Title:      fmt.Sprintf("%s is %s", slackLink(link, ev.AlarmName), ev.NewStateValue),
		Body:       body,
		Color:      color,
		Footer:     alarmFooter,
		FooterIcon: icon,
		Timestamp:  ts,
	}), nil
}
