package policy

import (
	"fmt"
	"strings"

	"aws-slack-notifier/internal/domain/model"
	"aws-slack-notifier/internal/domain/payload"
)

const (
	stackFooter     = "CloudFormation"
	stackConsoleURL = "https://console.aws.amazon.com/cloudformation/home?region=%s#/stacks/stackinfo?stackId=%s"
)

// StackStatus is a CloudFormation resource status.
type StackStatus string

const (
	StatusCreateInProgress         StackStatus = "CREATE_IN_PROGRESS"
	StatusCreateComplete           StackStatus = "CREATE_COMPLETE"
	StatusCreateFailed             StackStatus = "CREATE_FAILED"
	StatusUpdateInProgress         StackStatus = "UPDATE_IN_PROGRESS"
	StatusUpdateComplete           StackStatus = "UPDATE_COMPLETE"
	StatusUpdateFailed             StackStatus = "UPDATE_FAILED"
	StatusUpdateRollbackInProgress StackStatus = "UPDATE_ROLLBACK_IN_PROGRESS"
	StatusUpdateRollbackComplete   StackStatus = "UPDATE_ROLLBACK_COMPLETE"
	StatusDeleteInProgress         StackStatus = "DELETE_IN_PROGRESS"
	StatusDeleteComplete           StackStatus = "DELETE_COMPLETE"
	StatusDeleteFailed             StackStatus = "DELETE_FAILED"
)

// DisplayText returns the human phrase for s. Unknown statuses report false.
func (s StackStatus) DisplayText() (string, bool) {
	switch s {
	case StatusCreateInProgress:
		return "is being created", true
	case StatusCreateComplete:
		return "was created", true
	case StatusCreateFailed:
		return "failed to create", true
	case StatusUpdateInProgress:
		return "is being updated", true
	case StatusUpdateComplete:
		return "was updated", true
	case StatusUpdateFailed:
		return "failed to update", true
	case StatusUpdateRollbackInProgress:
		return "is rolling back", true
	case StatusUpdateRollbackComplete:
		return "was rolled back", true
	case StatusDeleteInProgress:
		return "is being deleted", true
	case StatusDeleteComplete:
		return "was deleted", true
	case StatusDeleteFailed:
		return "failed to delete", true
	default:
		return "", false
	}
}

// Color returns the attachment color for s. Unknown statuses report false.
func (s StackStatus) Color() (model.Color, bool) {
	switch s {
	case StatusCreateInProgress, StatusUpdateInProgress, StatusDeleteInProgress,
		StatusUpdateRollbackInProgress, StatusUpdateRollbackComplete:
		return model.ColorWarning, true
	case StatusCreateComplete, StatusUpdateComplete, StatusDeleteComplete:
		return model.ColorGood, true
	case StatusCreateFailed, StatusUpdateFailed, StatusDeleteFailed:
		return model.ColorDanger, true
	default:
		return model.ColorDefault, false
	}
}

// Failed reports whether s is a failure status.
func (s StackStatus) Failed() bool {
	return strings.HasSuffix(string(s), "_FAILED")
}

// StackPolicy reports stack-level transitions and any resource failure.
// Successful per-resource events are suppressed.
type StackPolicy struct{}

var stackRequired = []string{"StackId", "StackName", "LogicalResourceId", "ResourceStatus", "Timestamp"}

// Evaluate implements Policy.
func (StackPolicy) Evaluate(p payload.Payload, ctx Context) (model.Decision, error) {
	ev, ok := p.(payload.StackEvent)
	if !ok {
		return model.Decision{}, &PolicyError{Field: "payload", Reason: fmt.Sprintf("stack policy cannot evaluate %s payload", p.Kind())}
	}

	for _, key := range stackRequired {
		if _, ok := ev.Fields.Get(key); !ok {
			return model.Decision{}, missing(key)
		}
	}

	stackName := ev.Fields["StackName"]
	logicalID := ev.Fields["LogicalResourceId"]
	status := StackStatus(ev.Fields["ResourceStatus"])

	text, known := status.DisplayText()
	if !known {
		return model.Suppress(fmt.Sprintf("no display text for status %s", status)), nil
	}
	stackLevel := logicalID == stackName
	if !stackLevel && !status.Failed() {
		return model.Suppress(fmt.Sprintf("resource %s is %s", logicalID, status)), nil
	}

	ts, err := parseTimestamp("Timestamp", ev.Fields["Timestamp"])
	if err != nil {
		return model.Decision{}, err
	}

	stackID := ev.Fields["StackId"]
	link := fmt.Sprintf(stackConsoleURL, regionFrom(stackID, ctx.Region), escapeComponent(stackID))
	title := fmt.Sprintf("%s %s", slackLink(link, stackName), text)
	if !stackLevel {
		title = fmt.Sprintf("%s %s %s", slackLink(link, stackName), logicalID, text)
	}

	color, ok := status.Color()
	if !ok {
		color = model.ColorDefault
	}

	body := ev.Fields["ResourceStatusReason"]
	if status == StatusUpdateInProgress {
		body = ""
	}

	return model.Deliver(model.Message{
		Channel:    ctx.Channel,
		Title:      title,
		Body:       body,
		Color:      color,
		Footer:     stackFooter,
		FooterIcon: ctx.FooterIcon,
		Timestamp:  ts,
	}), nil
}
