// Package policy decides whether a parsed event becomes a chat message and
// builds that message.
package policy

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws/arn"

	"aws-slack-notifier/internal/domain/model"
	"aws-slack-notifier/internal/domain/payload"
)

// Context is the environment a policy renders against.
type Context struct {
	Region     string
	Channel    string
	FooterIcon string
}

// Policy evaluates one payload kind.
type Policy interface {
	Evaluate(p payload.Payload, ctx Context) (model.Decision, error)
}

// PolicyError reports an event that cannot be rendered, usually because a
// required field is missing. Retrying will not fix it.
type PolicyError struct {
	Field  string
	Reason string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("evaluate policy: field %s: %s", e.Field, e.Reason)
}

func missing(field string) error {
	return &PolicyError{Field: field, Reason: "required field is missing"}
}

// ForKind returns the policy that handles payloads of kind k.
func ForKind(k payload.Kind) (Policy, bool) {
	switch k {
	case payload.KindStack:
		return StackPolicy{}, true
	case payload.KindAlarm:
		return AlarmPolicy{}, true
	default:
		return nil, false
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
}

// parseTimestamp returns whole unix seconds, flooring sub-second precision.
func parseTimestamp(field, value string) (int64, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return floorSeconds(t), nil
		}
	}
	return 0, &PolicyError{Field: field, Reason: fmt.Sprintf("unrecognised timestamp %q", value)}
}

func floorSeconds(t time.Time) int64 {
	ms := t.UnixMilli()
	if ms < 0 && ms%1000 != 0 {
		return ms/1000 - 1
	}
	return ms / 1000
}

// regionFrom prefers the region embedded in an ARN over the fallback.
func regionFrom(resource, fallback string) string {
	if a, err := arn.Parse(resource); err == nil && a.Region != "" {
		return a.Region
	}
	return fallback
}

// componentUnescape restores the characters encodeURIComponent leaves
// literal but url.QueryEscape encodes.
var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent escapes s the way encodeURIComponent does for console links.
func escapeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}

func slackLink(target, label string) string {
	return fmt.Sprintf("<%s|%s>", target, label)
}
