// Package payload turns the body of an SNS notification into a typed payload.
//
// Two shapes are recognised. CloudFormation publishes stack events as
// newline-separated Key='Value' assignments whose values may span several
// lines (ResourceProperties holds pretty-printed JSON). CloudWatch publishes
// alarm state changes as a single JSON object.
package payload

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Kind identifies the shape of a payload.
type Kind string

const (
	KindStack Kind = "stack"
	KindAlarm Kind = "alarm"
)

// Payload is either a StackEvent or an AlarmEvent.
type Payload interface {
	Kind() Kind
}

// StackEvent is a CloudFormation stack event.
type StackEvent struct {
	Fields Fields
}

// Kind implements Payload.
func (StackEvent) Kind() Kind { return KindStack }

// AlarmEvent is a CloudWatch alarm state change.
type AlarmEvent struct {
	events.CloudWatchAlarmSNSPayload
}

// Kind implements Payload.
func (AlarmEvent) Kind() Kind { return KindAlarm }

// ParseError reports a payload that matches neither recognised shape.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse payload: %s: %v", e.Reason, e.Err)
	}
	return "parse payload: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse resolves the payload shape with a structural check and applies the
// matching parser. A body that looks like JSON but does not decode is an
// error; it is never retried as key/value text.
func Parse(raw string) (Payload, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ParseError{Reason: "empty message"}
	}

	if strings.HasPrefix(trimmed, "{") {
		var doc map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
			return nil, &ParseError{Reason: "malformed JSON", Err: err}
		}
		return alarmFrom(doc), nil
	}

	fields, err := ParseFields(raw)
	if err != nil {
		return nil, err
	}
	return StackEvent{Fields: fields}, nil
}

// alarmFrom copies the string fields of an alarm document by key. Members
// that are absent or not strings are left empty; the Trigger block is not
// read, so its shape never rejects an alarm.
func alarmFrom(doc map[string]json.RawMessage) AlarmEvent {
	str := func(key string) string {
		var s string
		if raw, ok := doc[key]; ok {
			_ = json.Unmarshal(raw, &s)
		}
		return s
	}
	return AlarmEvent{CloudWatchAlarmSNSPayload: events.CloudWatchAlarmSNSPayload{
		AlarmName:        str("AlarmName"),
		AlarmDescription: str("AlarmDescription"),
		AWSAccountID:     str("AWSAccountId"),
		NewStateValue:    str("NewStateValue"),
		NewStateReason:   str("NewStateReason"),
		StateChangeTime:  str("StateChangeTime"),
		Region:           str("Region"),
		AlarmARN:         str("AlarmArn"),
		OldStateValue:    str("OldStateValue"),
	}}
}
