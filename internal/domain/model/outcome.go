package model

import "fmt"

// OutcomeKind buckets a webhook response.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeClientError
	OutcomeServerError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeClientError:
		return "client_error"
	case OutcomeServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of a single delivery attempt.
type Outcome struct {
	Kind       OutcomeKind
	StatusCode int
	Status     string
}

// Classify maps an HTTP status code to an outcome.
func Classify(statusCode int, status string) Outcome {
	kind := OutcomeSuccess
	switch {
	case statusCode >= 500:
		kind = OutcomeServerError
	case statusCode >= 400:
		kind = OutcomeClientError
	}
	return Outcome{Kind: kind, StatusCode: statusCode, Status: status}
}

// Retryable reports whether the platform should redeliver the event.
func (o Outcome) Retryable() bool {
	return o.Kind == OutcomeServerError
}

// DeliveryError is returned for server-side webhook failures so the invoking
// platform retries the event.
type DeliveryError struct {
	Outcome Outcome
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("server error when processing message: %d - %s", e.Outcome.StatusCode, e.Outcome.Status)
}
