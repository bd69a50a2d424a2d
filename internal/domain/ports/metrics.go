package ports

import "time"

// Metrics records processing counters. Implementations must be safe for concurrent use.
type Metrics interface {
	EventReceived(kind string)
	Decision(kind, result string)
	Delivery(outcome string, took time.Duration)
}
