package model

// Decision is the outcome of a notification policy: either a message to
// deliver or a suppression with the reason it was dropped.
type Decision struct {
	message *Message
	reason  string
}

// Deliver builds a decision that carries msg.
func Deliver(msg Message) Decision {
	return Decision{message: &msg}
}

// Suppress builds a decision that drops the event.
func Suppress(reason string) Decision {
	return Decision{reason: reason}
}

// Message returns the message to deliver, if any.
func (d Decision) Message() (Message, bool) {
	if d.message == nil {
		return Message{}, false
	}
	return *d.message, true
}

// Suppressed reports whether the event was dropped and why.
func (d Decision) Suppressed() (string, bool) {
	if d.message != nil {
		return "", false
	}
	return d.reason, true
}
