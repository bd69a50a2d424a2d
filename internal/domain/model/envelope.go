package model

// Envelope is the part of an inbound SNS delivery the notifier reads.
type Envelope struct {
	MessageID string
	TopicARN  string
	Subject   string
	Message   string
}
