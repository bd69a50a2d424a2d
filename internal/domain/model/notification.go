package model

// Color is the side-bar color of a chat attachment.
type Color string

const (
	ColorDefault Color = ""
	ColorGood    Color = "good"
	ColorWarning Color = "warning"
	ColorDanger  Color = "danger"
)

// Message is a transport-agnostic chat message produced by a notification policy.
type Message struct {
	Channel    string
	Title      string
	Body       string
	Color      Color
	Footer     string
	FooterIcon string
	Timestamp  int64 // unix seconds
}
