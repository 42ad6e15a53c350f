package email

// Message is one outgoing mail. From is taken from the client config.
type Message struct {
	To []string
	// ReplyTo lets the recipient answer the original sender directly.
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
	Headers  map[string]string
}
