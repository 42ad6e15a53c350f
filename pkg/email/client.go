package email

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/Alijeyrad/contact_relay/config"
)

type Client struct {
	cfg Config
}

// NewFromCentral creates a new email client from central config
func NewFromCentral(cfg config.EmailConfig) (*Client, error) {
	return New(FromCentralConfig(cfg))
}

func New(cfg Config) (*Client, error) {
	if cfg.Enabled && cfg.SMTPHost == "" {
		return nil, ErrInvalidMessage{Reason: "smtp host is required"}
	}
	return &Client{cfg: cfg}, nil
}

// Send delivers m over a fresh authenticated SMTP connection. Connecting is
// bounded by a 10s dial timeout; once connected, the greeting, auth and DATA
// exchange share one socket deadline of the configured SMTP timeout, or the
// ctx deadline when that is sooner. Cancelling ctx aborts the exchange.
func (c *Client) Send(ctx context.Context, m Message) error {
	if !c.cfg.Enabled {
		return ErrDisabled{}
	}

	msg, err := buildMessage(c.cfg.From, m)
	if err != nil {
		return err
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return sendError(ctx, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.cfg.SMTPTimeout())
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return sendError(ctx, err)
	}

	// Expiring the deadline unblocks whatever read or write is in flight.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	s, err := c.openSession(conn)
	if err != nil {
		return sendError(ctx, err)
	}
	if err := gomail.Send(s, msg); err != nil {
		return sendError(ctx, err)
	}
	if err := s.Close(); err != nil {
		return sendError(ctx, err)
	}
	return nil
}

func sendError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ErrSend{Provider: provider, Timeout: true, Err: ctxErr}
	}
	var nerr net.Error
	timeout := errors.As(err, &nerr) && nerr.Timeout()
	return ErrSend{Provider: provider, Timeout: timeout, Err: err}
}

func buildMessage(from string, m Message) (*gomail.Message, error) {
	msg := gomail.NewMessage()

	from = strings.TrimSpace(from)
	if from == "" {
		return nil, ErrInvalidMessage{Reason: "from is required"}
	}
	msg.SetHeader("From", from)

	to := cleanAddrs(m.To)
	if len(to) == 0 {
		return nil, ErrInvalidMessage{Reason: "at least one recipient is required"}
	}
	msg.SetHeader("To", to...)

	if replyTo := strings.TrimSpace(m.ReplyTo); replyTo != "" {
		msg.SetHeader("Reply-To", replyTo)
	}

	subj := strings.TrimSpace(m.Subject)
	if subj == "" {
		return nil, ErrInvalidMessage{Reason: "subject is required"}
	}
	msg.SetHeader("Subject", subj)

	for k, v := range m.Headers {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		msg.SetHeader(k, v)
	}

	hasText := strings.TrimSpace(m.TextBody) != ""
	hasHTML := strings.TrimSpace(m.HTMLBody) != ""

	switch {
	case hasText && hasHTML:
		msg.SetBody("text/plain", m.TextBody)
		msg.AddAlternative("text/html", m.HTMLBody)
	case hasHTML:
		msg.SetBody("text/html", m.HTMLBody)
	case hasText:
		msg.SetBody("text/plain", m.TextBody)
	default:
		return nil, ErrInvalidMessage{Reason: "either TextBody or HTMLBody is required"}
	}

	return msg, nil
}

func cleanAddrs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
