package email

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/contact_relay/config"
)

func TestFromCentralConfig_FallsBackToUsername(t *testing.T) {
	cfg := FromCentralConfig(config.EmailConfig{
		Enabled: true,
		SMTP:    config.SMTPConfig{Host: "smtp.gmail.com", Port: 465, Username: "relay@gmail.com", TimeoutSeconds: 10},
	})

	assert.Equal(t, "relay@gmail.com", cfg.From)
	assert.Equal(t, 10*time.Second, cfg.SMTPTimeout())
}

func TestSMTPTimeout_Default(t *testing.T) {
	assert.Equal(t, 10*time.Second, Config{}.SMTPTimeout())
}

func TestNew_RequiresHostWhenEnabled(t *testing.T) {
	_, err := New(Config{Enabled: true})
	assert.Error(t, err)

	_, err = New(Config{Enabled: false})
	assert.NoError(t, err)
}

func TestSend_Disabled(t *testing.T) {
	c, err := New(Config{Enabled: false})
	require.NoError(t, err)

	err = c.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "s", TextBody: "b"})
	assert.ErrorIs(t, err, ErrDisabled{})
}

func TestSend_InvalidMessage(t *testing.T) {
	c, err := New(Config{Enabled: true, From: "relay@example.com", SMTPHost: "127.0.0.1", SMTPPort: 1})
	require.NoError(t, err)

	err = c.Send(context.Background(), Message{Subject: "s", TextBody: "b"})
	var invalid ErrInvalidMessage
	assert.ErrorAs(t, err, &invalid)
}

func TestSend_ConnectionFailureIsSendError(t *testing.T) {
	// Nothing listens on port 1; the dial fails fast.
	c, err := New(Config{Enabled: true, From: "relay@example.com", SMTPHost: "127.0.0.1", SMTPPort: 1, SMTPTimeoutSeconds: 5})
	require.NoError(t, err)

	err = c.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "s", TextBody: "b"})
	var sendErr ErrSend
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, "gomail/smtp", sendErr.Provider)
}

func TestSend_CancelledContext(t *testing.T) {
	c, err := New(Config{Enabled: true, From: "relay@example.com", SMTPHost: "10.255.255.1", SMTPPort: 465})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = c.Send(ctx, Message{To: []string{"a@example.com"}, Subject: "s", TextBody: "b"})
	require.Error(t, err)
	var sendErr ErrSend
	assert.ErrorAs(t, err, &sendErr)
}

func TestBuildMessage(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		msg     Message
		wantErr bool
	}{
		{
			name: "text and html",
			from: "relay@example.com",
			msg:  Message{To: []string{"owner@example.com"}, ReplyTo: "ann@example.com", Subject: "Hi", TextBody: "t", HTMLBody: "<p>h</p>"},
		},
		{
			name:    "missing from",
			msg:     Message{To: []string{"owner@example.com"}, Subject: "Hi", TextBody: "t"},
			wantErr: true,
		},
		{
			name:    "blank recipients",
			from:    "relay@example.com",
			msg:     Message{To: []string{"  "}, Subject: "Hi", TextBody: "t"},
			wantErr: true,
		},
		{
			name:    "missing subject",
			from:    "relay@example.com",
			msg:     Message{To: []string{"owner@example.com"}, TextBody: "t"},
			wantErr: true,
		},
		{
			name:    "missing body",
			from:    "relay@example.com",
			msg:     Message{To: []string{"owner@example.com"}, Subject: "Hi"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMessage(tt.from, tt.msg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildMessage_Headers(t *testing.T) {
	msg, err := buildMessage("relay@example.com", Message{
		To:       []string{"owner@example.com"},
		ReplyTo:  "ann@example.com",
		Subject:  "Hello",
		TextBody: "body",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"relay@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"owner@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"ann@example.com"}, msg.GetHeader("Reply-To"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "Reply-To: ann@example.com"))
}

func TestBuildContactEmail(t *testing.T) {
	m := BuildContactEmail(ContactEmailData{
		Name:      "Ann\nSmith",
		Email:     "ann@example.com",
		Message:   "<script>alert(1)</script>Hello & bye\nline two",
		Recipient: "owner@example.com",
	})

	assert.Equal(t, []string{"owner@example.com"}, m.To)
	assert.Equal(t, "ann@example.com", m.ReplyTo)
	assert.Equal(t, "New contact form message from Ann Smith", m.Subject)
	assert.Contains(t, m.TextBody, "Email: ann@example.com")
	assert.Contains(t, m.TextBody, "Hello & bye")
	assert.NotContains(t, m.HTMLBody, "<script>")
	assert.Contains(t, m.HTMLBody, "Hello &amp; bye<br>line two")
}

func TestErrSend_Unwrap(t *testing.T) {
	inner := errors.New("535 auth failed")
	err := error(ErrSend{Provider: "gomail/smtp", Err: inner})
	assert.ErrorIs(t, err, inner)
}
