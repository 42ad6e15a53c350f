package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

const (
	provider    = "gomail/smtp"
	dialTimeout = 10 * time.Second
)

// implicitTLS is true for port 465, which speaks TLS from the first byte.
// Other ports upgrade with STARTTLS.
func (c *Client) implicitTLS() bool {
	return c.cfg.SMTPUseTLS && c.cfg.SMTPPort == 465
}

func (c *Client) tlsConfig() *tls.Config {
	return &tls.Config{ServerName: c.cfg.SMTPHost, MinVersion: tls.VersionTLS12}
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(c.cfg.SMTPHost, strconv.Itoa(c.cfg.SMTPPort))

	d := &net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if c.implicitTLS() {
		// The handshake runs on first use, under the session deadline.
		return tls.Client(conn, c.tlsConfig()), nil
	}
	return conn, nil
}

// openSession reads the greeting, upgrades to TLS and authenticates.
func (c *Client) openSession(conn net.Conn) (*session, error) {
	sc, err := smtp.NewClient(conn, c.cfg.SMTPHost)
	if err != nil {
		return nil, err
	}

	if !c.implicitTLS() {
		if ok, _ := sc.Extension("STARTTLS"); ok {
			if err := sc.StartTLS(c.tlsConfig()); err != nil {
				return nil, err
			}
		} else if c.cfg.SMTPUseTLS {
			return nil, errors.New("server does not offer STARTTLS")
		}
	}

	if c.cfg.SMTPUsername != "" {
		ok, mechs := sc.Extension("AUTH")
		if !ok {
			return nil, errors.New("server does not offer AUTH")
		}
		var auth smtp.Auth
		if strings.Contains(mechs, "CRAM-MD5") {
			auth = smtp.CRAMMD5Auth(c.cfg.SMTPUsername, c.cfg.SMTPPassword)
		} else {
			auth = smtp.PlainAuth("", c.cfg.SMTPUsername, c.cfg.SMTPPassword, c.cfg.SMTPHost)
		}
		if err := sc.Auth(auth); err != nil {
			return nil, fmt.Errorf("smtp auth: %w", err)
		}
	}

	return &session{c: sc}, nil
}

// session adapts an open smtp.Client to gomail.SendCloser.
type session struct {
	c *smtp.Client
}

var _ gomail.SendCloser = (*session)(nil)

func (s *session) Send(from string, to []string, msg io.WriterTo) error {
	if err := s.c.Mail(from); err != nil {
		return err
	}
	for _, addr := range to {
		if err := s.c.Rcpt(addr); err != nil {
			return err
		}
	}

	w, err := s.c.Data()
	if err != nil {
		return err
	}
	if _, err := msg.WriteTo(w); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (s *session) Close() error {
	return s.c.Quit()
}
