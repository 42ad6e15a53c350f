// Package mailcheck provides a minimal HTTP client for a mailboxlayer-style
// email verification API.
package mailcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Alijeyrad/contact_relay/config"
)

var (
	ErrMissingKey  = errors.New("mailcheck: access key not configured")
	ErrUnavailable = errors.New("mailcheck: verification service unavailable")
)

// APIError is an error object reported by the service itself, such as an
// exhausted quota or a rejected access key.
type APIError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mailcheck: service error %d (%s): %s", e.Code, e.Type, e.Info)
}

// Result is the subset of the verification response the relay acts on.
type Result struct {
	Email       string  `json:"email"`
	DidYouMean  string  `json:"did_you_mean"`
	FormatValid bool    `json:"format_valid"`
	MXFound     bool    `json:"mx_found"`
	SMTPCheck   bool    `json:"smtp_check"`
	CatchAll    *bool   `json:"catch_all"`
	Disposable  bool    `json:"disposable"`
	Free        bool    `json:"free"`
	Score       float64 `json:"score"`
}

// Client is a lightweight verification API client.
type Client struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

// New creates a Client from config. The HTTP client always carries an
// explicit timeout so a hung upstream cannot hold a request open.
func New(cfg config.VerificationConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		accessKey:  cfg.AccessKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an access key is present.
func (c *Client) Configured() bool {
	return c.accessKey != ""
}

// Check looks up one address. Transport failures, timeouts, non-2xx statuses
// and undecodable bodies all wrap ErrUnavailable; an error object in the body
// is returned as *APIError.
func (c *Client) Check(ctx context.Context, email string) (*Result, error) {
	if c.accessKey == "" {
		return nil, ErrMissingKey
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("mailcheck: parse base url: %w", err)
	}
	q := u.Query()
	q.Set("access_key", c.accessKey)
	q.Set("email", email)
	q.Set("smtp", "1")
	q.Set("format", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("mailcheck: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, redact(err))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, res.StatusCode)
	}

	var body struct {
		Result
		Success *bool     `json:"success"`
		Error   *APIError `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	if body.Error != nil {
		return nil, body.Error
	}
	if body.Success != nil && !*body.Success {
		return nil, &APIError{Info: "request reported unsuccessful without details"}
	}

	return &body.Result, nil
}

// redact keeps the access key out of logged url errors.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if u, perr := url.Parse(uerr.URL); perr == nil {
			q := u.Query()
			if q.Has("access_key") {
				q.Set("access_key", "REDACTED")
				u.RawQuery = q.Encode()
			}
			return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
		}
	}
	return err
}
