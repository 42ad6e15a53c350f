package mailcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/contact_relay/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.VerificationConfig{BaseURL: srv.URL + "/api/check", AccessKey: "test-key", TimeoutSeconds: 2})
}

func TestCheck_SendsQuery(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"access_key": q.Get("access_key"),
			"email":      q.Get("email"),
			"smtp":       q.Get("smtp"),
			"format":     q.Get("format"),
		}
		assert.Equal(t, "/api/check", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"email":"ann@example.com","format_valid":true,"mx_found":true,"smtp_check":true,"score":0.9}`))
	})

	res, err := c.Check(context.Background(), "ann@example.com")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"access_key": "test-key", "email": "ann@example.com", "smtp": "1", "format": "1"}, got)
	assert.True(t, res.FormatValid)
	assert.True(t, res.MXFound)
	assert.True(t, res.SMTPCheck)
	assert.InDelta(t, 0.9, res.Score, 1e-9)
}

func TestCheck_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":104,"type":"usage_limit_reached","info":"monthly quota exhausted"}}`))
	})

	_, err := c.Check(context.Background(), "ann@example.com")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 104, apiErr.Code)
	assert.Equal(t, "usage_limit_reached", apiErr.Type)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestCheck_UnsuccessfulWithoutErrorObject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	})

	_, err := c.Check(context.Background(), "ann@example.com")
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestCheck_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>maintenance</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.Check(context.Background(), "ann@example.com")
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestCheck_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := New(config.VerificationConfig{BaseURL: srv.URL, AccessKey: "secret-key", TimeoutSeconds: 1})

	start := time.Now()
	_, err := c.Check(context.Background(), "ann@example.com")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.False(t, strings.Contains(err.Error(), "secret-key"), "access key leaked into error: %v", err)
}

func TestCheck_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := New(config.VerificationConfig{BaseURL: addr, AccessKey: "k", TimeoutSeconds: 1})
	_, err := c.Check(context.Background(), "ann@example.com")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCheck_MissingKey(t *testing.T) {
	c := New(config.VerificationConfig{BaseURL: "https://apilayer.net/api/check"})
	assert.False(t, c.Configured())

	_, err := c.Check(context.Background(), "ann@example.com")
	assert.ErrorIs(t, err, ErrMissingKey)
}
