package system

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "relay", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", filepath.Join(t.TempDir(), "config.yaml"), "")
	root.AddCommand(NewSystemCommand())

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestConfigCommand_MasksSecrets(t *testing.T) {
	t.Setenv("RELAY_EMAIL_SMTP_PASSWORD", "smtp-secret")
	t.Setenv("RELAY_VERIFICATION_ACCESS_KEY", "api-secret")
	t.Setenv("RELAY_EMAIL_RECIPIENT", "owner@example.com")

	out, err := run(t, "system", "config")
	require.NoError(t, err)

	assert.NotContains(t, out, "smtp-secret")
	assert.NotContains(t, out, "api-secret")
	assert.Contains(t, out, masked)
	assert.Contains(t, out, "owner@example.com")
}

func TestVerifyCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"format_valid":true,"mx_found":true,"smtp_check":false,"score":0.2}`))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("RELAY_VERIFICATION_BASE_URL", srv.URL)
	t.Setenv("RELAY_VERIFICATION_ACCESS_KEY", "k")

	out, err := run(t, "system", "verify", "ann@example.com")
	require.NoError(t, err)

	assert.Contains(t, out, "mx_found:     true")
	assert.Contains(t, out, "verdict:      rejected (low score)")
}

func TestVerifyCommand_MissingKey(t *testing.T) {
	t.Setenv("RELAY_VERIFICATION_ACCESS_KEY", "")
	t.Setenv("MAILBOXLAYER_API_KEY", "")

	_, err := run(t, "system", "verify", "ann@example.com")
	assert.Error(t, err)
}

func TestVerifyCommand_RequiresArg(t *testing.T) {
	_, err := run(t, "system", "verify")
	assert.Error(t, err)
}

func TestConfigCommand_UsesConfigFileKeys(t *testing.T) {
	out, err := run(t, "system", "config")
	require.NoError(t, err)

	for _, key := range []string{"rate_limit:", "access_key:", "timeout_seconds:", "require_smtp_check:", "allow_origins:"} {
		assert.Contains(t, out, key)
	}
	assert.NotContains(t, out, "accesskey:")
	assert.NotContains(t, out, "timeoutseconds:")
}

func TestVerifyCommand_RequireSMTPCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"format_valid":true,"mx_found":true,"smtp_check":false,"score":0.8}`))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("RELAY_VERIFICATION_BASE_URL", srv.URL)
	t.Setenv("RELAY_VERIFICATION_ACCESS_KEY", "k")

	out, err := run(t, "system", "verify", "ann@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "verdict:      accepted (mailbox check failed)")

	t.Setenv("RELAY_VERIFICATION_REQUIRE_SMTP_CHECK", "true")

	out, err = run(t, "system", "verify", "ann@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "verdict:      rejected (undeliverable)")
}
