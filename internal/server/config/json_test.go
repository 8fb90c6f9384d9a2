package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr":                         "www.example:9000",
		"context_path":                          "/api",
		"database_dsn":                          "postgres://example/auth",
		"jwt_secret":                            "bXlfc2VjcmV0",
		"jwt_issuer":                            "issuer",
		"jwt_audience":                          "audience",
		"jwt_access_token_validity_seconds":     900,
		"jwt_refresh_token_validity_seconds":    7200,
		"jwt_secure":                            true,
		"password_reset_url":                    "https://app.example.com/redefinir-senha",
		"password_reset_token_validity_minutes": 30,
		"mail_host":                             "smtp.example.com",
		"mail_port":                             465,
		"mail_username":                         "noreply@example.com",
		"mail_password":                         "secret",
		"mail_sender_name":                      "Autenticação",
		"mail_connect_timeout":                  "5s",
		"sweep_interval":                        "30m",
		"sweep_batch_size":                      100,
		"mail_dispatch_interval":                "2m",
		"mail_dispatch_batch_size":              25,
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddr)
		assert.Equal(t, "/api", cfg.ContextPath)
		assert.Equal(t, "postgres://example/auth", cfg.DatabaseDSN)
		assert.Equal(t, "bXlfc2VjcmV0", cfg.JWT.Secret)
		assert.Equal(t, "issuer", cfg.JWT.Issuer)
		assert.Equal(t, "audience", cfg.JWT.Audience)
		assert.Equal(t, 900, cfg.JWT.AccessTokenValiditySeconds)
		assert.Equal(t, 7200, cfg.JWT.RefreshTokenValiditySeconds)
		assert.True(t, cfg.JWT.Secure)
		assert.Equal(t, "https://app.example.com/redefinir-senha", cfg.PasswordReset.URL)
		assert.Equal(t, 30, cfg.PasswordReset.TokenValidityMinutes)
		assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
		assert.Equal(t, 465, cfg.Mail.Port)
		assert.Equal(t, "noreply@example.com", cfg.Mail.Username)
		assert.Equal(t, "secret", cfg.Mail.Password)
		assert.Equal(t, "Autenticação", cfg.Mail.SenderName)
		assert.Equal(t, 5*time.Second, cfg.Mail.ConnectTimeout)
		assert.Equal(t, 30*time.Minute, cfg.SweepInterval)
		assert.Equal(t, 100, cfg.SweepBatchSize)
		assert.Equal(t, 2*time.Minute, cfg.MailDispatchInterval)
		assert.Equal(t, 25, cfg.MailDispatchBatchSize)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddr:   "defaults:1234",
			DatabaseDSN:    "postgres://defaults/auth",
			SweepBatchSize: 42,
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddr)
		assert.Equal(t, "postgres://defaults/auth", cfg.DatabaseDSN)
		assert.Equal(t, 42, cfg.SweepBatchSize)
	})

	t.Run("partial file overrides only present fields", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"endpoint_addr": ":9999",
		})
		os.Args = []string{"testbin", "-config", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":9999", cfg.EndpointAddr)
		assert.Equal(t, "c2VjcmV0S2V5", cfg.JWT.Secret)
		assert.Equal(t, 500, cfg.SweepBatchSize)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
