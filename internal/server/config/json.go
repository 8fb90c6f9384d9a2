package config

import (
	"encoding/json"
	"os"

	"github.com/ViniciusHP/autenticacao-api/internal/flagx"
	"github.com/ViniciusHP/autenticacao-api/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Interval fields use timex.Duration, which accepts both string values
// such as "1h" and integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr string `json:"endpoint_addr"`
	ContextPath  string `json:"context_path"`
	DatabaseDSN  string `json:"database_dsn"`

	JWTAudience                    string `json:"jwt_audience"`
	JWTIssuer                      string `json:"jwt_issuer"`
	JWTAccessTokenValiditySeconds  int    `json:"jwt_access_token_validity_seconds"`
	JWTRefreshTokenValiditySeconds int    `json:"jwt_refresh_token_validity_seconds"`
	JWTSecret                      string `json:"jwt_secret"`
	JWTSecure                      bool   `json:"jwt_secure"`

	PasswordResetURL                  string `json:"password_reset_url"`
	PasswordResetTokenValidityMinutes int    `json:"password_reset_token_validity_minutes"`

	MailHost           string         `json:"mail_host"`
	MailPort           int            `json:"mail_port"`
	MailUsername       string         `json:"mail_username"`
	MailPassword       string         `json:"mail_password"`
	MailSenderName     string         `json:"mail_sender_name"`
	MailConnectTimeout timex.Duration `json:"mail_connect_timeout"`

	SweepInterval  timex.Duration `json:"sweep_interval"`
	SweepBatchSize int            `json:"sweep_batch_size"`

	MailDispatchInterval  timex.Duration `json:"mail_dispatch_interval"`
	MailDispatchBatchSize int            `json:"mail_dispatch_batch_size"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config flags; when neither is
// set, no JSON file is loaded. Only fields present in the file override the
// current values. If the file cannot be read or contains invalid JSON, the
// function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.ContextPath != "" {
		config.ContextPath = c.ContextPath
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}

	if c.JWTAudience != "" {
		config.JWT.Audience = c.JWTAudience
	}
	if c.JWTIssuer != "" {
		config.JWT.Issuer = c.JWTIssuer
	}
	if c.JWTAccessTokenValiditySeconds > 0 {
		config.JWT.AccessTokenValiditySeconds = c.JWTAccessTokenValiditySeconds
	}
	if c.JWTRefreshTokenValiditySeconds > 0 {
		config.JWT.RefreshTokenValiditySeconds = c.JWTRefreshTokenValiditySeconds
	}
	if c.JWTSecret != "" {
		config.JWT.Secret = c.JWTSecret
	}
	config.JWT.Secure = config.JWT.Secure || c.JWTSecure

	if c.PasswordResetURL != "" {
		config.PasswordReset.URL = c.PasswordResetURL
	}
	if c.PasswordResetTokenValidityMinutes > 0 {
		config.PasswordReset.TokenValidityMinutes = c.PasswordResetTokenValidityMinutes
	}

	if c.MailHost != "" {
		config.Mail.Host = c.MailHost
	}
	if c.MailPort > 0 {
		config.Mail.Port = c.MailPort
	}
	if c.MailUsername != "" {
		config.Mail.Username = c.MailUsername
	}
	if c.MailPassword != "" {
		config.Mail.Password = c.MailPassword
	}
	if c.MailSenderName != "" {
		config.Mail.SenderName = c.MailSenderName
	}
	if c.MailConnectTimeout.Duration > 0 {
		config.Mail.ConnectTimeout = c.MailConnectTimeout.Duration
	}

	if c.SweepInterval.Duration > 0 {
		config.SweepInterval = c.SweepInterval.Duration
	}
	if c.SweepBatchSize > 0 {
		config.SweepBatchSize = c.SweepBatchSize
	}

	if c.MailDispatchInterval.Duration > 0 {
		config.MailDispatchInterval = c.MailDispatchInterval.Duration
	}
	if c.MailDispatchBatchSize > 0 {
		config.MailDispatchBatchSize = c.MailDispatchBatchSize
	}
}
