package config

import (
	"flag"
	"os"

	"github.com/ViniciusHP/autenticacao-api/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret (base64)
//	-i string   JWT issuer
//	-u string   JWT audience
//	-t int      access token validity, seconds
//	-r int      refresh token validity, seconds
//	-p string   password recovery page URL
//	-m int      password reset token validity, minutes
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-i", "-u", "-t", "-r", "-p", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.JWT.Secret, "s", config.JWT.Secret, "JWT secret key (base64)")
	fs.StringVar(&config.JWT.Issuer, "i", config.JWT.Issuer, "JWT issuer")
	fs.StringVar(&config.JWT.Audience, "u", config.JWT.Audience, "JWT audience")
	fs.IntVar(&config.JWT.AccessTokenValiditySeconds, "t", config.JWT.AccessTokenValiditySeconds, "access token validity (in seconds)")
	fs.IntVar(&config.JWT.RefreshTokenValiditySeconds, "r", config.JWT.RefreshTokenValiditySeconds, "refresh token validity (in seconds)")
	fs.StringVar(&config.PasswordReset.URL, "p", config.PasswordReset.URL, "password recovery page URL")
	fs.IntVar(&config.PasswordReset.TokenValidityMinutes, "m", config.PasswordReset.TokenValidityMinutes, "password reset token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
