// Package mail delivers outbox items over SMTP and renders the bodies of
// recovery messages.
package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/ViniciusHP/autenticacao-api/internal/server/config"
	"github.com/ViniciusHP/autenticacao-api/internal/server/domain"
	"github.com/ViniciusHP/autenticacao-api/internal/server/emails"
)

// Sender delivers a single outbox item. Implementations must validate the
// item before submission and report per-item failures as errors.
type Sender interface {
	Send(ctx context.Context, email *emails.Email) error
}

// SMTPSender sends messages through a plain-auth SMTP relay with STARTTLS
// when the server offers it.
type SMTPSender struct {
	cfg config.MailConfig
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, email *emails.Email) error {
	if err := validate(email); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	conn, err := net.DialTimeout("tcp", addr, s.cfg.ConnectTimeout)
	if err != nil {
		return fmt.Errorf("smtp connect error: %w", err)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client error: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(nil); err != nil {
			return fmt.Errorf("smtp starttls error: %w", err)
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth error: %w", err)
		}
	}

	if err := client.Mail(email.SenderAddress); err != nil {
		return fmt.Errorf("smtp mail error: %w", err)
	}
	for _, recipient := range email.Recipients {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("smtp rcpt error: %w", err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data error: %w", err)
	}
	if _, err := writer.Write(buildMessage(email)); err != nil {
		return fmt.Errorf("smtp write error: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("smtp write error: %w", err)
	}

	return client.Quit()
}

// buildMessage assembles the MIME message: HTML body, UTF-8, display name on
// the From header.
func buildMessage(email *emails.Email) []byte {
	var b strings.Builder

	from := email.SenderAddress
	if email.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", email.SenderName, email.SenderAddress)
	}

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(email.Recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(email.Body)

	return []byte(b.String())
}

func validate(email *emails.Email) error {
	if email == nil {
		return domain.ErrInvalidArgument("email must be informed")
	}
	if strings.TrimSpace(email.SenderAddress) == "" {
		return domain.ErrInvalidArgument("email sender must be informed")
	}
	if len(email.Recipients) == 0 {
		return domain.ErrInvalidArgument("email recipients must be informed")
	}
	return nil
}
