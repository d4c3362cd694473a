package notifications

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"hotelbook/pkg/model"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers notifications as plain-text mail.
type SMTPSender struct {
	cfg  SMTPConfig
	auth smtp.Auth

	// sendMail is smtp.SendMail outside of tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPSender{
		cfg:      cfg,
		auth:     auth,
		sendMail: smtp.SendMail,
	}
}

// Send returns when the mail is accepted by the server or ctx is done. An
// abandoned send keeps running in the background until the server answers.
func (s *SMTPSender) Send(ctx context.Context, n model.Notification) error {
	if n.Recipient == "" {
		return fmt.Errorf("notification %s has no recipient", n.ConfirmationCode)
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	msg := buildMessage(s.cfg.From, n, time.Now())

	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(addr, s.auth, s.cfg.From, []string{n.Recipient}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send mail to %s: %w", n.Recipient, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mail to %s timed out: %w", n.Recipient, ctx.Err())
	}
}

// Header values are stripped of CR and LF so a subject cannot inject headers.
func buildMessage(from string, n model.Notification, now time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", headerValue(from))
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(n.Recipient))
	fmt.Fprintf(&b, "Subject: %s\r\n", headerValue(n.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(n.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

func headerValue(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
