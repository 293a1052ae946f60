package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"visitor-admission/internal/domain/notify"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier mails the host directly.
type SMTPNotifier struct {
	cfg   SMTPConfig
	send  sendFunc
	title cases.Caser
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail, title: cases.Title(language.Und)}
}

func (s *SMTPNotifier) NotifyHost(ctx context.Context, n notify.HostNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := []byte(strings.Join([]string{
		"To: " + n.HostEmail,
		"From: " + s.cfg.Sender,
		"Subject: New Visitor Approval Request",
		"MIME-version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		s.body(n),
	}, "\r\n"))

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.Sender, []string{n.HostEmail}, msg); err != nil {
		return fmt.Errorf("send host email: %w", err)
	}
	return nil
}

func (s *SMTPNotifier) body(n notify.HostNotification) string {
	return fmt.Sprintf(`<html>
<body>
    <p>Hello %s,</p>
    <p><b>New visitor registered</b><br>
       <b>Name:</b> %s<br>
       <b>Purpose:</b> %s</p>
    <p>Please log in to your dashboard to approve or reject this request.</p>
    <p><small>Visitor #%d. This is an automated message.</small></p>
</body>
</html>`, s.title.String(n.HostName), s.title.String(n.VisitorName), n.Purpose, n.VisitorID)
}
