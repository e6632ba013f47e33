package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"portfolio-backend/config"
)

// Mail is a single outgoing HTML message.
type Mail struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, m Mail) error
}

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	secure    bool // implicit TLS instead of STARTTLS
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		toEmail:   cfg.ContactEmailTo,
		secure:    cfg.SMTPSecure,
	}
}

// MessageEmailData holds the data for new-message notifications
type MessageEmailData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Content     string
	SentAt      time.Time
}

// messageEmailTemplate is the HTML template for new-message notifications
const messageEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New message from your website</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #1890ff; margin: 0 0 12px; }
        .field { margin: 4px 0; }
        .message-box { padding: 12px; background: #fafafa; border: 1px solid #eee; border-radius: 6px; white-space: pre-line; }
        .footer { margin-top: 12px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <h2 class="header">You have a new message from your website</h2>
        <p class="field"><strong>From:</strong> {{.SenderName}} ({{.SenderEmail}})</p>
        <p class="field"><strong>Subject:</strong> {{.Subject}}</p>
        <p class="field"><strong>Message:</strong></p>
        <div class="message-box">{{.Content}}</div>
        <p class="footer">Sent at {{.SentAt.Format "2006-01-02 15:04:05 MST"}}. Reply to {{.SenderEmail}}.</p>
    </div>
</body>
</html>`

var messageTmpl = template.Must(template.New("message").Parse(messageEmailTemplate))

// BuildMessageMail renders the notification for a stored contact message
func (s *EmailService) BuildMessageMail(data MessageEmailData) (Mail, error) {
	var body bytes.Buffer
	if err := messageTmpl.Execute(&body, data); err != nil {
		return Mail{}, fmt.Errorf("failed to execute email template: %w", err)
	}
	return Mail{
		To:      s.toEmail,
		ReplyTo: data.SenderEmail,
		Subject: data.Subject,
		HTML:    body.String(),
	}, nil
}

// Send delivers m over SMTP. Port 465 style servers need SMTP_SECURE=true.
func (s *EmailService) Send(ctx context.Context, m Mail) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service is not configured")
	}
	to := m.To
	if to == "" {
		to = s.toEmail
	}

	m.To = to
	msg := m.MIME(s.fromEmail)
	addr := net.JoinHostPort(s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	if !s.secure {
		// STARTTLS is negotiated by SendMail when the server offers it
		if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: 10 * time.Second},
		Config:    &tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12},
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial smtp: %w", err)
	}
	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open smtp session: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(s.fromEmail); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT TO: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return client.Quit()
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}

// MIME renders m as an RFC 5322 message. Non-ASCII subjects are
// RFC 2047 encoded.
func (m Mail) MIME(from string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", sanitizeHeader(m.To))
	if m.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", sanitizeHeader(m.ReplyTo))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", sanitizeHeader(m.Subject)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(m.HTML)
	return []byte(b.String())
}

// header values must not carry line breaks
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
