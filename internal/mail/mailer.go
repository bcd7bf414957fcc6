// Package mail delivers the assembled report by email over SMTP.
package mail

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/hqv-labs/dailybrief/internal/models"
)

// Config holds SMTP delivery settings. Password normally arrives via the
// EMAIL_PASSWORD environment variable, not the config file.
type Config struct {
	Host     string
	Port     int
	From     string
	Password string
	To       string
}

// Mailer sends reports through a single SMTP account.
type Mailer struct {
	cfg  Config
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a Mailer for the given SMTP configuration.
func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// SendReport delivers the report's rendered text as an HTML email.
func (m *Mailer) SendReport(report *models.Report) error {
	if m.cfg.From == "" || m.cfg.Password == "" || m.cfg.To == "" {
		return fmt.Errorf("mailer misconfigured: from, password, and to are required")
	}

	subject := fmt.Sprintf("Daily AI News & Research - %s", report.Date.Format("January 2, 2006"))
	body := buildHTMLBody(report)
	msg := buildMessage(m.cfg.From, m.cfg.To, subject, body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	if err := m.send(addr, auth, m.cfg.From, []string{m.cfg.To}, msg); err != nil {
		return fmt.Errorf("sending report email: %w", err)
	}
	return nil
}

// buildMessage assembles a complete MIME message with UTF-8 HTML body.
func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

// buildHTMLBody renders each section of the report as simple styled HTML.
func buildHTMLBody(report *models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h2>Daily AI News &amp; Research - %s</h2>\n", report.Date.Format("January 2, 2006"))
	fmt.Fprintf(&b, "<p>%d articles analyzed.</p>\n", report.TotalCount)

	for _, cat := range models.Categories {
		items := report.Sections[cat]
		if len(items) == 0 {
			continue
		}

		fmt.Fprintf(&b, "<h3>%s (%d)</h3>\n", strings.ToUpper(string(cat)), len(items))
		for _, item := range items {
			title := CleanText(item.Title)
			summary := CleanText(item.Summary)
			source := CleanText(item.Source)

			b.WriteString(`<div style="margin-bottom: 20px; padding: 15px; border-left: 3px solid #007acc;">` + "\n")
			fmt.Fprintf(&b, "<h4 style=\"color: #007acc; margin: 0 0 10px 0;\">%s</h4>\n", title)
			fmt.Fprintf(&b, "<p style=\"margin: 0 0 10px 0; color: #333;\">%s</p>\n", summary)
			fmt.Fprintf(&b, "<p style=\"margin: 0; font-size: 12px; color: #666;\"><strong>Source:</strong> %s", source)
			if item.URL != "" {
				fmt.Fprintf(&b, ` | <a href="%s">Read more</a>`, item.URL)
			}
			b.WriteString("</p>\n</div>\n")
		}
	}

	return b.String()
}

// unicodeReplacer maps typographic punctuation that trips up some mail
// clients to plain ASCII equivalents.
var unicodeReplacer = strings.NewReplacer(
	" ", " ", // non-breaking space
	"’", "'", // right single quote
	"‘", "'", // left single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "--", // em dash
)

// CleanText normalizes problematic typographic characters for email bodies.
func CleanText(text string) string {
	return unicodeReplacer.Replace(text)
}
