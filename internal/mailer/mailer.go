// Package mailer sends application emails over SMTP, attaching the
// candidate's CV when one is available.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/jobhunterpro/jobhunter/internal/letter"
)

type Config struct {
	Server   string
	Username string
	Password string
	From     string
	CVPath   string
}

type Mailer struct {
	cfg     Config
	profile letter.Profile
}

func New(cfg Config, profile letter.Profile) (*Mailer, error) {
	if cfg.Server == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("mail configuration missing")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &Mailer{cfg: cfg, profile: profile}, nil
}

// SendApplication delivers the application to the recruiter. Submission on
// port 587 with STARTTLS is tried first; on failure it retries on 465 with
// implicit TLS, since some providers only expose one of the two.
func (m *Mailer) SendApplication(ctx context.Context, to, jobTitle, company, coverLetter string) error {
	msg, err := m.buildMessage(to, jobTitle, company, coverLetter)
	if err != nil {
		return err
	}

	if err := m.send(ctx, msg, 587, false); err != nil {
		slog.Warn("submission on 587 failed, retrying with implicit TLS", "error", err)
		if sslErr := m.send(ctx, msg, 465, true); sslErr != nil {
			return fmt.Errorf("send application email: %w", sslErr)
		}
	}
	return nil
}

func (m *Mailer) send(ctx context.Context, msg *mail.Msg, port int, ssl bool) error {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	}
	if ssl {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(m.cfg.Server, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func (m *Mailer) buildMessage(to, jobTitle, company, coverLetter string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(fmt.Sprintf("Application for %s - %s", jobTitle, m.profile.Name))
	msg.SetBodyString(mail.TypeTextPlain, m.body(company, coverLetter))

	if m.cfg.CVPath != "" {
		if _, err := os.Stat(m.cfg.CVPath); err == nil {
			msg.AttachFile(m.cfg.CVPath)
		} else {
			slog.Warn("CV attachment not found, sending without it", "path", m.cfg.CVPath)
		}
	}
	return msg, nil
}

func (m *Mailer) body(company, coverLetter string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear Hiring Manager at %s,\n\n", company)
	b.WriteString(coverLetter)
	fmt.Fprintf(&b, "\n\nBest regards,\n%s", m.profile.Name)
	if m.profile.Email != "" {
		fmt.Fprintf(&b, "\nEmail: %s", m.profile.Email)
	}
	if m.profile.Phone != "" {
		fmt.Fprintf(&b, "\nPhone: %s", m.profile.Phone)
	}
	if m.profile.GitHub != "" {
		fmt.Fprintf(&b, "\nGitHub: %s", m.profile.GitHub)
	}
	if m.profile.LinkedIn != "" {
		fmt.Fprintf(&b, "\nLinkedIn: %s", m.profile.LinkedIn)
	}
	b.WriteString("\n\n---\nThis application was sent via JobHunter")
	return b.String()
}
