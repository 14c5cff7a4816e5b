package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	stdmail "net/mail"
	"net/smtp"
	"strings"
	"time"
)

// ErrDisabled is returned by Send when outbound mail is switched off.
var ErrDisabled = errors.New("mail: delivery disabled")

const defaultTimeout = 10 * time.Second

// Envelope is a plain-text message ready for delivery.
type Envelope struct {
	From    string
	ReplyTo string
	To      []string
	Subject string
	Body    string
}

// Sender delivers envelopes.
type Sender interface {
	Send(ctx context.Context, env Envelope) error
}

// Settings configures the SMTP relay.
type Settings struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
	Timeout  time.Duration
}

func (s Settings) address() string {
	return net.JoinHostPort(strings.TrimSpace(s.Host), fmt.Sprint(s.Port))
}

func (s Settings) validate() error {
	if !s.Enabled {
		return nil
	}
	if strings.TrimSpace(s.Host) == "" {
		return errors.New("mail: smtp host is required when enabled")
	}
	if s.Port <= 0 {
		return errors.New("mail: smtp port is required when enabled")
	}
	if from := strings.TrimSpace(s.From); from != "" {
		if _, err := stdmail.ParseAddress(from); err != nil {
			return fmt.Errorf("mail: invalid sender %q: %w", from, err)
		}
	}
	return nil
}

// session is the subset of *smtp.Client used during delivery.
type session interface {
	Auth(smtp.Auth) error
	Mail(string) error
	Rcpt(string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

type dialer func(ctx context.Context, s Settings) (session, error)

// SMTPSender sends envelopes through a single SMTP relay.
type SMTPSender struct {
	settings Settings
	dial     dialer
}

// NewSMTPSender validates settings and returns a sender. A disabled sender
// is valid and rejects every message with ErrDisabled.
func NewSMTPSender(settings Settings) (*SMTPSender, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if settings.Timeout <= 0 {
		settings.Timeout = defaultTimeout
	}
	return &SMTPSender{settings: settings, dial: dialSMTP}, nil
}

// Enabled reports whether the sender will attempt delivery.
func (s *SMTPSender) Enabled() bool {
	return s != nil && s.settings.Enabled
}

// Send delivers env. The context bounds the connection attempt.
func (s *SMTPSender) Send(ctx context.Context, env Envelope) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if ctx == nil {
		ctx = context.Background()
	}

	from, recipients, err := s.resolveAddresses(env)
	if err != nil {
		return err
	}

	client, err := s.dial(ctx, s.settings)
	if err != nil {
		return err
	}
	defer client.Close()

	if user := strings.TrimSpace(s.settings.Username); user != "" {
		auth := smtp.PlainAuth("", user, s.settings.Password, strings.TrimSpace(s.settings.Host))
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("mail: auth: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("mail: MAIL FROM: %w", err)
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("mail: RCPT TO %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("mail: DATA: %w", err)
	}
	if _, err := io.WriteString(w, render(from, recipients, env)); err != nil {
		_ = w.Close()
		return fmt.Errorf("mail: write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mail: finish message: %w", err)
	}
	return client.Quit()
}

func (s *SMTPSender) resolveAddresses(env Envelope) (string, []string, error) {
	from := strings.TrimSpace(env.From)
	if from == "" {
		from = strings.TrimSpace(s.settings.From)
	}
	if from == "" {
		return "", nil, errors.New("mail: sender address is required")
	}
	if _, err := stdmail.ParseAddress(from); err != nil {
		return "", nil, fmt.Errorf("mail: invalid sender %q: %w", from, err)
	}

	recipients := Dedupe(env.To)
	if len(recipients) == 0 {
		return "", nil, errors.New("mail: at least one recipient is required")
	}
	for _, rcpt := range recipients {
		if _, err := stdmail.ParseAddress(rcpt); err != nil {
			return "", nil, fmt.Errorf("mail: invalid recipient %q: %w", rcpt, err)
		}
	}
	return from, recipients, nil
}

func dialSMTP(ctx context.Context, s Settings) (session, error) {
	host := strings.TrimSpace(s.Host)
	d := &net.Dialer{Timeout: s.Timeout}

	var (
		conn net.Conn
		err  error
	)
	if s.UseTLS {
		td := &tls.Dialer{NetDialer: d, Config: &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}}
		conn, err = td.DialContext(ctx, "tcp", s.address())
	} else {
		conn, err = d.DialContext(ctx, "tcp", s.address())
	}
	if err != nil {
		return nil, fmt.Errorf("mail: dial %s: %w", s.address(), err)
	}
	_ = conn.SetDeadline(time.Now().Add(s.Timeout))

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("mail: handshake: %w", err)
	}

	if !s.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}); err != nil {
				_ = client.Close()
				return nil, fmt.Errorf("mail: starttls: %w", err)
			}
		}
	}
	return client, nil
}

// Dedupe trims addresses and drops blanks and repeats, keeping first-seen order.
func Dedupe(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		key := strings.ToLower(addr)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, addr)
	}
	return out
}

func render(from string, to []string, env Envelope) string {
	var b strings.Builder
	header := func(name, value string) {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(headerValue(value))
		b.WriteString("\r\n")
	}

	header("From", from)
	header("To", strings.Join(to, ", "))
	if reply := strings.TrimSpace(env.ReplyTo); reply != "" {
		header("Reply-To", reply)
	}
	header("Subject", env.Subject)
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=UTF-8")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(env.Body, "\r\n", "\n"), "\n", "\r\n"))
	return b.String()
}

func headerValue(value string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
}
