package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/charlesng35/kurukshetra/internal/models"
	"github.com/charlesng35/kurukshetra/pkg/logger"
	"github.com/charlesng35/kurukshetra/pkg/mail"
)

const defaultSendTimeout = 30 * time.Second

// ContactMailer emails the organising committee when the public contact
// form receives a message. Delivery runs in the background so a slow relay
// never delays the HTTP response.
type ContactMailer struct {
	sender     mail.Sender
	recipients []string
	timeout    time.Duration
	log        *zap.Logger

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// Option customises a ContactMailer.
type Option func(*ContactMailer)

// WithTimeout bounds each delivery attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(m *ContactMailer) {
		if timeout > 0 {
			m.timeout = timeout
		}
	}
}

// NewContactMailer returns a mailer delivering to recipients through sender.
func NewContactMailer(sender mail.Sender, recipients []string, opts ...Option) (*ContactMailer, error) {
	if sender == nil {
		return nil, errors.New("notifications: sender is required")
	}
	recipients = mail.Dedupe(recipients)
	if len(recipients) == 0 {
		return nil, errors.New("notifications: at least one recipient is required")
	}

	m := &ContactMailer{
		sender:     sender,
		recipients: recipients,
		timeout:    defaultSendTimeout,
		log:        logger.WithModule("notifications"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NotifyContact queues an email about message. Failures are logged.
func (m *ContactMailer) NotifyContact(message *models.ContactMessage) {
	if m == nil || message == nil {
		return
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.wg.Add(1)
	m.mu.Unlock()

	envelope := contactEnvelope(message, m.recipients)
	go func() {
		defer m.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		if err := m.sender.Send(ctx, envelope); err != nil {
			m.log.Warn("contact notification failed",
				zap.String("message_id", message.ID),
				zap.Error(err),
			)
			return
		}
		m.log.Debug("contact notification sent",
			zap.String("message_id", message.ID),
			zap.Int("recipients", len(envelope.To)),
		)
	}()
}

// Close stops accepting notifications and waits for pending deliveries or
// for ctx to expire.
func (m *ContactMailer) Close(ctx context.Context) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func contactEnvelope(message *models.ContactMessage, recipients []string) mail.Envelope {
	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\n", message.Name)
	fmt.Fprintf(&body, "Email: %s\n", message.Email)
	if !message.CreatedAt.IsZero() {
		fmt.Fprintf(&body, "Received: %s\n", message.CreatedAt.UTC().Format(time.RFC1123))
	}
	body.WriteString("\n")
	body.WriteString(message.Message)
	body.WriteString("\n")

	return mail.Envelope{
		ReplyTo: message.Email,
		To:      recipients,
		Subject: fmt.Sprintf("New contact message from %s", message.Name),
		Body:    body.String(),
	}
}
