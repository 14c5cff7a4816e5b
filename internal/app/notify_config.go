package app

import (
	"strings"

	"github.com/charlesng35/kurukshetra/pkg/mail"
)

// MailSettings converts the SMTP section into the mail package settings.
func (n NotifyConfig) MailSettings() mail.Settings {
	return mail.Settings{
		Enabled:  n.SMTP.Enabled,
		Host:     strings.TrimSpace(n.SMTP.Host),
		Port:     n.SMTP.Port,
		Username: strings.TrimSpace(n.SMTP.Username),
		Password: n.SMTP.Password,
		From:     strings.TrimSpace(n.SMTP.From),
		UseTLS:   n.SMTP.UseTLS,
		Timeout:  n.SMTP.Timeout,
	}
}

// ContactAlertsEnabled reports whether contact submissions should be emailed.
func (n NotifyConfig) ContactAlertsEnabled() bool {
	return n.SMTP.Enabled && len(mail.Dedupe(n.Recipients)) > 0
}
