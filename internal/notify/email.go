// Package notify sends best-effort status notifications. Delivery
// failures are logged and swallowed — a lost email never fails or
// retries a committed transition.
package notify

import (
	"fmt"
	"net/smtp"

	"aquisicoes-backend/internal/model"

	"go.uber.org/zap"
)

// Notifier is called after a transition commits. Implementations must
// never block the workflow on delivery problems.
type Notifier interface {
	SendStatusNotification(acq *model.Acquisition, newStatus model.AcquisitionStatus, recipient string)
}

// SMTPConfig configures the email notifier. When Username or Password
// is empty the notifier is disabled and only logs.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type emailNotifier struct {
	cfg     SMTPConfig
	enabled bool
	logger  *zap.Logger
}

// NewEmailNotifier builds an SMTP-backed notifier.
func NewEmailNotifier(cfg SMTPConfig, logger *zap.Logger) Notifier {
	enabled := cfg.Username != "" && cfg.Password != ""
	if !enabled {
		logger.Warn("email notifications disabled: SMTP credentials not configured")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &emailNotifier{cfg: cfg, enabled: enabled, logger: logger}
}

func (n *emailNotifier) SendStatusNotification(acq *model.Acquisition, newStatus model.AcquisitionStatus, recipient string) {
	if !n.enabled || recipient == "" {
		return
	}

	subject := fmt.Sprintf("Atualização na solicitação %s", acq.Title)
	body := fmt.Sprintf(
		"A solicitação %q teve seu status atualizado para %s.\r\n\r\n"+
			"Acesse o sistema de acompanhamento para mais detalhes.\r\n",
		acq.Title, string(newStatus),
	)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		n.cfg.From, recipient, subject, body,
	))

	addr := n.cfg.Host + ":" + n.cfg.Port
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{recipient}, msg); err != nil {
		n.logger.Warn("failed to send status notification",
			zap.String("acquisition_id", acq.ID.String()),
			zap.String("recipient", recipient),
			zap.Error(err))
		return
	}

	n.logger.Info("status notification sent",
		zap.String("acquisition_id", acq.ID.String()),
		zap.String("new_status", string(newStatus)))
}

// NopNotifier discards notifications; used in tests.
type NopNotifier struct{}

func (NopNotifier) SendStatusNotification(*model.Acquisition, model.AcquisitionStatus, string) {}
