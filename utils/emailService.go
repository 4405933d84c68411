package utils

import (
	"fmt"
	"html"

	"educa/config"
	"educa/logger"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const appName = "Educa"

// SendEmail delivers an html email through SendGrid. Without SENDGRID_API_KEY
// the message is only logged.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	return sendEmail(config.AppConfig, logger.Log, toEmail, toName, subject, htmlBody)
}

func sendEmail(cfg *config.Config, log *zap.Logger, toEmail, toName, subject, htmlBody string) error {
	if cfg.SendgridAPIKey == "" {
		log.Info("email not sent, SENDGRID_API_KEY unset",
			zap.String("to", toEmail), zap.String("subject", subject))
		return nil
	}

	from := sgmail.NewEmail(appName, cfg.EmailSender)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, "["+appName+"] "+subject, to, "", htmlBody)

	res, err := sendgrid.NewSendClient(cfg.SendgridAPIKey).Send(message)
	if err != nil {
		return errors.Wrap(err, "sendgrid send")
	}
	if res.StatusCode >= 400 {
		return errors.Errorf("sendgrid responded %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// SendEnrollmentEmail confirms a new enrollment in the background. Failures
// are logged and never reach the caller.
func SendEnrollmentEmail(email, name, courseTitle string) {
	cfg, log := config.AppConfig, logger.Log
	go func() {
		body := fmt.Sprintf(`<p>Hi %s,</p>
<p>You are now enrolled in <strong>%s</strong>. Your course contents are waiting for you.</p>`,
			html.EscapeString(name), html.EscapeString(courseTitle))

		if err := sendEmail(cfg, log, email, name, "Enrollment confirmed", body); err != nil {
			log.Warn("enrollment email failed", zap.String("to", email), zap.Error(err))
		}
	}()
}
