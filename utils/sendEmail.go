package utils

import (
	"fmt"
	"strconv"

	"signops-backend/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Initialize the SMTP mailer once and store it in a global variable
var mailer *gomail.Dialer

// InitializeMailer sets up the mailer using environment variables
func InitializeMailer() {
	mailHost := config.GetEnv("SMTP_HOST")
	mailPort := config.GetEnv("SMTP_PORT")
	mailUser := config.GetEnv("SMTP_USER")
	mailPassword := config.GetEnv("SMTP_PASSWORD")

	port, err := strconv.Atoi(mailPort)
	if err != nil {
		config.Logger.Error("Invalid SMTP_PORT value, defaulting to port 25",
			zap.String("provided_port", mailPort),
			zap.Error(err),
		)
		port = 25
	}

	mailer = gomail.NewDialer(mailHost, port, mailUser, mailPassword)
	config.Logger.Info("Mailer initialized successfully")
}

// GetMailer returns the initialized mailer
func GetMailer() *gomail.Dialer {
	return mailer
}

// SendEmail delivers a simple HTML email through the configured dialer.
func SendEmail(to, subject, htmlBody string) error {
	if mailer == nil {
		return fmt.Errorf("mailer not initialized")
	}

	from := config.GetEnvOrDefault("SMTP_FROM", "no-reply@signops.local")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := mailer.DialAndSend(m); err != nil {
		config.Logger.Error("Failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
