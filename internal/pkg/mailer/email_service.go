package mailer

import (
	"fmt"

	"promptly-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendVerificationCode(toEmail, code string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	logger      logger.ILogger
}

// NewEmailService returns an SMTP mailer, or a logging mailer when no SMTP
// host is configured so local sign-ins still work.
func NewEmailService(host string, port int, username, password, senderEmail, senderName string, log logger.ILogger) IEmailService {
	if host == "" {
		return &logEmailService{logger: log}
	}
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
		logger:      log,
	}
}

func (s *emailService) SendVerificationCode(toEmail, code string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Promptly verification code")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to Promptly!</h2>
			<p>Your verification code is:</p>
			<h1 style="color: #E4572E; letter-spacing: 5px;">%s</h1>
			<p>This code will expire in 15 minutes.</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, code)
	m.SetBody("text/html", body)
	m.AddAlternative("text/plain", fmt.Sprintf("Your Promptly verification code is %s", code))

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send verification code", map[string]interface{}{"to": toEmail, "error": err})
		return err
	}

	s.logger.Info("MAILER", "Verification code sent", map[string]interface{}{"to": toEmail})
	return nil
}

type logEmailService struct {
	logger logger.ILogger
}

func (s *logEmailService) SendVerificationCode(toEmail, code string) error {
	s.logger.Warn("MAILER", "SMTP not configured, logging verification code", map[string]interface{}{
		"to":   toEmail,
		"code": code,
	})
	return nil
}
