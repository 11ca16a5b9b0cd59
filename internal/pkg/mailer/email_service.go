package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"exam-proctor-be/internal/pkg/logger"
)

type IEmailService interface {
	SendSessionSummary(toEmail, candidateName, sessionId string, integrityScore, durationMinutes int, reportURL string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderEmail string, log logger.ILogger) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		logger:      log,
	}
}

// SendSessionSummary mails the candidate their final integrity score and a
// link to the full report once the session has ended.
func (s *emailService) SendSessionSummary(toEmail, candidateName, sessionId string, integrityScore, durationMinutes int, reportURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Interview Session Summary")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Interview Session Completed</h2>
			<p>Hi %s,</p>
			<p>Your proctored interview session has ended. Here is your summary:</p>
			<ul>
				<li>Session: %s</li>
				<li>Duration: %d minutes</li>
				<li>Integrity Score: <strong>%d / 100</strong></li>
			</ul>
			<p><a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">View Full Report</a></p>
			<p>If you believe any flagged event was a mistake, reply to this email.</p>
		</div>
	`, candidateName, sessionId, durationMinutes, integrityScore, reportURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Mailer", "Failed to send session summary", map[string]interface{}{
			"to":         toEmail,
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return err
	}

	s.logger.Info("Mailer", "Session summary sent", map[string]interface{}{
		"to":         toEmail,
		"session_id": sessionId,
	})
	return nil
}
