package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"shiftmarket-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(to, subject, plainText, htmlContent string) error {
	if s.apiKey == "" {
		// Local development runs without an API key; log instead of sending.
		logger.Info("email suppressed (no SendGrid key)", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendProposalNotification(_ context.Context, email, requesterName, shiftLabel, shiftDate string) error {
	subject := fmt.Sprintf("New swap proposal from %s", requesterName)
	plain := fmt.Sprintf("%s has proposed swapping their %s shift on %s with you. Log in to respond.", requesterName, shiftLabel, shiftDate)
	html := fmt.Sprintf("<p><strong>%s</strong> has proposed swapping their <strong>%s</strong> shift on %s with you.</p><p>Log in to accept or decline.</p>", requesterName, shiftLabel, shiftDate)
	return s.send(email, subject, plain, html)
}

func (s *sendGridEmailService) SendClaimNotification(_ context.Context, email, candidateName, shiftLabel string, pendingApproval bool) error {
	subject := fmt.Sprintf("Your %s shift request was accepted", shiftLabel)
	suffix := "The exchange is complete."
	if pendingApproval {
		suffix = "The exchange is awaiting admin approval."
	}
	plain := fmt.Sprintf("%s accepted your %s shift request. %s", candidateName, shiftLabel, suffix)
	html := fmt.Sprintf("<p><strong>%s</strong> accepted your <strong>%s</strong> shift request.</p><p>%s</p>", candidateName, shiftLabel, suffix)
	return s.send(email, subject, plain, html)
}

func (s *sendGridEmailService) SendDecisionNotification(_ context.Context, email, shiftLabel string, approved bool, notes string) error {
	verdict := "rejected"
	if approved {
		verdict = "approved"
	}
	subject := fmt.Sprintf("Shift exchange %s", verdict)
	plain := fmt.Sprintf("The exchange of the %s shift was %s.", shiftLabel, verdict)
	if notes != "" {
		plain += " Note: " + notes
	}
	html := fmt.Sprintf("<p>The exchange of the <strong>%s</strong> shift was <strong>%s</strong>.</p>", shiftLabel, verdict)
	if notes != "" {
		html += fmt.Sprintf("<p>Note: %s</p>", notes)
	}
	return s.send(email, subject, plain, html)
}

func (s *sendGridEmailService) SendCancellationNotification(_ context.Context, email, requesterName, shiftLabel string) error {
	subject := "Shift request withdrawn"
	plain := fmt.Sprintf("%s withdrew their %s shift exchange request.", requesterName, shiftLabel)
	html := fmt.Sprintf("<p><strong>%s</strong> withdrew their <strong>%s</strong> shift exchange request.</p>", requesterName, shiftLabel)
	return s.send(email, subject, plain, html)
}
