package service

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/priyankan19/oerhub/internal/config"
)

type Mailer interface {
	SendContributionSuccess(toEmail, contributorName, chapterTitle string) error
}

type MailService struct {
	apiKey string
	from   *mail.Email
}

func NewMailService() *MailService {
	mailConfig := config.LoadMailConfig()
	return &MailService{
		apiKey: mailConfig.SendGridAPIKey,
		from:   mail.NewEmail(mailConfig.FromName, mailConfig.FromEmail),
	}
}

func (s *MailService) SendContributionSuccess(toEmail, contributorName, chapterTitle string) error {
	if s.apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY not set")
	}

	subject := fmt.Sprintf("Your contribution for %s was submitted!", chapterTitle)
	plain := fmt.Sprintf("Hi %s,\n\nYour content for %s was submitted and is now awaiting review.\n\nThank you for contributing!", contributorName, chapterTitle)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your content for <strong>%s</strong> was submitted and is now awaiting review.</p><p>Thank you for contributing!</p>", contributorName, chapterTitle)

	to := mail.NewEmail(contributorName, toEmail)
	message := mail.NewSingleEmail(s.from, subject, to, plain, html)

	resp, err := sendgrid.NewSendClient(s.apiKey).Send(message)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send mail: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
