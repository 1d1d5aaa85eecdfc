package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSurveyInvite(toEmail, ownerName, surveyLink string) error
	SendPasswordChanged(toEmail string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendSurveyInvite(toEmail, ownerName, surveyLink string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("%s is asking for your feedback", ownerName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Feedback request</h2>
			<p>%s would like your anonymous feedback. It takes two minutes:</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Give feedback</a>
			<p>Or copy this link:</p>
			<p>%s</p>
			<p>Responses are anonymous; only the relationship group you pick is shown.</p>
		</div>
	`, ownerName, surveyLink, surveyLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send invite to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Survey invite sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendPasswordChanged(toEmail string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your password was changed")

	body := `
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Password changed</h2>
			<p>The password for your account was just reset using the registration code.</p>
			<p>If this wasn't you, contact your administrator immediately.</p>
		</div>
	`

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send password notice to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}
