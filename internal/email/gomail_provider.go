package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"kairo_backend/internal/config"
	"kairo_backend/internal/logger"
)

// GomailProvider sends mail over SMTP via gomail.
type GomailProvider struct {
	dialer    *gomail.Dialer
	from      string
	fromName  string
	templates TemplateRenderer
}

func NewGomailProvider(cfg config.EmailConfig, templates TemplateRenderer) *GomailProvider {
	return &GomailProvider{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:      cfg.FromEmail,
		fromName:  cfg.FromName,
		templates: templates,
	}
}

func (p *GomailProvider) Send(email *Email) error {
	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = m.FormatAddress(p.from, p.fromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		logger.Error("failed to send email", "to", email.To, "subject", email.Subject, "error", err)
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func (p *GomailProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	body, err := p.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: body})
}

func (p *GomailProvider) SendVerification(to, name, verifyURL string) error {
	return p.SendTemplate([]string{to}, "Verify your Kairo account", TemplateVerification, TemplateData{
		"Name":      name,
		"VerifyURL": verifyURL,
	})
}

func (p *GomailProvider) SendCompanyCredentials(to, companyName, loginID string) error {
	return p.SendTemplate([]string{to}, "Your Kairo company login", TemplateCompanyCredentials, TemplateData{
		"CompanyName": companyName,
		"LoginID":     loginID,
	})
}

func (p *GomailProvider) SendInterviewInvite(to, name, internshipTitle, mode, location, date, timeSlot string) error {
	return p.SendTemplate([]string{to}, "Interview invitation: "+internshipTitle, TemplateInterviewInvite, TemplateData{
		"Name":            name,
		"InternshipTitle": internshipTitle,
		"Mode":            mode,
		"Location":        location,
		"Date":            date,
		"Time":            timeSlot,
	})
}

func (p *GomailProvider) Validate() error {
	if p.dialer.Host == "" {
		return errors.New("smtp host is not configured")
	}
	if p.from == "" {
		return errors.New("from address is not configured")
	}
	return nil
}

func (p *GomailProvider) Close() error {
	return nil
}
