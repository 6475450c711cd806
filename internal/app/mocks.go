package app

import (
	"kairo_backend/internal/email"
	"kairo_backend/internal/logger"
)

// LogEmailProvider writes mail to the log instead of sending it. Used in
// development when no SMTP host is configured.
type LogEmailProvider struct{}

func NewLogEmailProvider() *LogEmailProvider {
	return &LogEmailProvider{}
}

func (p *LogEmailProvider) Send(e *email.Email) error {
	logger.Info("email (not sent)", "to", e.To, "subject", e.Subject)
	return nil
}

func (p *LogEmailProvider) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	logger.Info("email (not sent)", "to", to, "subject", subject, "template", templateName, "data", data)
	return nil
}

func (p *LogEmailProvider) SendVerification(to, name, verifyURL string) error {
	logger.Info("verification email (not sent)", "to", to, "url", verifyURL)
	return nil
}

func (p *LogEmailProvider) SendCompanyCredentials(to, companyName, loginID string) error {
	logger.Info("company credentials email (not sent)", "to", to, "company", companyName, "login_id", loginID)
	return nil
}

func (p *LogEmailProvider) SendInterviewInvite(to, name, internshipTitle, mode, location, date, timeSlot string) error {
	logger.Info("interview invite email (not sent)", "to", to, "internship", internshipTitle)
	return nil
}

func (p *LogEmailProvider) Validate() error { return nil }
func (p *LogEmailProvider) Close() error    { return nil }
