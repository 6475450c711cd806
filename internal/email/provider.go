package email

// Provider sends transactional mail.
type Provider interface {
	Send(email *Email) error
	SendTemplate(to []string, subject, templateName string, data TemplateData) error

	// SendVerification mails the signup confirmation link.
	SendVerification(to, name, verifyURL string) error

	// SendCompanyCredentials mails a freshly registered company its LoginID.
	SendCompanyCredentials(to, companyName, loginID string) error

	// SendInterviewInvite notifies an applicant about a scheduled interview.
	SendInterviewInvite(to, name, internshipTitle, mode, location, date, timeSlot string) error

	Validate() error
	Close() error
}

// TemplateRenderer renders named html templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name, templateStr string) error
}
