package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager keeps parsed html templates keyed by name.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	for name, body := range builtinTemplates {
		_ = tm.AddTemplate(name, body)
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()
	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

const (
	TemplateVerification       = "verification"
	TemplateCompanyCredentials = "company_credentials"
	TemplateInterviewInvite    = "interview_invite"
)

var builtinTemplates = map[string]string{
	TemplateVerification: `<html><body>
<p>Hi {{.Name}},</p>
<p>Welcome to Kairo! Please confirm your email address to activate your account.</p>
<p><a href="{{.VerifyURL}}">Verify my email</a></p>
<p>The link is valid for 10 minutes. If you did not sign up, you can ignore this message.</p>
<p>The Kairo Team</p>
</body></html>`,

	TemplateCompanyCredentials: `<html><body>
<p>Hello {{.CompanyName}},</p>
<p>Your company console is ready. Sign in with the login ID below and the password you chose during registration.</p>
<p><strong>Login ID: {{.LoginID}}</strong></p>
<p>Keep this ID safe. It is shown only once.</p>
<p>The Kairo Team</p>
</body></html>`,

	TemplateInterviewInvite: `<html><body>
<p>Hi {{.Name}},</p>
<p>You have been invited to an interview for <strong>{{.InternshipTitle}}</strong>.</p>
<ul>
<li>Mode: {{.Mode}}</li>
{{if .Location}}<li>Location: {{.Location}}</li>{{end}}
<li>Date: {{.Date}}</li>
<li>Time: {{.Time}}</li>
</ul>
<p>Good luck!</p>
<p>The Kairo Team</p>
</body></html>`,
}
