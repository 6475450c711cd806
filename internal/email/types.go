package email

type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData feeds the html templates.
type TemplateData map[string]interface{}
