package email

// Email represents an outgoing message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData holds values interpolated into email templates.
type TemplateData map[string]interface{}

// Provider sends email messages.
type Provider interface {
	// Send delivers the message as-is.
	Send(email *Email) error

	// SendTemplate renders the named template and delivers it.
	SendTemplate(to []string, subject, templateName string, data TemplateData) error
}
