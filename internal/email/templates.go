package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Built-in template names.
const (
	TemplateEmailVerification  = "email_verification"
	TemplateApplicationStatus  = "application_status"
	TemplateInterviewScheduled = "interview_scheduled"
	TemplateInterviewReminder  = "interview_reminder"
)

var builtinTemplates = map[string]string{
	TemplateEmailVerification: `<html><body>
<p>Hello, {{.FullName}}!</p>
<p>Please confirm your email address by entering this code: <b>{{.Code}}</b></p>
<p>The code expires in 10 minutes.</p>
</body></html>`,

	TemplateApplicationStatus: `<html><body>
<p>Hello, {{.FullName}}!</p>
<p>The status of your application for <b>{{.JobTitle}}</b> changed to <b>{{.Status}}</b>.</p>
{{if .Comment}}<p>Comment: {{.Comment}}</p>{{end}}
</body></html>`,

	TemplateInterviewScheduled: `<html><body>
<p>Hello, {{.FullName}}!</p>
<p>An interview for <b>{{.JobTitle}}</b> has been scheduled for <b>{{.ScheduledAt}}</b>.</p>
{{if .MeetingURL}}<p>Join link: <a href="{{.MeetingURL}}">{{.MeetingURL}}</a></p>{{end}}
{{if .Location}}<p>Location: {{.Location}}</p>{{end}}
</body></html>`,

	TemplateInterviewReminder: `<html><body>
<p>Hello, {{.FullName}}!</p>
<p>Reminder: your interview for <b>{{.JobTitle}}</b> starts at <b>{{.ScheduledAt}}</b>.</p>
{{if .MeetingURL}}<p>Join link: <a href="{{.MeetingURL}}">{{.MeetingURL}}</a></p>{{end}}
</body></html>`,
}

// TemplateManager renders named HTML templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager creates a manager preloaded with the built-in templates.
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// Render renders a template with data.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate registers or replaces a template.
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// TemplateNames returns the names of the loaded templates.
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}

	return names
}
