package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_BuiltinsLoaded(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	names := tm.TemplateNames()
	assert.Contains(t, names, TemplateEmailVerification)
	assert.Contains(t, names, TemplateApplicationStatus)
	assert.Contains(t, names, TemplateInterviewScheduled)
	assert.Contains(t, names, TemplateInterviewReminder)
}

func TestTemplateManager_RenderVerification(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	html, err := tm.Render(TemplateEmailVerification, TemplateData{
		"FullName": "Aziz Karimov",
		"Code":     "482913",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Aziz Karimov")
	assert.Contains(t, html, "482913")
}

func TestTemplateManager_RenderUnknown(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("no_such_template", TemplateData{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template not found")
}

func TestMockProvider_SendTemplate(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	p := NewMockProvider(tm)
	err = p.SendTemplate([]string{"candidate@example.com"}, "Interview scheduled", TemplateInterviewScheduled, TemplateData{
		"FullName":    "Aziz Karimov",
		"JobTitle":    "Backend Engineer",
		"ScheduledAt": "2025-03-10 14:00",
		"MeetingURL":  "https://meet.example.com/abc",
	})
	require.NoError(t, err)

	sent := p.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"candidate@example.com"}, sent[0].To)
	assert.Contains(t, sent[0].HTMLBody, "Backend Engineer")
	assert.Contains(t, sent[0].HTMLBody, "https://meet.example.com/abc")
}

func TestNewSMTPProvider_Validation(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = NewSMTPProvider(SMTPConfig{Port: 587}, tm)
	require.Error(t, err)

	_, err = NewSMTPProvider(SMTPConfig{Host: "smtp.example.com", Port: 0}, tm)
	require.Error(t, err)

	p, err := NewSMTPProvider(SMTPConfig{Host: "smtp.example.com", Port: 587}, tm)
	require.NoError(t, err)
	assert.NotNil(t, p)
}
