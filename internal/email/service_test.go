package email

import (
	"context"
	"testing"

	"github.com/anonto42/introhub/backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewEmailService(config.MailConfig{
		Provider:  "smtp",
		FromEmail: "no-reply@introhub.test",
		FromName:  "IntroHub",
		SMTPHost:  "localhost",
		SMTPPort:  2525,
	})
	require.NoError(t, err)
	return s
}

func TestLoadTemplates(t *testing.T) {
	s := newTestService(t)
	assert.Contains(t, s.templates, TemplateOTP)
}

func TestRenderOTP(t *testing.T) {
	s := newTestService(t)

	html, text, err := s.render(TemplateOTP, map[string]string{
		"Name":      "Ada",
		"Code":      "482913",
		"ExpiresIn": "2 minutes",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "482913")
	assert.Contains(t, html, "Hi Ada")
	assert.Contains(t, text, "Your IntroHub verification code is: 482913")
	assert.Contains(t, text, "2 minutes")
}

func TestRenderEscapesHTML(t *testing.T) {
	s := newTestService(t)

	html, text, err := s.render(TemplateOTP, map[string]string{
		"Name":      "<b>Grace</b>",
		"Code":      "000111",
		"ExpiresIn": "2 minutes",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>Grace</b>")
	assert.Contains(t, text, "<b>Grace</b>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	s := newTestService(t)
	_, _, err := s.render("missing", nil)
	assert.Error(t, err)
}

func TestSendEmailCancelledContext(t *testing.T) {
	s := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.SendEmail(ctx, EmailData{To: "a@b.c", TemplateName: TemplateOTP})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewEmailServiceValidation(t *testing.T) {
	_, err := NewEmailService(config.MailConfig{Provider: "sendgrid"})
	assert.Error(t, err)

	_, err = NewEmailService(config.MailConfig{Provider: "pigeon"})
	assert.Error(t, err)

	s, err := NewEmailService(config.MailConfig{Provider: "sendgrid", SendgridAPIKey: "SG.test"})
	require.NoError(t, err)
	assert.NotNil(t, s.sendgridClient)
}
