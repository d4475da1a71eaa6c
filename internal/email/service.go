package email

//go:generate mockgen -source=./service.go -destination=../mocks/mock_email_sender.go -package=mocks Sender

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/anonto42/introhub/backend/pkg/config"
	"github.com/sendgrid/sendgrid-go"
	"gopkg.in/gomail.v2"
)

//go:embed templates
var templateFS embed.FS

// Provider identifies supported email providers
type Provider string

const (
	ProviderSMTP     Provider = "smtp"
	ProviderSendgrid Provider = "sendgrid"

	DefaultTemplatePath = "templates"
	TemplateOTP         = "otp"
)

// EmailData contains all necessary information for sending an email
type EmailData struct {
	To           string
	Subject      string
	TemplateName string
	TemplateData interface{}
}

// Sender delivers templated emails.
type Sender interface {
	SendEmail(ctx context.Context, data EmailData) error
}

// Service renders embedded templates and hands them to the configured provider.
type Service struct {
	cfg            config.MailConfig
	provider       Provider
	dialer         *gomail.Dialer
	sendgridClient *sendgrid.Client
	templates      map[string]*Template
}

type Template struct {
	HTML      *htmltemplate.Template
	Plaintext *texttemplate.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.MailConfig) (*Service, error) {
	s := &Service{
		cfg:       cfg,
		provider:  Provider(cfg.Provider),
		templates: make(map[string]*Template),
	}

	switch s.provider {
	case ProviderSendgrid:
		if cfg.SendgridAPIKey == "" {
			return nil, fmt.Errorf("sendgrid api key is required")
		}
		s.sendgridClient = sendgrid.NewSendClient(cfg.SendgridAPIKey)
	case ProviderSMTP:
		s.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Provider)
	}

	if err := s.loadTemplates(); err != nil {
		return nil, fmt.Errorf("loading email templates: %w", err)
	}
	return s, nil
}

// loadTemplates loads every template group from the embedded filesystem.
// Each group directory holds html.tmpl and plaintext.tmpl.
func (s *Service) loadTemplates() error {
	groups, err := templateFS.ReadDir(DefaultTemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read email templates directory: %w", err)
	}

	for _, group := range groups {
		if !group.IsDir() {
			continue
		}
		groupPath := DefaultTemplatePath + "/" + group.Name()

		html, err := htmltemplate.ParseFS(templateFS, groupPath+"/html.tmpl")
		if err != nil {
			return fmt.Errorf("parsing %s html template: %w", group.Name(), err)
		}
		text, err := texttemplate.ParseFS(templateFS, groupPath+"/plaintext.tmpl")
		if err != nil {
			return fmt.Errorf("parsing %s plaintext template: %w", group.Name(), err)
		}
		s.templates[group.Name()] = &Template{HTML: html, Plaintext: text}
	}

	if len(s.templates) == 0 {
		return fmt.Errorf("no email templates found")
	}
	return nil
}

// SendEmail sends an email using the configured provider
func (s *Service) SendEmail(ctx context.Context, data EmailData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	htmlContent, textContent, err := s.render(data.TemplateName, data.TemplateData)
	if err != nil {
		return err
	}

	switch s.provider {
	case ProviderSendgrid:
		return s.sendWithSendgrid(data, htmlContent, textContent)
	case ProviderSMTP:
		return s.sendWithSMTP(data, htmlContent, textContent)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.provider)
	}
}

func (s *Service) render(name string, data interface{}) (string, string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", "", fmt.Errorf("template %s not found", name)
	}

	var html bytes.Buffer
	if err := tmpl.HTML.Execute(&html, data); err != nil {
		return "", "", fmt.Errorf("rendering %s html: %w", name, err)
	}

	var text bytes.Buffer
	if err := tmpl.Plaintext.Execute(&text, data); err != nil {
		return "", "", fmt.Errorf("rendering %s plaintext: %w", name, err)
	}

	return html.String(), text.String(), nil
}
