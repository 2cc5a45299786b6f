package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/wneessen/go-mail"

	"github.com/reachsuite/emailbuilder/pkg/logger"
)

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=pkgmocks github.com/reachsuite/emailbuilder/pkg/mailer Mailer

// Provider names accepted by New
const (
	ProviderSMTP    = "smtp"
	ProviderSES     = "ses"
	ProviderConsole = "console"
)

// Mailer delivers rendered emails
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single rendered email
type Message struct {
	To      string
	Subject string
	HTML    string
	// Text is derived from HTML when empty
	Text string
}

// Config holds the configuration for the mailer
type Config struct {
	Provider     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SESRegion    string
	SESAccessKey string
	SESSecretKey string
	FromEmail    string
	FromName     string
}

// New returns the mailer selected by cfg.Provider
func New(cfg *Config, log logger.Logger) (Mailer, error) {
	switch cfg.Provider {
	case ProviderSMTP:
		return NewSMTPMailer(cfg), nil
	case ProviderSES:
		return NewSESMailer(cfg)
	case ProviderConsole, "":
		return NewConsoleMailer(log), nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}

// PlainText extracts the readable text of an HTML document
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("head, style, script").Remove()

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}

func textBody(msg Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return PlainText(msg.HTML)
}

// SMTPMailer implements the Mailer interface using SMTP
type SMTPMailer struct {
	config   *Config
	testMode bool
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{config: config}
}

// NewTestSMTPMailer creates a new SMTP mailer in test mode (won't connect to SMTP server)
func NewTestSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{config: config, testMode: true}
}

func (m *SMTPMailer) buildMessage(msg Message) (*mail.Msg, error) {
	email := mail.NewMsg(mail.WithNoDefaultUserAgent())

	if err := email.FromFormat(m.config.FromName, m.config.FromEmail); err != nil {
		return nil, fmt.Errorf("failed to set email from address: %w", err)
	}
	if err := email.To(msg.To); err != nil {
		return nil, fmt.Errorf("failed to set email recipient: %w", err)
	}

	email.Subject(msg.Subject)
	email.SetBodyString(mail.TypeTextHTML, msg.HTML)
	email.AddAlternativeString(mail.TypeTextPlain, textBody(msg))
	return email, nil
}

// Send delivers msg through the configured SMTP server
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	email, err := m.buildMessage(msg)
	if err != nil {
		return err
	}

	client, err := m.createSMTPClient()
	if err != nil {
		return err
	}
	if client == nil {
		return nil
	}

	if err := client.DialAndSendWithContext(ctx, email); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// createSMTPClient creates and configures a new SMTP client
func (m *SMTPMailer) createSMTPClient() (*mail.Client, error) {
	if m.testMode {
		return nil, nil
	}

	clientOptions := []mail.Option{
		mail.WithPort(m.config.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}

	// Unauthenticated relays are allowed
	if m.config.SMTPUsername != "" && m.config.SMTPPassword != "" {
		clientOptions = append(clientOptions,
			mail.WithUsername(m.config.SMTPUsername),
			mail.WithPassword(m.config.SMTPPassword),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(m.config.SMTPHost, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}

// SESClient is the subset of the SES API used to send email
type SESClient interface {
	SendEmailWithContext(ctx aws.Context, input *ses.SendEmailInput, opts ...request.Option) (*ses.SendEmailOutput, error)
}

// SESMailer implements the Mailer interface using Amazon SES
type SESMailer struct {
	config *Config
	client SESClient
}

// NewSESMailer creates an SES mailer from static credentials
func NewSESMailer(config *Config) (*SESMailer, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(config.SESRegion),
		Credentials: credentials.NewStaticCredentials(config.SESAccessKey, config.SESSecretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return NewSESMailerWithClient(config, ses.New(sess)), nil
}

// NewSESMailerWithClient creates an SES mailer around an existing client
func NewSESMailerWithClient(config *Config, client SESClient) *SESMailer {
	return &SESMailer{config: config, client: client}
}

// Send delivers msg through SES
func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(msg.To)},
		},
		Message: &ses.Message{
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(msg.HTML),
				},
				Text: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(textBody(msg)),
				},
			},
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(msg.Subject),
			},
		},
		Source: aws.String(fmt.Sprintf("%s <%s>", m.config.FromName, m.config.FromEmail)),
	}

	if _, err := m.client.SendEmailWithContext(ctx, input); err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			return fmt.Errorf("SES error: %s", aerr.Error())
		}
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// ConsoleMailer is a development implementation that just logs emails
type ConsoleMailer struct {
	logger logger.Logger
}

// NewConsoleMailer creates a new console mailer for development
func NewConsoleMailer(log logger.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: log}
}

// Send logs the message instead of delivering it
func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	m.logger.WithFields(map[string]interface{}{
		"to":         msg.To,
		"subject":    msg.Subject,
		"html_bytes": len(msg.HTML),
	}).Info("Test email (console mailer)\n" + textBody(msg))
	return nil
}
