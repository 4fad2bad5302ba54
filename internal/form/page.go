package form

import (
	"context"
	"time"

	"github.com/ahrdadan/formcheck/internal/browser"
	"go.uber.org/zap"
)

// DefaultWait bounds the explicit waits for the marker field and the result.
const DefaultWait = 10 * time.Second

// Page is the page object for the registration form.
type Page struct {
	session browser.Session
	logger  *zap.Logger
	wait    time.Duration

	nameField            browser.Locator
	emailField           browser.Locator
	passwordField        browser.Locator
	confirmPasswordField browser.Locator
	dateField            browser.Locator
	languageSelect       browser.Locator
	submitButton         browser.Locator
	output               browser.Locator
}

// NewPage wraps session. A non-positive wait uses DefaultWait.
func NewPage(session browser.Session, logger *zap.Logger, wait time.Duration) *Page {
	if logger == nil {
		logger = zap.NewNop()
	}
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Page{
		session: session,
		logger:  logger,
		wait:    wait,

		nameField:            browser.ByID("username"),
		emailField:           browser.ByID("email"),
		passwordField:        browser.ByID("password"),
		confirmPasswordField: browser.ByID("confirm_password"),
		dateField:            browser.ByID("birthdate"),
		languageSelect:       browser.ByID("language_level"),
		submitButton:         browser.ByXPath("//input[@type='submit']"),
		output:               browser.ByID("output"),
	}
}

// Open navigates to url and waits for the name field to become visible.
func (p *Page) Open(ctx context.Context, url string) error {
	p.logger.Info("Opening form", zap.String("url", url))
	if err := p.session.Open(ctx, url); err != nil {
		return err
	}
	if err := p.session.WaitVisible(ctx, p.nameField, p.wait); err != nil {
		return err
	}
	p.logger.Debug("Form loaded")
	return nil
}

// EnterName types the user name.
func (p *Page) EnterName(ctx context.Context, name string) error {
	p.logger.Debug("Entering name", zap.String("name", name))
	return p.session.Type(ctx, p.nameField, name)
}

// EnterEmail types the email address.
func (p *Page) EnterEmail(ctx context.Context, email string) error {
	p.logger.Debug("Entering email", zap.String("email", email))
	return p.session.Type(ctx, p.emailField, email)
}

// EnterPassword types the password. The value is never logged.
func (p *Page) EnterPassword(ctx context.Context, password string) error {
	p.logger.Debug("Entering password")
	return p.session.Type(ctx, p.passwordField, password)
}

// EnterConfirmPassword types the password confirmation.
func (p *Page) EnterConfirmPassword(ctx context.Context, password string) error {
	p.logger.Debug("Entering password confirmation")
	return p.session.Type(ctx, p.confirmPasswordField, password)
}

// EnterDateOfBirth types date as keystrokes, e.g. "01011990".
func (p *Page) EnterDateOfBirth(ctx context.Context, date string) error {
	p.logger.Debug("Entering date of birth", zap.String("date", date))
	return p.session.Type(ctx, p.dateField, date)
}

// SelectLanguageLevel picks the dropdown option labelled level.
func (p *Page) SelectLanguageLevel(ctx context.Context, level string) error {
	p.logger.Debug("Selecting language level", zap.String("level", level))
	if err := p.session.SelectByText(ctx, p.languageSelect, level); err != nil {
		return err
	}
	p.logger.Info("Language level selected", zap.String("level", level))
	return nil
}

// ClickSubmit submits the form.
func (p *Page) ClickSubmit(ctx context.Context) error {
	p.logger.Info("Submitting form")
	return p.session.Click(ctx, p.submitButton)
}

// SubmittedData waits for the result block and parses its text.
func (p *Page) SubmittedData(ctx context.Context) (SubmittedData, error) {
	p.logger.Info("Reading submitted data")
	if err := p.session.WaitVisible(ctx, p.output, p.wait); err != nil {
		return nil, err
	}
	text, err := p.session.Text(ctx, p.output)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Raw submitted data", zap.String("text", text))

	data := ParseSubmitted(text)
	p.logger.Info("Submitted data read", zap.Any("data", map[string]string(data)))
	return data, nil
}
