package scenario

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ahrdadan/formcheck/internal/browser"
	"github.com/ahrdadan/formcheck/internal/form"
	"github.com/ahrdadan/formcheck/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoSession behaves like the form endpoint: it remembers typed values and
// echoes them in the output block after submit.
type echoSession struct {
	typed     map[string]string
	submitted bool
	quits     int
	failClick error
	dateEcho  string
}

func newEchoSession() *echoSession {
	return &echoSession{typed: map[string]string{}, dateEcho: "1990-01-01"}
}

func (s *echoSession) Family() browser.Family { return browser.FamilyChrome }

func (s *echoSession) Open(context.Context, string) error { return nil }

func (s *echoSession) Maximize(context.Context) error { return errors.New("headless") }

func (s *echoSession) Quit() error {
	s.quits++
	return nil
}

func (s *echoSession) WaitVisible(_ context.Context, loc browser.Locator, timeout time.Duration) error {
	if loc.Value == "output" && !s.submitted {
		return fmt.Errorf("%w: %s not visible after %s", browser.ErrWaitTimeout, loc, timeout)
	}
	return nil
}

func (s *echoSession) Type(_ context.Context, loc browser.Locator, text string) error {
	s.typed[loc.Value] = text
	return nil
}

func (s *echoSession) SelectByText(_ context.Context, loc browser.Locator, label string) error {
	code, ok := form.LanguageLevelCode(label)
	if !ok {
		return fmt.Errorf("%w: no option %q", browser.ErrElementNotFound, label)
	}
	s.typed[loc.Value] = code
	return nil
}

func (s *echoSession) Click(context.Context, browser.Locator) error {
	if s.failClick != nil {
		return s.failClick
	}
	s.submitted = true
	return nil
}

func (s *echoSession) Text(context.Context, browser.Locator) (string, error) {
	return fmt.Sprintf("Имя пользователя: %s\nЭлектронная почта: %s\nДата рождения: %s\nУровень языка: %s\n",
		s.typed["username"], s.typed["email"], s.dateEcho, s.typed["language_level"]), nil
}

type fakeProvisioner struct {
	session browser.Session
	err     error
	names   []string
}

func (p *fakeProvisioner) Create(_ context.Context, name string, _ browser.Options) (browser.Session, error) {
	p.names = append(p.names, name)
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}

type recordingPublisher struct {
	reports []*report.Report
}

func (p *recordingPublisher) Publish(_ context.Context, r *report.Report) error {
	p.reports = append(p.reports, r)
	return nil
}

func defaultInput() Input {
	return Input{
		Browser:      "chrome",
		URL:          "https://example.com/form.html",
		UserName:     "Тестовый Пользователь1",
		UserEmail:    "user@example.com",
		UserPassword: "StrongPassword123!",
	}
}

func TestRunPasses(t *testing.T) {
	session := newEchoSession()
	pub := &recordingPublisher{}
	r := NewRunner(&fakeProvisioner{session: session}, nil, pub)

	rep, err := r.Run(context.Background(), defaultInput())
	require.NoError(t, err)
	assert.True(t, rep.Passed())
	assert.Equal(t, "advanced", rep.Submitted[form.LabelLanguageLevel])
	assert.Equal(t, DateOfBirth, session.typed["birthdate"])
	assert.Equal(t, "StrongPassword123!", session.typed["confirm_password"])
	assert.Equal(t, 1, session.quits)
	require.Len(t, pub.reports, 1)
	assert.Same(t, rep, pub.reports[0])
}

func TestRunSetupFailure(t *testing.T) {
	pub := &recordingPublisher{}
	prov := &fakeProvisioner{err: fmt.Errorf("%w \"safari\"", browser.ErrUnsupportedBrowser)}
	r := NewRunner(prov, nil, pub)

	in := defaultInput()
	in.Browser = "safari"
	rep, err := r.Run(context.Background(), in)

	require.ErrorIs(t, err, ErrSetup)
	require.ErrorIs(t, err, browser.ErrUnsupportedBrowser)
	assert.Equal(t, report.FailureSetup, rep.Failure)
	assert.Nil(t, rep.Submitted)
	require.Len(t, pub.reports, 1)
}

func TestRunQuitsOnInteractionFailure(t *testing.T) {
	session := newEchoSession()
	session.failClick = fmt.Errorf("%w: xpath //input[@type='submit']", browser.ErrElementNotFound)
	r := NewRunner(&fakeProvisioner{session: session}, nil)

	rep, err := r.Run(context.Background(), defaultInput())
	require.ErrorIs(t, err, browser.ErrElementNotFound)
	assert.Equal(t, report.FailureInteraction, rep.Failure)
	assert.Equal(t, 1, session.quits)
}

func TestRunAssertionFailureKeepsSubmittedData(t *testing.T) {
	session := newEchoSession()
	session.dateEcho = "not-a-date"
	r := NewRunner(&fakeProvisioner{session: session}, nil)

	rep, err := r.Run(context.Background(), defaultInput())
	var dateErr *form.DateFormatError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, report.FailureAssertion, rep.Failure)
	assert.Equal(t, "not-a-date", rep.Submitted[form.LabelDateOfBirth])
	assert.Equal(t, 1, session.quits)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want report.FailureKind
	}{
		{nil, report.FailureNone},
		{fmt.Errorf("%w: boom", ErrSetup), report.FailureSetup},
		{&form.MismatchError{Field: form.FieldEmail}, report.FailureAssertion},
		{&form.DateFormatError{Value: "x"}, report.FailureAssertion},
		{form.ErrNoSubmittedData, report.FailureAssertion},
		{fmt.Errorf("%w: id output", browser.ErrWaitTimeout), report.FailureTimeout},
		{fmt.Errorf("%w: id email: %w", browser.ErrElementNotFound, context.DeadlineExceeded), report.FailureInteraction},
		{fmt.Errorf("%w: id promo_code after 5s: %w", browser.ErrNotInteractable, context.DeadlineExceeded), report.FailureInteraction},
		{errors.New("element is not interactable"), report.FailureInteraction},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.err), "%v", tc.err)
	}
}
