package form

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ahrdadan/formcheck/internal/browser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession records actions and serves canned text for the output element.
type fakeSession struct {
	calls   []string
	waits   []time.Duration
	output  string
	failOn  string
	failErr error
}

func (f *fakeSession) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn != "" && f.failOn == call {
		return f.failErr
	}
	return nil
}

func (f *fakeSession) Family() browser.Family { return browser.FamilyChrome }

func (f *fakeSession) Open(_ context.Context, url string) error {
	return f.record("open " + url)
}

func (f *fakeSession) WaitVisible(_ context.Context, loc browser.Locator, timeout time.Duration) error {
	f.waits = append(f.waits, timeout)
	return f.record("wait " + loc.String())
}

func (f *fakeSession) Type(_ context.Context, loc browser.Locator, text string) error {
	return f.record(fmt.Sprintf("type %s=%s", loc, text))
}

func (f *fakeSession) SelectByText(_ context.Context, loc browser.Locator, label string) error {
	return f.record(fmt.Sprintf("select %s=%s", loc, label))
}

func (f *fakeSession) Click(_ context.Context, loc browser.Locator) error {
	return f.record("click " + loc.String())
}

func (f *fakeSession) Text(_ context.Context, loc browser.Locator) (string, error) {
	return f.output, f.record("text " + loc.String())
}

func (f *fakeSession) Maximize(context.Context) error { return f.record("maximize") }

func (f *fakeSession) Quit() error { return f.record("quit") }

func TestPageFillSequence(t *testing.T) {
	ctx := context.Background()
	s := &fakeSession{}
	p := NewPage(s, nil, 3*time.Second)

	require.NoError(t, p.Open(ctx, "https://example.com/form.html"))
	require.NoError(t, p.EnterName(ctx, "Иван"))
	require.NoError(t, p.EnterEmail(ctx, "ivan@example.com"))
	require.NoError(t, p.EnterPassword(ctx, "secret"))
	require.NoError(t, p.EnterConfirmPassword(ctx, "secret"))
	require.NoError(t, p.EnterDateOfBirth(ctx, "01011990"))
	require.NoError(t, p.SelectLanguageLevel(ctx, LevelAdvanced))
	require.NoError(t, p.ClickSubmit(ctx))

	assert.Equal(t, []string{
		"open https://example.com/form.html",
		"wait id username",
		"type id username=Иван",
		"type id email=ivan@example.com",
		"type id password=secret",
		"type id confirm_password=secret",
		"type id birthdate=01011990",
		"select id language_level=Продвинутый",
		"click xpath //input[@type='submit']",
	}, s.calls)
	assert.Equal(t, []time.Duration{3 * time.Second}, s.waits)
}

func TestPageDefaultWait(t *testing.T) {
	s := &fakeSession{}
	p := NewPage(s, nil, 0)
	require.NoError(t, p.Open(context.Background(), "about:blank"))
	assert.Equal(t, []time.Duration{DefaultWait}, s.waits)
}

func TestPageSubmittedData(t *testing.T) {
	s := &fakeSession{output: "Имя пользователя: Иван\nДата рождения: 1990-01-01\n"}
	p := NewPage(s, nil, 0)

	data, err := p.SubmittedData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SubmittedData{"Имя пользователя": "Иван", "Дата рождения": "1990-01-01"}, data)
	assert.Equal(t, []string{"wait id output", "text id output"}, s.calls)
}

func TestPageSubmittedDataWaitTimeout(t *testing.T) {
	timeout := fmt.Errorf("%w: id output", browser.ErrWaitTimeout)
	s := &fakeSession{failOn: "wait id output", failErr: timeout}
	p := NewPage(s, nil, 0)

	data, err := p.SubmittedData(context.Background())
	require.ErrorIs(t, err, browser.ErrWaitTimeout)
	assert.Nil(t, data)
	assert.NotContains(t, s.calls, "text id output")
}

func TestPageInteractionErrorsPropagate(t *testing.T) {
	lookup := errors.New("no such element")
	s := &fakeSession{failOn: "type id email=x", failErr: lookup}
	p := NewPage(s, nil, 0)

	err := p.EnterEmail(context.Background(), "x")
	require.ErrorIs(t, err, lookup)
	assert.Len(t, s.calls, 1)
}
