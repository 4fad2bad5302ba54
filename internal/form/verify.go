package form

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Labels the endpoint uses in the result block.
const (
	LabelUserName      = "Имя пользователя"
	LabelEmail         = "Электронная почта"
	LabelDateOfBirth   = "Дата рождения"
	LabelLanguageLevel = "Уровень языка"
)

const (
	isoDateLayout = "2006-01-02"
	dobLayout     = "02012006"
)

var (
	// ErrNoSubmittedData is returned when verification receives a nil mapping.
	ErrNoSubmittedData = errors.New("submitted data is nil")
	// ErrUnknownLevel is returned when an expected language level has no code.
	ErrUnknownLevel = errors.New("unknown language level")
)

// Field names used in verification errors.
const (
	FieldUserName      = "user name"
	FieldEmail         = "email"
	FieldDateOfBirth   = "date of birth"
	FieldLanguageLevel = "language level"
)

// MismatchError reports a submitted field that differs from the expected value.
type MismatchError struct {
	Field    string
	Expected string
	Actual   string
	Missing  bool
}

func (e *MismatchError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s does not match: expected %q, field is missing", e.Field, e.Expected)
	}
	return fmt.Sprintf("%s does not match: expected %q, got %q", e.Field, e.Expected, e.Actual)
}

// DateFormatError reports a date of birth that is not an ISO-8601 date.
type DateFormatError struct {
	Value string
	Err   error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("date of birth %q is not an ISO-8601 date: %v", e.Value, e.Err)
}

func (e *DateFormatError) Unwrap() error { return e.Err }

// Expected holds the values a submission must echo back.
type Expected struct {
	Name          string
	Email         string
	DateOfBirth   string // ddMMyyyy digits
	LanguageLevel string // dropdown label
}

// VerifySubmittedDataIsNotNil fails with ErrNoSubmittedData on a nil mapping.
func (p *Page) VerifySubmittedDataIsNotNil(data SubmittedData) error {
	p.logger.Info("Checking submitted data is present")
	if data == nil {
		return ErrNoSubmittedData
	}
	return nil
}

// VerifyUserName compares the echoed user name with expected.
func (p *Page) VerifyUserName(data SubmittedData, expected string) error {
	p.logger.Info("Checking user name", zap.String("expected", expected))
	return compare(data, LabelUserName, FieldUserName, expected)
}

// VerifyUserEmail compares the echoed email with expected.
func (p *Page) VerifyUserEmail(data SubmittedData, expected string) error {
	p.logger.Info("Checking email", zap.String("expected", expected))
	return compare(data, LabelEmail, FieldEmail, expected)
}

// VerifyDateOfBirth reformats the echoed ISO date as ddMMyyyy and compares it.
// An unparsable or missing date is a *DateFormatError.
func (p *Page) VerifyDateOfBirth(data SubmittedData, expected string) error {
	p.logger.Info("Checking date of birth", zap.String("expected", expected))
	raw, ok := data.Lookup(LabelDateOfBirth)
	if !ok {
		return &DateFormatError{Value: raw, Err: errors.New("field is missing")}
	}
	date, err := time.Parse(isoDateLayout, raw)
	if err != nil {
		return &DateFormatError{Value: raw, Err: err}
	}
	if actual := date.Format(dobLayout); actual != expected {
		return &MismatchError{Field: FieldDateOfBirth, Expected: expected, Actual: actual}
	}
	return nil
}

// VerifyLanguageLevel translates the expected dropdown label to its code and
// compares it with the echoed code.
func (p *Page) VerifyLanguageLevel(data SubmittedData, expected string) error {
	p.logger.Info("Checking language level", zap.String("expected", expected))
	code, ok := LanguageLevelCode(expected)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, expected)
	}
	return compare(data, LabelLanguageLevel, FieldLanguageLevel, code)
}

// VerifyAll runs every check in order and returns the first failure.
func (p *Page) VerifyAll(data SubmittedData, want Expected) error {
	p.logger.Info("Checking all submitted data")
	checks := []func() error{
		func() error { return p.VerifySubmittedDataIsNotNil(data) },
		func() error { return p.VerifyUserName(data, want.Name) },
		func() error { return p.VerifyUserEmail(data, want.Email) },
		func() error { return p.VerifyDateOfBirth(data, want.DateOfBirth) },
		func() error { return p.VerifyLanguageLevel(data, want.LanguageLevel) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			p.logger.Warn("Verification failed", zap.Error(err))
			return err
		}
	}
	return nil
}

func compare(data SubmittedData, label, field, expected string) error {
	actual, ok := data.Lookup(label)
	if !ok {
		return &MismatchError{Field: field, Expected: expected, Missing: true}
	}
	if actual != expected {
		return &MismatchError{Field: field, Expected: expected, Actual: actual}
	}
	return nil
}
