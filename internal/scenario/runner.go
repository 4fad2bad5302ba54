package scenario

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ahrdadan/formcheck/internal/browser"
	"github.com/ahrdadan/formcheck/internal/form"
	"github.com/ahrdadan/formcheck/internal/report"
	"go.uber.org/zap"
)

// Values the scenario always submits.
const (
	DateOfBirth   = "01011990"
	LanguageLevel = form.LevelAdvanced
)

// ErrSetup wraps failures to create the browser session. No page logic runs
// after a setup failure.
var ErrSetup = errors.New("browser setup failed")

// Provisioner creates browser sessions by name.
type Provisioner interface {
	Create(ctx context.Context, name string, opts browser.Options) (browser.Session, error)
}

// Input is everything one run needs.
type Input struct {
	Browser       string
	URL           string
	UserName      string
	UserEmail     string
	UserPassword  string
	DateOfBirth   string
	LanguageLevel string
	Options       browser.Options
	Wait          time.Duration
}

// Runner executes form submission runs one at a time.
type Runner struct {
	provisioner Provisioner
	publishers  []report.Publisher
	logger      *zap.Logger
	mu          sync.Mutex
}

// NewRunner creates a runner. Every finished report is handed to publishers.
func NewRunner(provisioner Provisioner, logger *zap.Logger, publishers ...report.Publisher) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		provisioner: provisioner,
		publishers:  publishers,
		logger:      logger,
	}
}

// Run opens a fresh browser, fills and submits the form, verifies the echoed
// data and quits the browser. The returned report is never nil; err is the
// first failure of the run.
func (r *Runner) Run(ctx context.Context, in Input) (*report.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if in.DateOfBirth == "" {
		in.DateOfBirth = DateOfBirth
	}
	if in.LanguageLevel == "" {
		in.LanguageLevel = LanguageLevel
	}

	rep := report.New(in.Browser, in.URL)
	log := r.logger.With(zap.String("run", rep.ID), zap.String("browser", in.Browser))
	log.Info("Starting form submission run",
		zap.String("url", in.URL),
		zap.String("user_name", in.UserName),
		zap.String("user_email", in.UserEmail))

	data, err := r.run(ctx, log, in)
	rep.Submitted = data
	rep.Finish(Classify(err), err)

	for _, p := range r.publishers {
		if perr := p.Publish(context.WithoutCancel(ctx), rep); perr != nil {
			log.Warn("Failed to publish report", zap.Error(perr))
		}
	}
	return rep, err
}

func (r *Runner) run(ctx context.Context, log *zap.Logger, in Input) (form.SubmittedData, error) {
	session, err := r.provisioner.Create(ctx, in.Browser, in.Options)
	if err != nil {
		log.Error("Failed to initialize browser", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}
	defer func() {
		log.Info("Closing browser")
		if err := session.Quit(); err != nil {
			log.Warn("Failed to quit browser", zap.Error(err))
		}
	}()

	if err := session.Maximize(ctx); err != nil {
		log.Debug("Could not maximize window", zap.Error(err))
	}

	page := form.NewPage(session, log, in.Wait)
	if err := page.Open(ctx, in.URL); err != nil {
		return nil, err
	}

	log.Debug("Filling form fields")
	steps := []func(context.Context) error{
		func(ctx context.Context) error { return page.EnterName(ctx, in.UserName) },
		func(ctx context.Context) error { return page.EnterEmail(ctx, in.UserEmail) },
		func(ctx context.Context) error { return page.EnterPassword(ctx, in.UserPassword) },
		func(ctx context.Context) error { return page.EnterConfirmPassword(ctx, in.UserPassword) },
		func(ctx context.Context) error { return page.EnterDateOfBirth(ctx, in.DateOfBirth) },
		func(ctx context.Context) error { return page.SelectLanguageLevel(ctx, in.LanguageLevel) },
		page.ClickSubmit,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return nil, err
		}
	}
	log.Info("Form submitted, reading submitted data")

	data, err := page.SubmittedData(ctx)
	if err != nil {
		return nil, err
	}

	err = page.VerifyAll(data, form.Expected{
		Name:          in.UserName,
		Email:         in.UserEmail,
		DateOfBirth:   in.DateOfBirth,
		LanguageLevel: in.LanguageLevel,
	})
	if err != nil {
		return data, err
	}

	log.Info("Submitted data verified")
	return data, nil
}

// Classify maps a run error to its failure kind.
func Classify(err error) report.FailureKind {
	var (
		mismatch *form.MismatchError
		badDate  *form.DateFormatError
	)
	switch {
	case err == nil:
		return report.FailureNone
	case errors.Is(err, ErrSetup):
		return report.FailureSetup
	case errors.As(err, &mismatch), errors.As(err, &badDate),
		errors.Is(err, form.ErrNoSubmittedData), errors.Is(err, form.ErrUnknownLevel):
		return report.FailureAssertion
	case errors.Is(err, browser.ErrElementNotFound), errors.Is(err, browser.ErrNotInteractable):
		return report.FailureInteraction
	case errors.Is(err, browser.ErrWaitTimeout), errors.Is(err, context.DeadlineExceeded):
		return report.FailureTimeout
	default:
		return report.FailureInteraction
	}
}
