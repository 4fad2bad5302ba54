package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// firefoxSession is a Firefox instance driven through playwright. Playwright
// calls take no context, so ctx is only checked before each action and the
// page default timeout plays the role of the implicit wait.
type firefoxSession struct {
	logger   *zap.Logger
	mu       sync.Mutex
	pw       *playwright.Playwright
	browser  playwright.Browser
	page     playwright.Page
	width    int
	height   int
	implicit time.Duration
	closed   bool
}

func launchFirefox(ctx context.Context, opts FirefoxOptions, logger *zap.Logger) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"firefox"}}); err != nil {
			return nil, fmt.Errorf("could not install firefox: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Firefox.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch firefox: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: opts.Width, Height: opts.Height},
	}
	if opts.Locale != "" {
		contextOpts.Locale = playwright.String(opts.Locale)
	}
	bctx, err := browser.NewContext(contextOpts)
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("could not create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	page.SetDefaultTimeout(float64(opts.ImplicitWait.Milliseconds()))

	logger.Debug("Firefox started", zap.String("version", browser.Version()), zap.Bool("headless", opts.Headless))
	return &firefoxSession{
		logger:   logger,
		pw:       pw,
		browser:  browser,
		page:     page,
		width:    opts.Width,
		height:   opts.Height,
		implicit: opts.ImplicitWait,
	}, nil
}

func (s *firefoxSession) Family() Family { return FamilyFirefox }

func (s *firefoxSession) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateLoad}); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *firefoxSession) WaitVisible(ctx context.Context, loc Locator, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.locator(loc).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return waitTimeout(loc, timeout, err)
		}
		return fmt.Errorf("failed to wait for %s: %w", loc, err)
	}
	return nil
}

func (s *firefoxSession) Type(ctx context.Context, loc Locator, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.locator(loc).PressSequentially(text); err != nil {
		return s.actionError(loc, "type into", err)
	}
	return nil
}

func (s *firefoxSession) SelectByText(ctx context.Context, loc Locator, label string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.locator(loc).SelectOption(playwright.SelectOptionValues{
		Labels: playwright.StringSlice(label),
	})
	if err != nil {
		return s.actionError(loc, fmt.Sprintf("select %q in", label), err)
	}
	return nil
}

func (s *firefoxSession) Click(ctx context.Context, loc Locator) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.locator(loc).Click(); err != nil {
		return s.actionError(loc, "click", err)
	}
	return nil
}

func (s *firefoxSession) Text(ctx context.Context, loc Locator) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := s.locator(loc).InnerText()
	if err != nil {
		return "", s.actionError(loc, "read text of", err)
	}
	return text, nil
}

// Maximize resizes the viewport, playwright has no window state for Firefox.
func (s *firefoxSession) Maximize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.page.SetViewportSize(s.width, s.height)
}

func (s *firefoxSession) Quit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.logger.Warn("Failed to close firefox", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, err)
		}
	}

	s.logger.Debug("Firefox stopped")
	return errors.Join(errs...)
}

func (s *firefoxSession) locator(loc Locator) playwright.Locator {
	if loc.Strategy == StrategyXPath {
		return s.page.Locator("xpath=" + loc.Value)
	}
	return s.page.Locator(loc.css())
}

// actionError maps a playwright timeout to ErrElementNotFound when nothing
// matches loc, and to ErrNotInteractable when the element exists but never
// became actionable.
func (s *firefoxSession) actionError(loc Locator, action string, err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		if n, cerr := s.locator(loc).Count(); cerr == nil && n > 0 {
			return notInteractable(loc, s.implicit, err)
		}
		return notFound(loc, err)
	}
	return fmt.Errorf("failed to %s %s: %w", action, loc, err)
}
