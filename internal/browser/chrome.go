package browser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// chromeSession is a Chrome instance launched and driven by rod.
type chromeSession struct {
	logger   *zap.Logger
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	implicit time.Duration
	closed   bool
}

func launchChrome(ctx context.Context, opts ChromeOptions, logger *zap.Logger) (Session, error) {
	bin := opts.Bin
	if bin == "" && (opts.Revision > 0 || opts.InstallDeps) {
		path, err := EnsureChrome(ctx, opts.Revision, opts.InstallDeps)
		if err != nil {
			return nil, err
		}
		bin = path
	}

	l := launcher.New().Headless(opts.Headless)
	if bin != "" {
		l.Bin(bin)
	}
	for name, value := range opts.Flags {
		if value == "" {
			l.Set(flags.Flag(name))
		} else {
			l.Set(flags.Flag(name), value)
		}
	}

	wsURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(wsURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to chrome: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to create new page: %w", err)
	}

	logger.Debug("Chrome started", zap.String("endpoint", wsURL), zap.Bool("headless", opts.Headless))
	return &chromeSession{
		logger:   logger,
		launcher: l,
		browser:  browser,
		page:     page,
		implicit: opts.ImplicitWait,
	}, nil
}

func (s *chromeSession) Family() Family { return FamilyChrome }

func (s *chromeSession) Open(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}
	return nil
}

func (s *chromeSession) WaitVisible(ctx context.Context, loc Locator, timeout time.Duration) error {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	el, err := lookup(s.page.Context(ctx), loc)
	if err == nil {
		err = el.WaitVisible()
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return waitTimeout(loc, timeout, err)
		}
		return fmt.Errorf("failed to wait for %s: %w", loc, err)
	}
	return nil
}

func (s *chromeSession) Type(ctx context.Context, loc Locator, text string) error {
	return s.act(ctx, loc, func(el *rod.Element) error {
		// Date inputs ignore inserted text, they only react to key presses.
		if kind, _ := el.Attribute("type"); kind != nil && *kind == "date" {
			keys := make([]input.Key, 0, len(text))
			for _, r := range text {
				keys = append(keys, input.Key(r))
			}
			if err := el.Type(keys...); err != nil {
				return fmt.Errorf("failed to type into %s: %w", loc, err)
			}
			return nil
		}

		if err := el.Input(text); err != nil {
			return fmt.Errorf("failed to input value for %s: %w", loc, err)
		}
		return nil
	})
}

func (s *chromeSession) SelectByText(ctx context.Context, loc Locator, label string) error {
	pattern := "^" + regexp.QuoteMeta(label) + "$"
	return s.act(ctx, loc, func(el *rod.Element) error {
		if err := el.Select([]string{pattern}, true, rod.SelectorTypeRegex); err != nil {
			return fmt.Errorf("failed to select %q in %s: %w", label, loc, err)
		}
		return nil
	})
}

func (s *chromeSession) Click(ctx context.Context, loc Locator) error {
	return s.act(ctx, loc, func(el *rod.Element) error {
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return fmt.Errorf("failed to click element: %w", err)
		}
		return nil
	})
}

func (s *chromeSession) Text(ctx context.Context, loc Locator) (string, error) {
	var text string
	err := s.act(ctx, loc, func(el *rod.Element) error {
		var err error
		if text, err = el.Text(); err != nil {
			return fmt.Errorf("failed to read text of %s: %w", loc, err)
		}
		return nil
	})
	return text, err
}

func (s *chromeSession) Maximize(ctx context.Context) error {
	return s.page.Context(ctx).SetWindow(&proto.BrowserBounds{
		WindowState: proto.BrowserWindowStateMaximized,
	})
}

func (s *chromeSession) Quit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.browser != nil {
		if err = s.browser.Close(); err != nil {
			s.logger.Warn("Failed to close chrome", zap.Error(err))
		}
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
	}

	s.logger.Debug("Chrome stopped")
	return err
}

// find looks an element up within the implicit wait.
func (s *chromeSession) find(ctx context.Context, loc Locator) (*rod.Element, error) {
	lookupCtx, cancel := withTimeout(ctx, s.implicit)
	defer cancel()

	el, err := lookup(s.page.Context(lookupCtx), loc)
	if err != nil {
		return nil, notFound(loc, err)
	}
	return el, nil
}

// act finds loc and runs fn on it. The action gets its own implicit-wait
// bound, since rod retries enabled/interactable checks until the element
// context ends.
func (s *chromeSession) act(ctx context.Context, loc Locator, fn func(*rod.Element) error) error {
	el, err := s.find(ctx, loc)
	if err != nil {
		return err
	}

	actionCtx, cancel := withTimeout(ctx, s.implicit)
	defer cancel()

	err = fn(el.Context(actionCtx))
	if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return notInteractable(loc, s.implicit, err)
	}
	return err
}

func lookup(page *rod.Page, loc Locator) (*rod.Element, error) {
	if loc.Strategy == StrategyXPath {
		return page.ElementX(loc.Value)
	}
	return page.Element(loc.css())
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
