package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrElementNotFound is returned when a lookup exhausts the implicit wait.
	ErrElementNotFound = errors.New("element not found")
	// ErrWaitTimeout is returned when an explicit visibility wait expires.
	ErrWaitTimeout = errors.New("wait timed out")
	// ErrNotInteractable is returned when an element exists but does not
	// accept the action within the implicit wait, e.g. it stays disabled.
	ErrNotInteractable = errors.New("element not interactable")
)

// Strategy is how a Locator addresses an element.
type Strategy int

const (
	StrategyID Strategy = iota
	StrategyXPath
)

// Locator addresses a single element on the current page.
type Locator struct {
	Strategy Strategy
	Value    string
}

// ByID locates an element by its id attribute.
func ByID(id string) Locator {
	return Locator{Strategy: StrategyID, Value: id}
}

// ByXPath locates an element by an XPath expression.
func ByXPath(expr string) Locator {
	return Locator{Strategy: StrategyXPath, Value: expr}
}

func (l Locator) String() string {
	if l.Strategy == StrategyXPath {
		return "xpath " + l.Value
	}
	return "id " + l.Value
}

// css returns the CSS selector for id locators.
func (l Locator) css() string {
	return fmt.Sprintf("[id=%q]", l.Value)
}

// Session is a live browser under automated control. A Session is owned by
// one caller and is not safe for concurrent use.
type Session interface {
	Family() Family
	// Open navigates the session's page and waits for the load event.
	Open(ctx context.Context, url string) error
	// WaitVisible blocks until the element is visible or timeout elapses.
	WaitVisible(ctx context.Context, loc Locator, timeout time.Duration) error
	// Type sends text to the element as key input.
	Type(ctx context.Context, loc Locator, text string) error
	// SelectByText chooses the dropdown option whose visible label equals label.
	SelectByText(ctx context.Context, loc Locator, label string) error
	Click(ctx context.Context, loc Locator) error
	// Text returns the rendered text of the element.
	Text(ctx context.Context, loc Locator) (string, error)
	// Maximize enlarges the browser window as far as the engine allows.
	Maximize(ctx context.Context) error
	// Quit closes the browser and releases its process. Safe to call twice.
	Quit() error
}

func notFound(loc Locator, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrElementNotFound, loc, err)
}

func notInteractable(loc Locator, timeout time.Duration, err error) error {
	return fmt.Errorf("%w: %s after %s: %w", ErrNotInteractable, loc, timeout, err)
}

func waitTimeout(loc Locator, timeout time.Duration, err error) error {
	return fmt.Errorf("%w: %s not visible after %s: %w", ErrWaitTimeout, loc, timeout, err)
}
