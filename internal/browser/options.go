package browser

import "time"

// DefaultImplicitWait bounds every element lookup.
const DefaultImplicitWait = 5 * time.Second

// Options is a browser-specific option bundle. Only ChromeOptions and
// FirefoxOptions implement it.
type Options interface {
	family() Family
}

// ChromeOptions configures a Chrome session launched through rod.
type ChromeOptions struct {
	Headless     bool
	Bin          string            // Path to a Chrome binary, empty lets rod find or download one
	Revision     int               // Chromium revision to download (0 uses the rod default)
	InstallDeps  bool              // Install OS packages Chromium needs before launching
	Flags        map[string]string // Extra command line switches, empty value for bare switches
	ImplicitWait time.Duration
}

func (ChromeOptions) family() Family { return FamilyChrome }

// DefaultChromeOptions returns the options used when none are supplied.
func DefaultChromeOptions() ChromeOptions {
	return ChromeOptions{
		Headless:     true,
		ImplicitWait: DefaultImplicitWait,
	}
}

// FirefoxOptions configures a Firefox session launched through playwright.
type FirefoxOptions struct {
	Headless     bool
	Install      bool // Install the playwright driver and Firefox build first
	Width        int
	Height       int
	Locale       string
	ImplicitWait time.Duration
}

func (FirefoxOptions) family() Family { return FamilyFirefox }

// DefaultFirefoxOptions returns the options used when none are supplied.
func DefaultFirefoxOptions() FirefoxOptions {
	return FirefoxOptions{
		Headless:     true,
		Width:        1920,
		Height:       1080,
		ImplicitWait: DefaultImplicitWait,
	}
}

// chromeOptionsFor applies opts only when it is a Chrome bundle.
func chromeOptionsFor(opts Options) (ChromeOptions, bool) {
	switch o := opts.(type) {
	case ChromeOptions:
		return o.withDefaults(), true
	case *ChromeOptions:
		if o != nil {
			return o.withDefaults(), true
		}
	}
	return DefaultChromeOptions(), false
}

// firefoxOptionsFor applies opts only when it is a Firefox bundle.
func firefoxOptionsFor(opts Options) (FirefoxOptions, bool) {
	switch o := opts.(type) {
	case FirefoxOptions:
		return o.withDefaults(), true
	case *FirefoxOptions:
		if o != nil {
			return o.withDefaults(), true
		}
	}
	return DefaultFirefoxOptions(), false
}

func (o ChromeOptions) withDefaults() ChromeOptions {
	if o.ImplicitWait <= 0 {
		o.ImplicitWait = DefaultImplicitWait
	}
	return o
}

func (o FirefoxOptions) withDefaults() FirefoxOptions {
	d := DefaultFirefoxOptions()
	if o.ImplicitWait <= 0 {
		o.ImplicitWait = d.ImplicitWait
	}
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = d.Width, d.Height
	}
	return o
}
