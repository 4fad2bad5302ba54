package browser

import (
	"errors"
	"fmt"
	"strings"
)

// Family identifies a supported browser engine.
type Family string

const (
	FamilyChrome  Family = "chrome"
	FamilyFirefox Family = "firefox"
)

// ErrUnsupportedBrowser is returned when a browser name matches no supported family.
var ErrUnsupportedBrowser = errors.New("unsupported browser")

// Families returns the supported browser families in a stable order.
func Families() []Family {
	return []Family{FamilyChrome, FamilyFirefox}
}

// ParseFamily resolves a browser name case-insensitively.
func ParseFamily(name string) (Family, error) {
	for _, f := range Families() {
		if strings.EqualFold(string(f), name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q: supported browsers are %v", ErrUnsupportedBrowser, name, Families())
}

func (f Family) String() string {
	return string(f)
}
