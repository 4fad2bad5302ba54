package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFamilyIgnoresCase(t *testing.T) {
	for _, name := range []string{"CHROME", "chrome", "Chrome", "FireFox", "firefox"} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFamily(name)
			require.NoError(t, err)
		})
	}

	f, err := ParseFamily("ChRoMe")
	require.NoError(t, err)
	assert.Equal(t, FamilyChrome, f)
}

func TestParseFamilyUnsupported(t *testing.T) {
	for _, name := range []string{"safari", "SAFARI", "", "edge", " chrome"} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFamily(name)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedBrowser))
		})
	}
}

func TestParseFamilyMessageListsSupportedSet(t *testing.T) {
	_, err := ParseFamily("safari")
	require.Error(t, err)
	assert.Equal(t, `unsupported browser "safari": supported browsers are [chrome firefox]`, err.Error())
	assert.Len(t, Families(), 2)
}

func TestLocatorSelectors(t *testing.T) {
	assert.Equal(t, `[id="username"]`, ByID("username").css())
	assert.Equal(t, "id username", ByID("username").String())
	assert.Equal(t, "xpath //input[@type='submit']", ByXPath("//input[@type='submit']").String())
}
