package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChromePackageManagersOrder(t *testing.T) {
	var names []string
	for _, pm := range chromePackageManagers {
		names = append(names, pm.name)
	}
	assert.Equal(t, []string{"apt-get", "dnf", "yum", "apk"}, names)
}

func TestChromePackageManagersPackages(t *testing.T) {
	byName := make(map[string]packageManager)
	for _, pm := range chromePackageManagers {
		require.NotEmpty(t, pm.install, pm.name)
		require.NotEmpty(t, pm.packages, pm.name)
		byName[pm.name] = pm
	}

	assert.Equal(t, byName["dnf"].packages, byName["yum"].packages)
	assert.Contains(t, byName["apk"].packages, "libstdc++")
	assert.Contains(t, byName["apk"].packages, "libgcc")
	assert.Equal(t, []string{"update"}, byName["apt-get"].prepare)
}
