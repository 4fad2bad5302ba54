package browser

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/go-rod/rod/lib/launcher"
)

// EnsureChrome downloads a Chromium build for the current platform and
// returns its path. revision 0 keeps rod's pinned default. When withDeps is
// set the OS packages Chromium needs are installed first.
func EnsureChrome(ctx context.Context, revision int, withDeps bool) (string, error) {
	if withDeps {
		if err := installChromeDependencies(ctx); err != nil {
			return "", err
		}
	}

	downloader := launcher.NewBrowser()
	downloader.Context = ctx
	if revision > 0 {
		downloader.Revision = revision
	}

	path, err := downloader.Get()
	if err != nil {
		return "", fmt.Errorf("failed to download chrome: %w", err)
	}
	return path, nil
}

// packageManager describes how to install Chromium's shared libraries.
type packageManager struct {
	name     string
	prepare  []string
	install  []string
	packages []string
}

// rpmChromePackages serves both dnf and yum, the latter for older RHEL.
var rpmChromePackages = []string{
	"alsa-lib", "atk", "cups-libs", "gtk3", "libX11", "libXcomposite", "libXdamage",
	"libXrandr", "libXfixes", "libX11-xcb", "libxcb", "libxkbcommon", "libxshmfence",
	"nss", "nspr", "pango", "mesa-libgbm", "libdrm",
}

// chromePackageManagers is tried in order, the first one on PATH is used.
var chromePackageManagers = []packageManager{
	{
		name:    "apt-get",
		prepare: []string{"update"},
		install: []string{"install", "-y", "--no-install-recommends"},
		packages: []string{
			"ca-certificates", "fonts-liberation", "libasound2", "libatk-bridge2.0-0",
			"libatk1.0-0", "libcups2", "libdbus-1-3", "libdrm2", "libgbm1", "libgtk-3-0",
			"libnspr4", "libnss3", "libx11-xcb1", "libxcomposite1", "libxdamage1",
			"libxfixes3", "libxrandr2", "libxshmfence1", "libxss1", "libxtst6",
			"libpango-1.0-0", "libpangocairo-1.0-0", "libxkbcommon0",
		},
	},
	{
		name:     "dnf",
		install:  []string{"install", "-y"},
		packages: rpmChromePackages,
	},
	{
		name:     "yum",
		install:  []string{"install", "-y"},
		packages: rpmChromePackages,
	},
	{
		name:    "apk",
		install: []string{"add", "--no-cache"},
		packages: []string{
			"ca-certificates", "freetype", "harfbuzz", "nss", "ttf-freefont", "alsa-lib",
			"atk", "at-spi2-atk", "cups-libs", "libxcomposite", "libxdamage", "libxrandr",
			"libxfixes", "libxkbcommon", "libx11", "libxrender", "libxext", "libxcb",
			"libdrm", "mesa-gbm", "gtk+3.0", "pango", "cairo", "gdk-pixbuf", "fontconfig",
			"libstdc++", "libgcc",
		},
	},
}

func installChromeDependencies(ctx context.Context) error {
	if runtime.GOOS != "linux" {
		return nil
	}

	for _, pm := range chromePackageManagers {
		path, _ := exec.LookPath(pm.name)
		if path == "" {
			continue
		}
		if len(pm.prepare) > 0 {
			if err := runCommand(ctx, path, pm.prepare...); err != nil {
				return err
			}
		}
		args := append(append([]string{}, pm.install...), pm.packages...)
		return runCommand(ctx, path, args...)
	}

	return fmt.Errorf("no supported package manager found for Chrome dependencies")
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v failed: %w\n%s", name, args, err, out.String())
	}
	return nil
}
