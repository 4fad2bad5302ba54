package browser

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provisioner creates browser sessions by name.
type Provisioner struct {
	logger        *zap.Logger
	launchChrome  func(context.Context, ChromeOptions, *zap.Logger) (Session, error)
	launchFirefox func(context.Context, FirefoxOptions, *zap.Logger) (Session, error)
}

// NewProvisioner creates a provisioner that launches real browsers.
func NewProvisioner(logger *zap.Logger) *Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provisioner{
		logger:        logger,
		launchChrome:  launchChrome,
		launchFirefox: launchFirefox,
	}
}

// Create resolves name to a browser family and launches a new session.
// opts is applied only when it belongs to the resolved family, otherwise the
// family defaults are used. Every call starts a new browser process.
func (p *Provisioner) Create(ctx context.Context, name string, opts Options) (Session, error) {
	log := p.logger.With(zap.String("browser", name))
	log.Info("Creating browser session")

	family, err := ParseFamily(name)
	if err != nil {
		log.Error("Unsupported browser", zap.Error(err))
		return nil, err
	}

	var session Session
	switch family {
	case FamilyChrome:
		o, matched := chromeOptionsFor(opts)
		if !matched && opts != nil {
			log.Debug("Option bundle does not match browser, using defaults", zap.String("bundle", fmt.Sprintf("%T", opts)))
		}
		session, err = p.launchChrome(ctx, o, p.logger)
	case FamilyFirefox:
		o, matched := firefoxOptionsFor(opts)
		if !matched && opts != nil {
			log.Debug("Option bundle does not match browser, using defaults", zap.String("bundle", fmt.Sprintf("%T", opts)))
		}
		session, err = p.launchFirefox(ctx, o, p.logger)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", family, err)
	}

	log.Info("Browser session created", zap.Stringer("family", family))
	return session, nil
}
