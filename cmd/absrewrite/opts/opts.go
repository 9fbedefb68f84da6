package opts

import (
	"context"

	"github.com/walteh/absrewrite/pkg/config"
	"github.com/walteh/absrewrite/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
	Eq         string // overrides modes.eq when set
	Le         string // overrides modes.le when set
	UserLogger *log.UserLogger
}

// 📚 LoadConfig loads ConfigFile and applies the --eq and --le overrides.
// When required is false a missing file falls back to the defaults.
func (o *RootOpts) LoadConfig(ctx context.Context, required bool) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if required {
		cfg, err = config.LoadConfig(ctx, o.ConfigFile)
	} else {
		cfg, err = config.LoadOrDefault(ctx, o.ConfigFile)
	}
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if err := cfg.OverrideModes(o.Eq, o.Le); err != nil {
		return nil, err
	}
	return cfg, nil
}
