package opts

import (
	"context"

	"github.com/walteh/replacerc/pkg/config"
	"github.com/walteh/replacerc/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	RootDir    string // overrides the root declared in the config
	Debug      bool
	Async      bool
	Workers    int
}

// LoadConfig loads and validates the configuration file
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	if o.RootDir != "" {
		cfg.Root = o.RootDir
	}
	return cfg, nil
}

// WalkOptions maps flags onto tree walk options
func (o *RootOpts) WalkOptions() walker.Options {
	return walker.Options{Async: o.Async, Workers: o.Workers}
}
