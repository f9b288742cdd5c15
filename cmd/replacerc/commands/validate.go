package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/replacerc/cmd/replacerc/opts"
	"github.com/walteh/replacerc/pkg/template"
	"github.com/walteh/replacerc/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// NewValidateCmd creates a new validate command
func NewValidateCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Compile-check the configured replacements without touching files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "validate").Logger().WithContext(ctx)
			out := cmd.OutOrStdout()

			cfg, err := o.LoadConfig(ctx)
			if err != nil {
				return err
			}

			transformations, err := transform.FromConfig(cfg)
			if err != nil {
				return errors.Errorf("building transformations: %w", err)
			}

			for _, tr := range transformations {
				if c, ok := tr.(interface {
					Replacer() (*template.Replacer, error)
				}); ok {
					if _, err := c.Replacer(); err != nil {
						return errors.Errorf("compiling %s: %w", tr.Describe(), err)
					}
				}

				symbol := color.New(color.FgGreen).Sprint("✓")
				reversible := "reversible"
				if _, err := tr.Reverse(); err != nil {
					symbol = color.New(color.FgYellow).Sprint("!")
					reversible = fmt.Sprintf("not reversible: %v", err)
				}
				fmt.Fprintf(out, "%s %s (%s)\n", symbol, tr.Describe(), reversible)
			}

			return nil
		},
	}

	return cmd
}
