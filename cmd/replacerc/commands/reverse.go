package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/replacerc/cmd/replacerc/opts"
	"gitlab.com/tozd/go/errors"
)

// NewReverseCmd creates a new reverse command
func NewReverseCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reverse",
		Short: "Apply the inverse of the configured replacements",
		Long: `Reverse swaps the before and after template of every replace block and
applies the inverted sequence back to front. A block whose after template
drops or adds interpolations cannot be inverted and fails the whole run
before any file is touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "reverse").Logger().WithContext(ctx)

			if err := runTransformations(ctx, o, cmd.OutOrStdout(), true); err != nil {
				return errors.Errorf("reversing replacements: %w", err)
			}

			return nil
		},
	}

	return cmd
}
