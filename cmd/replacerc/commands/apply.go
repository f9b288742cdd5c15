package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/replacerc/cmd/replacerc/opts"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the configured replacements to the file tree",
		Long: `Apply rewrites files under the tree root using the configured replacements.
It will:
1. Load and validate the config
2. Compile every replace block into a matcher/replacer pair
3. Walk the tree and rewrite matching files in place
4. Report a no-op for any replacement that changed nothing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "apply").Logger().WithContext(ctx)

			if err := runTransformations(ctx, o, cmd.OutOrStdout(), false); err != nil {
				return errors.Errorf("applying replacements: %w", err)
			}

			return nil
		},
	}

	return cmd
}
