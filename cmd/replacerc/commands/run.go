package commands

import (
	"context"
	"io"

	"github.com/walteh/replacerc/cmd/replacerc/opts"
	"github.com/walteh/replacerc/pkg/report"
	"github.com/walteh/replacerc/pkg/transform"
	"github.com/walteh/replacerc/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// runTransformations loads the config and applies its transformation
// sequence in order. When invert is set, every transformation is reversed
// and the sequence runs back to front.
func runTransformations(ctx context.Context, o *opts.RootOpts, console io.Writer, invert bool) error {
	cfg, err := o.LoadConfig(ctx)
	if err != nil {
		return err
	}

	transformations, err := transform.FromConfig(cfg)
	if err != nil {
		return errors.Errorf("building transformations: %w", err)
	}

	if invert {
		reversed := make([]transform.Transformation, 0, len(transformations))
		for i := len(transformations) - 1; i >= 0; i-- {
			inv, err := transformations[i].Reverse()
			if err != nil {
				return errors.Errorf("reversing %s: %w", transformations[i].Describe(), err)
			}
			reversed = append(reversed, inv)
		}
		transformations = reversed
	}

	reporter := report.New(console)
	for _, tr := range transformations {
		var filter walker.Filter
		if f, ok := tr.(interface{ Filter() walker.Filter }); ok {
			filter = f.Filter()
		}
		tree := walker.New(cfg.Root, filter)

		result, err := tr.Apply(ctx, tree, o.WalkOptions())
		if err != nil {
			return err
		}

		reporter.Header(tr.Describe())
		for _, ev := range result.Events {
			reporter.FileEvent(ev)
		}
		reporter.Summary(result)
		if result.Noop() {
			reporter.Noop(tr.Describe())
		}
	}

	return nil
}
