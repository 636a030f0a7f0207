package imageproc

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pixelgrove/ingest/internal/model"
)

// DefaultResponsiveWidths is the standard responsive size set.
var DefaultResponsiveWidths = []int{400, 800, 1200, 1600}

// ResponsiveVariant pairs a requested width bound with its output.
type ResponsiveVariant struct {
	Width   int
	Variant *model.ProcessedVariant
}

// ResponsiveSet produces one width-bounded variant per requested width, each
// transcoded independently with the width as both box bounds so aspect ratio
// is preserved and the larger dimension is capped. Widths are processed
// concurrently; results come back in input order. The batch is all-or-nothing:
// a single sub-transform failure fails the whole call.
func ResponsiveSet(ctx context.Context, data []byte, widths []int, opts TranscodeOptions) ([]ResponsiveVariant, error) {
	if len(widths) == 0 {
		widths = DefaultResponsiveWidths
	}

	results := make([]ResponsiveVariant, len(widths))
	g, ctx := errgroup.WithContext(ctx)

	for i, width := range widths {
		i, width := i, width
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if width <= 0 {
				return fmt.Errorf("responsive width %d must be positive", width)
			}
			sized := opts
			sized.MaxWidth = width
			sized.MaxHeight = width
			v, err := Transcode(data, sized)
			if err != nil {
				return fmt.Errorf("width %d: %w", width, err)
			}
			results[i] = ResponsiveVariant{Width: width, Variant: v}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
