package imageproc

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"

	"github.com/pixelgrove/ingest/internal/model"
)

// ThumbSize is an exact output box for a thumbnail.
type ThumbSize struct {
	Width  int
	Height int
}

// Named thumbnail presets.
var (
	ThumbSmall  = ThumbSize{Width: 150, Height: 150}
	ThumbMedium = ThumbSize{Width: 400, Height: 400}
	ThumbLarge  = ThumbSize{Width: 800, Height: 800}
)

// ThumbPreset resolves a preset name to its size.
func ThumbPreset(name string) (ThumbSize, bool) {
	switch name {
	case "small":
		return ThumbSmall, true
	case "medium":
		return ThumbMedium, true
	case "large":
		return ThumbLarge, true
	default:
		return ThumbSize{}, false
	}
}

// Thumbnail produces a variant that exactly fills the requested box, cropping
// overflow from the center. Unlike Transcode, this path crops: the primary
// and responsive paths only downscale.
func Thumbnail(data []byte, size ThumbSize, opts TranscodeOptions) (*model.ProcessedVariant, error) {
	opts = opts.withDefaults()

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	img = imaging.Fill(img, size.Width, size.Height, imaging.Center, imaging.Lanczos)

	return encodeVariant(img, opts.Format, opts.Quality)
}
