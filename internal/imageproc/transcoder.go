package imageproc

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	_ "golang.org/x/image/webp"

	"github.com/pixelgrove/ingest/internal/model"
)

// webpMethod is the libwebp quality/speed trade-off, pinned to the slowest,
// best-compressing setting.
const webpMethod = 6

// DecodeError means the input buffer could not be parsed as an image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decoding image: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError means the requested format/quality combination could not be
// produced.
type EncodeError struct {
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding %s: %v", e.Format, e.Err)
}
func (e *EncodeError) Unwrap() error { return e.Err }

// TranscodeOptions configures a single Transcode call. Every recognized knob
// is a field here; zero values mean "use the default".
type TranscodeOptions struct {
	// Format is the target encoding: jpeg, webp or png. Default jpeg.
	Format string
	// Quality is format-specific: perceptual 1-100 for jpeg (default 85) and
	// webp (default 80), compression level 1-9 for png (default 9). Zero
	// always selects the default, so the png store-uncompressed level is not
	// reachable through options.
	Quality int
	// MaxWidth and MaxHeight bound the output box. Default 2000x2000.
	MaxWidth  int
	MaxHeight int
}

func (o TranscodeOptions) withDefaults() TranscodeOptions {
	if o.Format == "" {
		o.Format = FormatJPEG
	}
	if o.Quality == 0 {
		switch o.Format {
		case FormatWebP:
			o.Quality = 80
		case FormatPNG:
			o.Quality = 9
		default:
			o.Quality = 85
		}
	}
	if o.MaxWidth == 0 {
		o.MaxWidth = 2000
	}
	if o.MaxHeight == 0 {
		o.MaxHeight = 2000
	}
	return o
}

// Transcode decodes the buffer, resizes it to fit inside the configured box
// without enlargement, and re-encodes it at the target format and quality.
// The output is decoded once more so the returned dimensions are the
// encoder's, not the resizer's.
func Transcode(data []byte, opts TranscodeOptions) (*model.ProcessedVariant, error) {
	opts = opts.withDefaults()

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	img = fitInside(img, opts.MaxWidth, opts.MaxHeight)

	return encodeVariant(img, opts.Format, opts.Quality)
}

// fitInside resizes to fit within maxW x maxH, preserving aspect ratio.
// Only shrinks, never enlarges.
func fitInside(img image.Image, maxW, maxH int) image.Image {
	if img.Bounds().Dx() <= maxW && img.Bounds().Dy() <= maxH {
		// Already fits; do not enlarge.
		return img
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

// encodeVariant encodes img and builds the resulting variant, reading the
// authoritative output dimensions back from the encoded bytes.
func encodeVariant(img image.Image, format string, quality int) (*model.ProcessedVariant, error) {
	out, err := encode(img, format, quality)
	if err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		return nil, &EncodeError{Format: format, Err: fmt.Errorf("re-decoding output: %w", err)}
	}

	return &model.ProcessedVariant{
		Data:      out,
		Format:    format,
		Width:     cfg.Width,
		Height:    cfg.Height,
		SizeBytes: int64(len(out)),
	}, nil
}

func encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJPEG:
		if quality < 1 || quality > 100 {
			return nil, &EncodeError{Format: format, Err: fmt.Errorf("quality %d outside 1-100", quality)}
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, &EncodeError{Format: format, Err: err}
		}
	case FormatWebP:
		if quality < 1 || quality > 100 {
			return nil, &EncodeError{Format: format, Err: fmt.Errorf("quality %d outside 1-100", quality)}
		}
		encOpts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
		if err != nil {
			return nil, &EncodeError{Format: format, Err: err}
		}
		encOpts.Method = webpMethod
		if err := webp.Encode(&buf, img, encOpts); err != nil {
			return nil, &EncodeError{Format: format, Err: err}
		}
	case FormatPNG:
		if quality < 1 || quality > 9 {
			return nil, &EncodeError{Format: format, Err: fmt.Errorf("compression level %d outside 1-9", quality)}
		}
		enc := png.Encoder{CompressionLevel: pngLevel(quality)}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, &EncodeError{Format: format, Err: err}
		}
	default:
		return nil, &EncodeError{Format: format, Err: fmt.Errorf("unsupported output format")}
	}
	return buf.Bytes(), nil
}

// pngLevel maps the 1-9 compression scale onto the stdlib encoder levels.
func pngLevel(quality int) png.CompressionLevel {
	switch {
	case quality <= 4:
		return png.BestSpeed
	case quality <= 8:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
