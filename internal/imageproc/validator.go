package imageproc

import (
	"bytes"
	"fmt"
	"image"

	"github.com/pixelgrove/ingest/internal/model"
)

// Limits configures the Validate checks.
type Limits struct {
	MaxBytes       int64
	MaxWidth       int
	MaxHeight      int
	AllowedFormats []string
}

// DefaultLimits returns the standard upload limits: 10 MiB, 5000x5000,
// jpeg/png/webp/gif.
func DefaultLimits() Limits {
	return Limits{
		MaxBytes:       10 << 20,
		MaxWidth:       5000,
		MaxHeight:      5000,
		AllowedFormats: []string{FormatJPEG, FormatPNG, FormatWebP, FormatGIF},
	}
}

func (l Limits) formatAllowed(format string) bool {
	for _, f := range l.AllowedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Validate runs every check against the raw upload and returns the full list
// of violations. Checks do not short-circuit each other; only the
// dimension/format checks are skipped when the buffer fails to decode, since
// they need decode output. Pure function of the input and limits.
func Validate(data []byte, limits Limits) model.ValidationResult {
	var result model.ValidationResult

	if int64(len(data)) > limits.MaxBytes {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("file size %d bytes exceeds maximum of %d bytes", len(data), limits.MaxBytes))
	}

	// Sniff the magic bytes first so a buffer that is not any known image
	// never reaches the decoders.
	if DetectFormat(data) == "" {
		result.Reasons = append(result.Reasons, "invalid or corrupted image data")
		return result
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		result.Reasons = append(result.Reasons, "invalid or corrupted image data")
		return result
	}

	colorSpace, hasAlpha := colorSpaceOf(cfg.ColorModel)
	result.Meta = &model.ImageMetadata{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Format:     format,
		ColorSpace: colorSpace,
		HasAlpha:   hasAlpha,
		SizeBytes:  int64(len(data)),
	}

	if cfg.Width > limits.MaxWidth {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("width %dpx exceeds maximum of %dpx", cfg.Width, limits.MaxWidth))
	}
	if cfg.Height > limits.MaxHeight {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("height %dpx exceeds maximum of %dpx", cfg.Height, limits.MaxHeight))
	}
	if !limits.formatAllowed(format) {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("format %q is not allowed", format))
	}

	return result
}
