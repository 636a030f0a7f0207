package imageproc

import "image/color"

// Supported format names as reported by the image decoders.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatWebP = "webp"
	FormatGIF  = "gif"
)

// DetectFormat inspects the raw bytes and returns the image format:
// "jpeg", "png", "gif", "webp", or "" if unknown.
func DetectFormat(data []byte) string {
	// JPEG: starts with FF D8 FF
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return FormatJPEG
	}
	// PNG: starts with 89 50 4E 47 0D 0A 1A 0A
	if len(data) >= 8 && data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 &&
		data[4] == 0x0D && data[5] == 0x0A && data[6] == 0x1A && data[7] == 0x0A {
		return FormatPNG
	}
	// GIF: starts with GIF87a or GIF89a
	if len(data) >= 6 && data[0] == 'G' && data[1] == 'I' && data[2] == 'F' {
		return FormatGIF
	}
	// WebP: starts with RIFF....WEBP
	if len(data) >= 12 && data[0] == 'R' && data[1] == 'I' && data[2] == 'F' && data[3] == 'F' &&
		data[8] == 'W' && data[9] == 'E' && data[10] == 'B' && data[11] == 'P' {
		return FormatWebP
	}
	return ""
}

// ExtensionFor returns the file extension for a format name, without the dot.
func ExtensionFor(format string) string {
	switch format {
	case FormatJPEG:
		return "jpg"
	case FormatPNG, FormatWebP, FormatGIF:
		return format
	default:
		return "bin"
	}
}

// MIMEFor returns the content type for a format name.
func MIMEFor(format string) string {
	switch format {
	case FormatJPEG, FormatPNG, FormatWebP, FormatGIF:
		return "image/" + format
	default:
		return "application/octet-stream"
	}
}

// Ratio returns the percentage of bytes saved by processing: 60.0 means the
// output is 60% smaller than the input. Returns 0 when nothing was saved or
// the original size is unknown.
func Ratio(originalBytes, processedBytes int64) float64 {
	if originalBytes <= 0 || processedBytes >= originalBytes {
		return 0
	}
	return float64((originalBytes-processedBytes)*100) / float64(originalBytes)
}

// colorSpaceOf maps a decoded color model onto a coarse color-space name and
// whether the model carries an alpha channel.
func colorSpaceOf(m color.Model) (string, bool) {
	switch m {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model:
		return "rgba", true
	case color.GrayModel, color.Gray16Model:
		return "gray", false
	case color.YCbCrModel:
		return "ycbcr", false
	case color.CMYKModel:
		return "cmyk", false
	}
	if _, ok := m.(color.Palette); ok {
		return "indexed", true
	}
	return "rgb", false
}
