package model

import (
	"fmt"
	"strings"
	"time"
)

// Category classifies an asset within the site. The set is fixed; anything
// outside it is rejected on create/update.
type Category string

const (
	CategoryGeneral Category = "general"
	CategoryBlog    Category = "blog"
	CategoryEvents  Category = "events"
	CategoryGallery Category = "gallery"
	CategoryBanner  Category = "banner"
)

// Categories lists every valid category value.
var Categories = []Category{
	CategoryGeneral, CategoryBlog, CategoryEvents, CategoryGallery, CategoryBanner,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Field limits enforced on ImageAsset records. The asset store applies the
// same limits, so the pipeline can rely on rejection happening before any
// transform work.
const (
	MaxTitleLen       = 200
	MaxAltLen         = 300
	MaxDescriptionLen = 1000
	MinPriority       = -100
	MaxPriority       = 100
)

// RawUpload is the byte buffer handed to the pipeline for one ingestion.
// It lives only for the duration of that call.
type RawUpload struct {
	Data     []byte
	Filename string
	MIMEType string
	Size     int64
}

// ImageMetadata describes a decoded image. It is derived once and never
// mutated; transforms recompute it from their own output.
type ImageMetadata struct {
	Width      int
	Height     int
	Format     string
	ColorSpace string
	HasAlpha   bool
	SizeBytes  int64
}

// ProcessedVariant is one encoded derivative of an input image. Variants are
// independent value objects; none references another.
type ProcessedVariant struct {
	Data      []byte
	Format    string
	Width     int
	Height    int
	SizeBytes int64
}

// ValidationResult carries the outcome of validating a raw upload. Reasons is
// exhaustive: every failed check appends one entry, so callers can report all
// problems at once. Meta is set only when the buffer decoded successfully.
type ValidationResult struct {
	Reasons []string
	Meta    *ImageMetadata
}

// Valid reports whether the upload passed every check.
func (r ValidationResult) Valid() bool {
	return len(r.Reasons) == 0
}

// ImageAsset is the persisted metadata record for one ingested image.
// StorageKey and URL are always set together once ingestion reports success.
type ImageAsset struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Alt            string    `json:"alt"`
	Category       Category  `json:"category"`
	StorageKey     string    `json:"-"`
	URL            string    `json:"url"`
	ThumbnailURL   string    `json:"thumbnailUrl"`
	ResponsiveURLs []string  `json:"responsiveUrls,omitempty"`
	SizeBytes      int64     `json:"sizeBytes"`
	MIMEType       string    `json:"mimeType"`
	Priority       int       `json:"priority"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Normalize fills defaults and clamps bounded fields in place.
func (a *ImageAsset) Normalize() {
	a.Title = strings.TrimSpace(a.Title)
	a.Alt = strings.TrimSpace(a.Alt)
	if a.Category == "" {
		a.Category = CategoryGeneral
	}
	if a.Priority < MinPriority {
		a.Priority = MinPriority
	}
	if a.Priority > MaxPriority {
		a.Priority = MaxPriority
	}
}

// Validate checks the field constraints shared with the asset store.
func (a *ImageAsset) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(a.Title) > MaxTitleLen {
		return fmt.Errorf("title exceeds %d characters", MaxTitleLen)
	}
	if a.Alt == "" {
		return fmt.Errorf("alt text is required")
	}
	if len(a.Alt) > MaxAltLen {
		return fmt.Errorf("alt text exceeds %d characters", MaxAltLen)
	}
	if len(a.Description) > MaxDescriptionLen {
		return fmt.Errorf("description exceeds %d characters", MaxDescriptionLen)
	}
	if !a.Category.Valid() {
		return fmt.Errorf("unknown category %q", a.Category)
	}
	if a.Priority < MinPriority || a.Priority > MaxPriority {
		return fmt.Errorf("priority %d outside [%d, %d]", a.Priority, MinPriority, MaxPriority)
	}
	return nil
}

// AssetPatch is a partial metadata update. Nil fields are left untouched.
type AssetPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Alt         *string   `json:"alt"`
	Category    *Category `json:"category"`
	Priority    *int      `json:"priority"`
	Active      *bool     `json:"active"`
}

// Apply copies the non-nil patch fields onto a.
func (p AssetPatch) Apply(a *ImageAsset) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Alt != nil {
		a.Alt = *p.Alt
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Priority != nil {
		a.Priority = *p.Priority
	}
	if p.Active != nil {
		a.Active = *p.Active
	}
}
