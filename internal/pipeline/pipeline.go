// Package pipeline orchestrates one-way ingestion: raw bytes are validated,
// transcoded into variants, uploaded to object storage, and recorded in the
// asset store. The pipeline owns the failure contract: nothing is persisted
// for failures before upload, and a persistence failure after upload triggers
// a compensating delete of every object written in that run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixelgrove/ingest/internal/database"
	"github.com/pixelgrove/ingest/internal/imageproc"
	"github.com/pixelgrove/ingest/internal/model"
	"github.com/pixelgrove/ingest/internal/storage"
)

// Config holds the transform settings one pipeline instance applies to every
// ingestion.
type Config struct {
	Limits    imageproc.Limits
	Primary   imageproc.TranscodeOptions
	Thumbnail imageproc.ThumbSize
}

// DefaultConfig returns the standard ingestion settings.
func DefaultConfig() Config {
	return Config{
		Limits:    imageproc.DefaultLimits(),
		Primary:   imageproc.TranscodeOptions{Format: imageproc.FormatJPEG},
		Thumbnail: imageproc.ThumbMedium,
	}
}

// IngestFields carries the caller-declared metadata for one ingestion.
// ResponsiveWidths, when non-empty, additionally generates and stores a
// responsive size set.
type IngestFields struct {
	Title            string
	Description      string
	Alt              string
	Category         model.Category
	Priority         int
	ResponsiveWidths []int
}

// Pipeline sequences validation, transformation, storage and persistence.
// All collaborators are injected at construction; instances are safe for
// concurrent use.
type Pipeline struct {
	store  storage.ObjectStore
	db     database.AssetStore
	cfg    Config
	logger *slog.Logger
}

// New builds a Pipeline around the given collaborators.
func New(store storage.ObjectStore, db database.AssetStore, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{store: store, db: db, cfg: cfg, logger: logger}
}

// Ingest runs the full pipeline for one upload and returns the persisted
// asset. Failure modes, in order: *ValidationError (nothing touched),
// *imageproc.DecodeError / *imageproc.EncodeError (transform),
// *storage.StorageError (upload, earlier uploads of the same run rolled
// back), *PersistenceError (record insert, all uploads rolled back
// best-effort).
func (p *Pipeline) Ingest(ctx context.Context, upload model.RawUpload, fields IngestFields) (*model.ImageAsset, error) {
	asset := &model.ImageAsset{
		Title:       fields.Title,
		Description: fields.Description,
		Alt:         fields.Alt,
		Category:    fields.Category,
		Priority:    fields.Priority,
		Active:      true,
	}
	asset.Normalize()

	// Run the image checks and the field-constraint checks together so the
	// caller sees every problem at once, before any transform work.
	result := imageproc.Validate(upload.Data, p.cfg.Limits)
	reasons := result.Reasons
	if err := asset.Validate(); err != nil {
		reasons = append(reasons, err.Error())
	}
	if len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}

	primary, err := imageproc.Transcode(upload.Data, p.cfg.Primary)
	if err != nil {
		return nil, err
	}

	key := deriveKey(asset.Category, primary.Format)

	thumb, err := imageproc.Thumbnail(upload.Data, p.cfg.Thumbnail, p.cfg.Primary)
	if err != nil {
		return nil, err
	}

	var responsive []imageproc.ResponsiveVariant
	if len(fields.ResponsiveWidths) > 0 {
		responsive, err = imageproc.ResponsiveSet(ctx, upload.Data, fields.ResponsiveWidths, p.cfg.Primary)
		if err != nil {
			return nil, err
		}
	}

	contentType := imageproc.MIMEFor(primary.Format)
	var uploaded []string

	primaryObj, err := p.store.Upload(ctx, key, primary.Data, contentType)
	if err != nil {
		return nil, err
	}
	uploaded = append(uploaded, key)

	thumbObj, err := p.store.Upload(ctx, thumbnailKey(key), thumb.Data, contentType)
	if err != nil {
		p.cleanup(ctx, uploaded)
		return nil, err
	}
	uploaded = append(uploaded, thumbObj.Key)

	var responsiveURLs []string
	for _, rv := range responsive {
		obj, err := p.store.Upload(ctx, responsiveKey(key, rv.Width), rv.Variant.Data, contentType)
		if err != nil {
			p.cleanup(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, obj.Key)
		responsiveURLs = append(responsiveURLs, obj.URL)
	}

	asset.StorageKey = primaryObj.Key
	asset.URL = primaryObj.URL
	asset.ThumbnailURL = thumbObj.URL
	asset.ResponsiveURLs = responsiveURLs
	asset.SizeBytes = primary.SizeBytes
	asset.MIMEType = contentType

	if err := p.db.Create(asset); err != nil {
		cleanupErr := p.cleanup(ctx, uploaded)
		return nil, &PersistenceError{Err: err, CleanupErr: cleanupErr}
	}

	p.logger.Info("asset ingested",
		"id", asset.ID,
		"key", asset.StorageKey,
		"bytes", asset.SizeBytes,
		"saved_pct", imageproc.Ratio(upload.Size, primary.SizeBytes),
	)
	return asset, nil
}

// UpdateMetadata applies a metadata-only patch to an active record. No
// transform or storage work is done.
func (p *Pipeline) UpdateMetadata(ctx context.Context, id string, patch model.AssetPatch) (*model.ImageAsset, error) {
	return p.db.Update(id, patch)
}

// DeleteAsset soft-deletes by default: the record is marked inactive and the
// stored objects are retained. With permanent set, the backing objects are
// deleted best-effort (failures logged, not surfaced) and the record is then
// removed unconditionally.
func (p *Pipeline) DeleteAsset(ctx context.Context, id string, permanent bool) error {
	if !permanent {
		inactive := false
		_, err := p.db.Update(id, model.AssetPatch{Active: &inactive})
		return err
	}

	a, err := p.db.FindByID(id)
	if err != nil {
		return err
	}

	keys := []string{a.StorageKey, thumbnailKey(a.StorageKey)}
	for _, u := range a.ResponsiveURLs {
		keys = append(keys, p.keyFromURL(u))
	}
	p.cleanup(ctx, keys)

	return p.db.Delete(id)
}

// cleanup deletes the given keys best-effort, logging each failure. The
// joined error is returned so callers can attach it as cause metadata; it is
// never surfaced in place of the original failure.
func (p *Pipeline) cleanup(ctx context.Context, keys []string) error {
	var errs []error
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := p.store.Delete(ctx, key); err != nil {
			p.logger.Error("compensating delete failed", "key", key, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// keyFromURL strips the store's public base from a URL, recovering the key.
func (p *Pipeline) keyFromURL(url string) string {
	return strings.TrimPrefix(url, p.store.PublicURL(""))
}

// deriveKey builds the storage key {category}/{unix-ms}-{suffix}.{ext}.
// Uniqueness is probabilistic (timestamp plus random suffix), which is
// acceptable at this system's scale; no coordination happens between
// concurrent ingestions.
func deriveKey(category model.Category, format string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s/%d-%s.%s", category, time.Now().UnixMilli(), suffix, imageproc.ExtensionFor(format))
}

// thumbnailKey places the thumbnail next to the primary under a parallel
// thumbnails/ prefix: general/123-abc.jpg -> general/thumbnails/123-abc.jpg.
func thumbnailKey(primaryKey string) string {
	dir, base := splitKey(primaryKey)
	return dir + "thumbnails/" + base
}

// responsiveKey names one responsive variant:
// general/123-abc.jpg -> general/responsive/123-abc-800w.jpg.
func responsiveKey(primaryKey string, width int) string {
	dir, base := splitKey(primaryKey)
	ext := ""
	if i := strings.LastIndex(base, "."); i >= 0 {
		base, ext = base[:i], base[i:]
	}
	return fmt.Sprintf("%sresponsive/%s-%dw%s", dir, base, width, ext)
}

func splitKey(key string) (dir, base string) {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[:i+1], key[i+1:]
	}
	return "", key
}
