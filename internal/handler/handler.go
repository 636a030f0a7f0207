package handler

import (
	"errors"
	"net/http"

	"github.com/pixelgrove/ingest/internal/api"
	"github.com/pixelgrove/ingest/internal/config"
	"github.com/pixelgrove/ingest/internal/database"
	"github.com/pixelgrove/ingest/internal/imageproc"
	"github.com/pixelgrove/ingest/internal/pipeline"
	"github.com/pixelgrove/ingest/internal/storage"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	Pipeline *pipeline.Pipeline
	DB       database.AssetStore
	Config   *config.Config
}

// writePipelineError maps a pipeline error onto the HTTP surface.
func writePipelineError(w http.ResponseWriter, err error) {
	var (
		validationErr  *pipeline.ValidationError
		decodeErr      *imageproc.DecodeError
		encodeErr      *imageproc.EncodeError
		storageErr     *storage.StorageError
		persistenceErr *pipeline.PersistenceError
	)
	switch {
	case errors.As(err, &validationErr):
		api.BadRequest(w, "upload rejected", validationErr.Reasons...)
	case errors.As(err, &decodeErr):
		api.UnprocessableEntity(w, "could not decode image")
	case errors.As(err, &encodeErr):
		api.Internal(w, "could not encode variant")
	case errors.As(err, &storageErr):
		api.Internal(w, "object storage unavailable")
	case errors.As(err, &persistenceErr):
		api.Internal(w, "could not persist asset record")
	case errors.Is(err, database.ErrNotFound):
		api.NotFound(w, "asset not found")
	default:
		api.Internal(w, "ingestion failed")
	}
}
