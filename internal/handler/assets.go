package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pixelgrove/ingest/internal/api"
	"github.com/pixelgrove/ingest/internal/database"
	"github.com/pixelgrove/ingest/internal/imageproc"
	"github.com/pixelgrove/ingest/internal/model"
	"github.com/pixelgrove/ingest/internal/pipeline"
)

// UploadAsset handles POST /api/images -- multipart ingest.
func (h *Handler) UploadAsset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Config.MaxUploadBytes); err != nil {
		api.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.BadRequest(w, "missing required field: file")
		return
	}
	defer file.Close()

	// Read one byte past the limit so oversized bodies are rejected with 413
	// instead of being silently truncated.
	data, err := io.ReadAll(io.LimitReader(file, h.Config.MaxUploadBytes+1))
	if err != nil {
		api.Internal(w, "failed to read upload")
		return
	}
	if int64(len(data)) > h.Config.MaxUploadBytes {
		api.TooLarge(w, "file exceeds upload limit")
		return
	}

	widths, err := parseWidths(r.FormValue("responsive"))
	if err != nil {
		api.BadRequest(w, "invalid responsive widths: "+err.Error())
		return
	}

	fields := pipeline.IngestFields{
		Title:            r.FormValue("title"),
		Description:      r.FormValue("description"),
		Alt:              r.FormValue("alt"),
		Category:         model.Category(r.FormValue("category")),
		Priority:         formInt(r, "priority"),
		ResponsiveWidths: widths,
	}

	upload := model.RawUpload{
		Data:     data,
		Filename: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Size:     int64(len(data)),
	}

	asset, err := h.Pipeline.Ingest(r.Context(), upload, fields)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, api.SuccessResponse(asset))
}

// GetAsset handles GET /api/images/{asset_id}.
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.DB.FindActiveByID(chi.URLParam(r, "asset_id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.NotFound(w, "asset not found")
			return
		}
		api.Internal(w, "failed to load asset")
		return
	}
	api.WriteJSON(w, http.StatusOK, api.SuccessResponse(asset))
}

// ListAssets handles GET /api/images.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 50)
	if perPage > 500 {
		perPage = 500
	}
	category := model.Category(r.URL.Query().Get("category"))
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	assets, total, err := h.DB.List(category, includeInactive, page, perPage)
	if err != nil {
		api.Internal(w, "failed to list assets")
		return
	}

	// Ensure non-nil slice for JSON serialisation.
	if assets == nil {
		assets = []*model.ImageAsset{}
	}

	info := api.ResultInfo{
		Page:       page,
		PerPage:    perPage,
		Count:      len(assets),
		TotalCount: total,
	}
	api.WriteJSON(w, http.StatusOK, api.PaginatedResponse(map[string]interface{}{"images": assets}, info))
}

// UpdateAsset handles PATCH /api/images/{asset_id} -- metadata-only edits.
func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	var patch model.AssetPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.BadRequest(w, "invalid JSON body: "+err.Error())
		return
	}

	asset, err := h.Pipeline.UpdateMetadata(r.Context(), chi.URLParam(r, "asset_id"), patch)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.NotFound(w, "asset not found")
			return
		}
		api.BadRequest(w, err.Error())
		return
	}
	api.WriteJSON(w, http.StatusOK, api.SuccessResponse(asset))
}

// DeleteAsset handles DELETE /api/images/{asset_id}. Soft delete by default;
// ?permanent=true removes the record and its stored objects.
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	permanent := r.URL.Query().Get("permanent") == "true"

	err := h.Pipeline.DeleteAsset(r.Context(), chi.URLParam(r, "asset_id"), permanent)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			api.NotFound(w, "asset not found")
			return
		}
		api.Internal(w, "failed to delete asset")
		return
	}
	api.WriteJSON(w, http.StatusOK, api.SuccessResponse(nil))
}

func formInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.FormValue(key))
	return n
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// parseWidths parses the responsive form value: "true" selects the default
// width set, a comma-separated list selects explicit widths. An empty value
// means no responsive set.
func parseWidths(v string) ([]int, error) {
	if v == "" {
		return nil, nil
	}
	if v == "true" {
		return append([]int(nil), imageproc.DefaultResponsiveWidths...), nil
	}
	var widths []int
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", strings.TrimSpace(part))
		}
		if n <= 0 {
			return nil, fmt.Errorf("width %d must be positive", n)
		}
		widths = append(widths, n)
	}
	return widths, nil
}
