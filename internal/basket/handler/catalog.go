package handler

import (
	"errors"
	"net/http"
	"time"

	"basket-service/internal/basket/model"
	"basket-service/internal/fileio"
)

type groupsResponse struct {
	Groups   int                `json:"groups"`
	Products int                `json:"products"`
	Items    []model.Suggestion `json:"items"`
}

// Groups: GET /catalog/groups?limit=N, при limit=0 все группы.
func (h *Handler) Groups(w http.ResponseWriter, r *http.Request) {
	limit, err := atoi(r.URL.Query().Get("limit"), h.cfg.SuggestLimit)
	if err != nil || limit < 0 {
		badRequest(w, "limit must be a non-negative integer")
		return
	}
	idx := h.catalog.Snapshot()
	writeJSON(w, http.StatusOK, groupsResponse{
		Groups:   len(idx.Keys()),
		Products: idx.Len(),
		Items:    idx.Suggestions(limit),
	})
}

// Upload: POST /catalog/upload, multipart с полем file (xlsx, xls или csv без шапки).
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := h.log(r)

	if err := r.ParseMultipartForm(int64(h.cfg.MaxUploadMB) << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			h.fail(w, r, err)
			return
		}
		badRequest(w, "bad multipart form: %v", err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "missing file: %v", err)
		return
	}
	defer file.Close()

	if !fileio.Supported(header.Filename) {
		h.fail(w, r, fileio.ErrUnsupported)
		return
	}
	rows, err := fileio.ReadAnyRows(file, header.Filename)
	if err != nil {
		log.Warn().Err(err).Str("file", header.Filename).Msg("read price list")
		badRequest(w, "failed to read %s: %v", header.Filename, err)
		return
	}

	rep, err := h.catalog.Ingest(r.Context(), rows)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	log.Info().
		Str("file", header.Filename).
		Int64("bytes", header.Size).
		Int("added", rep.Added).
		Int("errors", rep.Errors).
		Dur("elapsed", time.Since(start)).
		Msg("price list uploaded")
	writeJSON(w, http.StatusOK, rep)
}

// ClearCatalog: DELETE /catalog.
func (h *Handler) ClearCatalog(w http.ResponseWriter, r *http.Request) {
	n, err := h.catalog.Clear(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.log(r).Warn().Int("removed", n).Msg("catalog cleared by admin")
	writeJSON(w, http.StatusOK, map[string]int{"removed": n})
}
