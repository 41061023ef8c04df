package file

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/storage"
	"github.com/docuvault/docuvault/internal/transport"
	"github.com/docuvault/docuvault/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(service *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// ListFiles handles GET /api/files with optional filters. Non-admin callers
// are scoped inside the service regardless of the query string.
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	filter := ListFilter{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Limit:    20,
	}

	if deptStr := q.Get("departmentId"); deptStr != "" {
		if deptID, err := strconv.ParseInt(deptStr, 10, 64); err == nil {
			filter.DepartmentID = &deptID
		}
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		}
	}
	if offsetStr := q.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
		}
	}

	files, err := h.Service.List(u, filter)
	if err != nil {
		h.Logger.Error("ListFiles: service error", "error", err, "user_id", u.ID)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, files)
}

// UploadFile handles POST /api/files (multipart form: file, title,
// description, category).
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// One extra MiB of form overhead on top of the payload cap.
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer part.Close()

	dto := UploadDTO{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Filename:    header.Filename,
		MimeType:    header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     part,
	}

	created, err := h.Service.Upload(r.Context(), u, dto)
	if err != nil {
		h.Logger.Error("UploadFile: service error", "error", err, "user_id", u.ID)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, created)
}

// UpdateStatus handles PATCH /api/files/{id}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	fileID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid file ID")
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateStatus(u, fileID, dto)
	if err != nil {
		h.Logger.Error("UpdateStatus: service error", "error", err, "file_id", fileID, "user_id", u.ID)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// DeleteFile handles DELETE /api/files/{id}.
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	fileID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid file ID")
		return
	}

	if err := h.Service.Delete(r.Context(), u, fileID); err != nil {
		h.Logger.Error("DeleteFile: service error", "error", err, "file_id", fileID, "user_id", u.ID)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "file deleted successfully"})
}

// Download handles GET /uploads/{storedFilename}, streaming the raw bytes.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "storedFilename")
	if !storage.ValidKey(key) {
		h.WriteError(w, http.StatusNotFound, "file not found")
		return
	}

	rc, info, err := h.Service.Download(r.Context(), key)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	defer rc.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}

	if _, err := io.Copy(w, rc); err != nil {
		h.Logger.Error("Download: stream interrupted", "error", err, "stored_filename", key)
	}
}
