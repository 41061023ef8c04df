package comment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/docuvault/docuvault/internal/auth"
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

// ListComments handles GET /api/files/{id}/comments.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
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

	comments, err := h.Service.ListForFile(u, fileID)
	if err != nil {
		h.Logger.Error("ListComments: service error", "error", err, "file_id", fileID)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, comments)
}

// CreateComment handles POST /api/files/{id}/comments.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
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

	var dto CreateCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(u, fileID, dto)
	if err != nil {
		h.Logger.Error("CreateComment: service error", "error", err, "file_id", fileID, "user_id", u.ID)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, created)
}
