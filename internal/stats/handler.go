package stats

import (
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

// GlobalStats handles GET /api/stats.
func (h *Handler) GlobalStats(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.Service.Global(u)
	if err != nil {
		h.Logger.Error("GlobalStats: service error", "error", err, "user_id", u.ID)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// DepartmentStats handles GET /api/departments/{id}/stats.
func (h *Handler) DepartmentStats(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	departmentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid department ID")
		return
	}

	result, err := h.Service.ForDepartment(u, departmentID)
	if err != nil {
		h.Logger.Error("DepartmentStats: service error", "error", err, "department_id", departmentID)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
