package department

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/transport"
	"github.com/docuvault/docuvault/internal/user"
	"github.com/docuvault/docuvault/pkg/logger"
)

type ServiceAPI interface {
	GetAllDepartments() ([]*Department, error)
	CreateDepartment(actor *user.User, dto CreateDepartmentDTO) (*Department, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.GetAllDepartments()
	if err != nil {
		h.Logger.Error("GetDepartments: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to fetch departments")
		return
	}

	h.WriteJSON(w, http.StatusOK, departments)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dept, err := h.Service.CreateDepartment(u, dto)
	if err != nil {
		h.Logger.Error("CreateDepartment: service error", "error", err, "user_id", u.ID)
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dept)
}
