package academy

import (
	"encoding/json"
	"log/slog"
	"net/http"

	errors "github.com/alphagrips/academy-backend/internal"
	"github.com/alphagrips/academy-backend/internal/transport"
	"github.com/alphagrips/academy-backend/pkg/logger"
)

type ServiceAPI interface {
	ListAcademies(user *errors.SessionUser) ([]*Academy, error)
	CreateAcademy(dto *CreateAcademyDTO) (*Academy, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetAcademies(w http.ResponseWriter, r *http.Request) {
	user, ok := errors.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	academies, err := h.Service.ListAcademies(user)
	if err != nil {
		h.Logger.Error("GetAcademies: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, academies)
}

func (h *Handler) CreateAcademy(w http.ResponseWriter, r *http.Request) {
	var dto CreateAcademyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	academy, err := h.Service.CreateAcademy(&dto)
	if err != nil {
		h.Logger.Error("CreateAcademy: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, academy)
}
