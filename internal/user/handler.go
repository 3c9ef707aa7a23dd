package user

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alphagrips/academy-backend/internal/transport"
	"github.com/alphagrips/academy-backend/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListUsers(requestedAcademyID int64) ([]*User, error)
	CreateUser(dto *CreateUserDTO) (*User, error)
	UpdateUser(id int64, dto *UpdateUserDTO) (*User, error)
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

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	requestedAcademyID, _ := strconv.ParseInt(r.URL.Query().Get("academy_id"), 10, 64)

	users, err := h.Service.ListUsers(requestedAcademyID)
	if err != nil {
		h.Logger.Error("GetUsers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateUser(&dto)
	if err != nil {
		h.Logger.Error("CreateUser: service error", "error", err, "email", dto.Email)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateUser(id, &dto)
	if err != nil {
		h.Logger.Error("UpdateUser: service error", "error", err, "user_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}
