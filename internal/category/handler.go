package category

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	errors "github.com/alphagrips/academy-backend/internal"
	"github.com/alphagrips/academy-backend/internal/transport"
	"github.com/alphagrips/academy-backend/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListCategories(user *errors.SessionUser, requestedAcademyID int64) ([]*Category, error)
	CreateCategory(user *errors.SessionUser, dto *CreateCategoryDTO) (*Category, error)
	UpdateCategory(user *errors.SessionUser, id int64, dto *UpdateCategoryDTO) (*Category, error)
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

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := errors.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestedAcademyID, _ := strconv.ParseInt(r.URL.Query().Get("academy_id"), 10, 64)

	categories, err := h.Service.ListCategories(user, requestedAcademyID)
	if err != nil {
		h.Logger.Error("GetCategories: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := errors.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.Service.CreateCategory(user, &dto)
	if err != nil {
		h.Logger.Error("CreateCategory: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := errors.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var dto UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.Service.UpdateCategory(user, id, &dto)
	if err != nil {
		h.Logger.Error("UpdateCategory: service error", "error", err, "category_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, category)
}
