package match

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	errors "github.com/alphagrips/academy-backend/internal"
	matchDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/match"
	"github.com/alphagrips/academy-backend/internal/transport"
	"github.com/alphagrips/academy-backend/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListMatches(user *errors.SessionUser, requestedAcademyID int64) ([]*Match, error)
	CreateMatch(user *errors.SessionUser, dto *CreateMatchDTO) (*matchDatamodel.Match, error)
	DeleteMatch(user *errors.SessionUser, id int64) error
	ListRankings(user *errors.SessionUser, requestedAcademyID int64) ([]*Ranking, error)
	MatrixDates(user *errors.SessionUser, requestedAcademyID int64) ([]string, error)
	MatrixCategories(user *errors.SessionUser, requestedAcademyID int64, date time.Time) ([]*MatrixCategory, error)
	Matrix(user *errors.SessionUser, requestedAcademyID int64, date time.Time, categoryID int64) ([]*Match, error)
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

func (h *Handler) sessionUser(w http.ResponseWriter, r *http.Request) (*errors.SessionUser, bool) {
	user, ok := errors.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return user, true
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	requestedAcademyID, _ := strconv.ParseInt(r.URL.Query().Get("academy_id"), 10, 64)

	matches, err := h.Service.ListMatches(user, requestedAcademyID)
	if err != nil {
		h.Logger.Error("GetMatches: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, matches)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	var dto CreateMatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateMatch(user, &dto)
	if err != nil {
		h.Logger.Error("CreateMatch: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	if err := h.Service.DeleteMatch(user, id); err != nil {
		h.Logger.Error("DeleteMatch: service error", "error", err, "match_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	requestedAcademyID, _ := strconv.ParseInt(r.URL.Query().Get("academy_id"), 10, 64)

	rankings, err := h.Service.ListRankings(user, requestedAcademyID)
	if err != nil {
		h.Logger.Error("GetRankings: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rankings)
}

func (h *Handler) GetMatrixDates(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	requestedAcademyID, _ := strconv.ParseInt(r.URL.Query().Get("academy_id"), 10, 64)

	dates, err := h.Service.MatrixDates(user, requestedAcademyID)
	if err != nil {
		h.Logger.Error("GetMatrixDates: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dates)
}

func (h *Handler) GetMatrixCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	requestedAcademyID, _ := strconv.ParseInt(r.URL.Query().Get("academy_id"), 10, 64)

	categories, err := h.Service.MatrixCategories(user, requestedAcademyID, date)
	if err != nil {
		h.Logger.Error("GetMatrixCategories: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	categoryID, err := strconv.ParseInt(r.URL.Query().Get("category"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	requestedAcademyID, _ := strconv.ParseInt(r.URL.Query().Get("academy_id"), 10, 64)

	matches, err := h.Service.Matrix(user, requestedAcademyID, date, categoryID)
	if err != nil {
		h.Logger.Error("GetMatrix: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, matches)
}
