package finance

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

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(service *Service) *Handler {
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

func academyIDParam(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.URL.Query().Get("academy_id"), 10, 64)
	return id
}

func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	rows, err := h.Service.Ledger(user, academyIDParam(r))
	if err != nil {
		h.Logger.Error("GetLedger: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.Dashboard(user, academyIDParam(r))
	if err != nil {
		h.Logger.Error("GetDashboard: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) GetCollectionEfficiency(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	result, err := h.Service.MonthlyEfficiency(user, academyIDParam(r))
	if err != nil {
		h.Logger.Error("GetCollectionEfficiency: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetTopDefaulters(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}

	result, err := h.Service.Defaulters(user, academyIDParam(r), limit)
	if err != nil {
		h.Logger.Error("GetTopDefaulters: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetFeeSchedules(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	schedules, err := h.Service.ListFeeSchedules(user, academyIDParam(r))
	if err != nil {
		h.Logger.Error("GetFeeSchedules: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, schedules)
}

func (h *Handler) CreateFeeSchedule(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	var dto CreateFeeScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateFeeSchedule(user, &dto)
	if err != nil {
		h.Logger.Error("CreateFeeSchedule: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetPlayerOverrides(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	overrides, err := h.Service.ListPlayerOverrides(user, academyIDParam(r))
	if err != nil {
		h.Logger.Error("GetPlayerOverrides: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, overrides)
}

func (h *Handler) SetPlayerOverride(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	playerID, err := strconv.ParseInt(chi.URLParam(r, "playerID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	var dto SetOverrideDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.SetOverride(user, playerID, &dto)
	if err != nil {
		h.Logger.Error("SetPlayerOverride: service error", "error", err, "player_id", playerID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, created)
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	var dto RecordPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.RecordManualPayment(r.Context(), user, &dto)
	if err != nil {
		h.Logger.Error("RecordPayment: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	payments, err := h.Service.ListPayments(user, academyIDParam(r))
	if err != nil {
		h.Logger.Error("GetPayments: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, payments)
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	if err := h.Service.DeletePayment(user, id); err != nil {
		h.Logger.Error("DeletePayment: service error", "error", err, "payment_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
