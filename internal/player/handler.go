package player

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	errors "github.com/alphagrips/academy-backend/internal"
	playerDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/player"
	"github.com/alphagrips/academy-backend/internal/transport"
	"github.com/alphagrips/academy-backend/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListPlayers(user *errors.SessionUser, requestedAcademyID int64) ([]*Player, error)
	CreatePlayer(user *errors.SessionUser, dto *CreatePlayerDTO) (*playerDatamodel.Player, error)
	UpdatePlayer(user *errors.SessionUser, id int64, dto *UpdatePlayerDTO) (*playerDatamodel.Player, error)
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

func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	user, ok := errors.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestedAcademyID, _ := strconv.ParseInt(r.URL.Query().Get("academy_id"), 10, 64)

	players, err := h.Service.ListPlayers(user, requestedAcademyID)
	if err != nil {
		h.Logger.Error("GetPlayers: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, players)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	user, ok := errors.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreatePlayerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := h.Service.CreatePlayer(user, &dto)
	if err != nil {
		h.Logger.Error("CreatePlayer: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, player)
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	user, ok := errors.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	var dto UpdatePlayerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := h.Service.UpdatePlayer(user, id, &dto)
	if err != nil {
		h.Logger.Error("UpdatePlayer: service error", "error", err, "player_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, player)
}
