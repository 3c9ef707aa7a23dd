package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	errors "github.com/alphagrips/academy-backend/internal"
	gatewayDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/paymentgateway"
	"github.com/alphagrips/academy-backend/internal/transport"
	"github.com/alphagrips/academy-backend/pkg/logger"
)

type ServiceAPI interface {
	RequestPayment(ctx context.Context, user *errors.SessionUser, dto *CreateOrderDTO) (*gatewayDatamodel.Order, error)
	ConfirmPayment(ctx context.Context, dto *VerifyPaymentDTO) error
	ExpireStalePendingOrders(ctx context.Context, ttl time.Duration) (int, error)
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

// CreateOrder starts an online payment for a ledger shortfall and returns the
// gateway order handle for the checkout widget.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := errors.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Service.RequestPayment(r.Context(), user, &dto)
	if err != nil {
		h.Logger.Error("CreateOrder: service error", "error", err, "player_id", dto.PlayerID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, order)
}

// VerifyPayment is the checkout-widget confirmation path: the browser posts
// the gateway's order/payment/signature triple after the payer completes.
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var dto VerifyPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ConfirmPayment(r.Context(), &dto); err != nil {
		h.Logger.Error("VerifyPayment: service error", "error", err, "order_id", dto.OrderID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "Payment Success"})
}
