package payment

import (
	"encoding/json"
	"log/slog"
	"net/http"

	gatewayDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/paymentgateway"
	"github.com/alphagrips/academy-backend/internal/transport"
	"github.com/alphagrips/academy-backend/pkg/logger"
)

// WebhookHandler receives server-to-server gateway callbacks. The route is
// unauthenticated; the HMAC signature is the only trust anchor.
type WebhookHandler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewWebhookHandler(service ServiceAPI) *WebhookHandler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &WebhookHandler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *WebhookHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var callback gatewayDatamodel.Callback
	if err := json.NewDecoder(r.Body).Decode(&callback); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid callback payload")
		return
	}

	dto := &VerifyPaymentDTO{
		OrderID:   callback.OrderID,
		PaymentID: callback.PaymentID,
		Signature: callback.Signature,
	}

	if err := h.Service.ConfirmPayment(r.Context(), dto); err != nil {
		h.Logger.Warn("webhook confirmation rejected", "error", err, "order_id", callback.OrderID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
