package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/infra/payment"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/rs/zerolog"
)

// provider單一事件不會超過這個大小
const maxWebhookBodyBytes = 1 << 20

type WebhookHandler struct {
	eventVerifier payment.IEventVerifier
	orderService  service.IOrderService
	logger        *zerolog.Logger
}

func NewWebhookHandler(eventVerifier payment.IEventVerifier, orderService service.IOrderService, logger *zerolog.Logger) *WebhookHandler {
	if eventVerifier == nil || orderService == nil {
		panic("eventVerifier and orderService cannot be nil")
	}
	return &WebhookHandler{
		eventVerifier: eventVerifier,
		orderService:  orderService,
		logger:        logger,
	}
}

// HandlePaymentEvent 付款provider的異步回調
// 這個endpoint唯一的認證機制是簽章驗證，驗簽前不解析payload
// 驗證通過後一律回200(含no-op)，回非200 provider會持續重送
func (h *WebhookHandler) HandlePaymentEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body failed")
		return
	}

	event, err := h.eventVerifier.VerifyEvent(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidSignature):
			h.logWarn(err, "webhook signature verification failed")
			writeError(w, http.StatusBadRequest, "invalid signature")
		case errors.Is(err, payment.ErrMissingOrderID):
			h.logWarn(err, "webhook event missing order id")
			writeError(w, http.StatusBadRequest, "missing order id metadata")
		default:
			h.logWarn(err, "webhook event malformed")
			writeError(w, http.StatusBadRequest, "malformed event")
		}
		return
	}

	// 非付款完成事件ack後忽略
	if event.Type != payment.EventPaymentCompleted {
		writeJSON(w, http.StatusOK, dto.WebhookResponseDTO{Received: true})
		return
	}

	if _, err := h.orderService.ConfirmPayment(r.Context(), event.OrderID, event.PaymentRef); err != nil {
		// 回500讓provider稍後重送
		if h.logger != nil {
			h.logger.Error().Err(err).Str("order_id", event.OrderID).Msg("confirm payment failed")
		}
		writeError(w, http.StatusInternalServerError, "process event failed")
		return
	}

	writeJSON(w, http.StatusOK, dto.WebhookResponseDTO{Received: true})
}

func (h *WebhookHandler) logWarn(err error, msg string) {
	if h.logger != nil {
		h.logger.Warn().Err(err).Msg(msg)
	}
}
