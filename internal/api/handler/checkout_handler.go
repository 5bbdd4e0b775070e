package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/internal/util"
)

type CheckoutHandler struct {
	checkoutService service.ICheckoutService
}

func NewCheckoutHandler(checkoutService service.ICheckoutService) *CheckoutHandler {
	if checkoutService == nil {
		panic("checkoutService cannot be nil")
	}
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// Checkout 建立PENDING訂單並開代管付款頁
// 已登入用principal，訪客用body的email
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	principal := util.GetPrincipalFromContext(ctx)

	items := make([]model.CartItem, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		items = append(items, model.CartItem{
			ProductID:  item.ProductID,
			VariantID:  item.VariantID,
			Title:      item.Title,
			PriceCents: item.PriceCents,
			Quantity:   item.Quantity,
		})
	}

	url, err := h.checkoutService.Checkout(ctx, principal, req.Email, items)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart),
			errors.Is(err, service.ErrInvalidCartItem),
			errors.Is(err, service.ErrNoCustomer):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrCustomerNotExist):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "create payment failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.CheckoutResponseDTO{URL: url})
}
