package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/internal/util"
)

type AuthHandler struct {
	customerService service.ICustomerService
	orderService    service.IOrderService
	tokenMaker      auth.ITokenMaker
}

func NewAuthHandler(customerService service.ICustomerService, orderService service.IOrderService, tokenMaker auth.ITokenMaker) *AuthHandler {
	if customerService == nil || orderService == nil || tokenMaker == nil {
		panic("customerService, orderService and tokenMaker cannot be nil")
	}
	return &AuthHandler{
		customerService: customerService,
		orderService:    orderService,
		tokenMaker:      tokenMaker,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.customerService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSignupFieldsRequired),
			errors.Is(err, service.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailAlreadyExists):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "signup failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, convertCustomerToDTO(customer))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.customerService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	duration := time.Duration(constants.AccessTokenDuration) * time.Hour
	token, err := h.tokenMaker.CreateToken(customer, duration)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponseDTO{
		AccessToken: dto.TokenInfo{
			Value:     token,
			ExpiresIn: int(duration.Seconds()),
		},
		Customer: convertCustomerToDTO(customer),
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := util.GetPrincipalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	customer, err := h.customerService.GetCustomer(r.Context(), principal.CustomerID)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotExist) {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get customer failed")
		return
	}

	writeJSON(w, http.StatusOK, convertCustomerToDTO(customer))
}

// MyOrders 當前客戶的訂單紀錄
func (h *AuthHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	principal := util.GetPrincipalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	orders, err := h.orderService.GetOrdersByCustomerID(r.Context(), principal.CustomerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list orders failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func convertCustomerToDTO(customer *model.Customer) dto.CustomerDTO {
	return dto.CustomerDTO{
		ID:      customer.CustomerID,
		Email:   customer.Email,
		Name:    customer.Name,
		IsAdmin: customer.IsAdmin,
	}
}
