package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	productService service.IProductService
	orderService   service.IOrderService
}

func NewAdminHandler(productService service.IProductService, orderService service.IOrderService) *AdminHandler {
	if productService == nil || orderService == nil {
		panic("productService and orderService cannot be nil")
	}
	return &AdminHandler{
		productService: productService,
		orderService:   orderService,
	}
}

// CreateProduct 後台建立商品，連同圖片與變體
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	images := make([]model.ProductImage, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, model.ProductImage{
			URL:      img.URL,
			Alt:      img.Alt,
			PublicID: img.PublicID,
		})
	}
	variants := make([]model.Variant, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, model.Variant{
			Name:            v.Name,
			Stock:           v.Stock,
			PriceDeltaCents: v.PriceDeltaCents,
		})
	}

	product, err := h.productService.CreateProduct(r.Context(), service.CreateProductParams{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		CategoryID:  req.CategoryID,
		Images:      images,
		Variants:    variants,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductFieldsRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrCategoryNotExist):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, db.ErrProductSlugExists):
			writeError(w, http.StatusConflict, "slug already exists")
		default:
			writeError(w, http.StatusInternalServerError, "create product failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// GetOrder 後台查單筆訂單，含明細
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order id is required")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotExist) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get order failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"order": order})
}

// GetStats 後台儀表板統計
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orderService.GetStoreStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get stats failed")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
