package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{
		productService: productService,
	}
}

// GetProducts 商品列表，支援 page/limit/category/sort
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := parseIntOrDefault(query.Get("page"), constants.DefaultPaging)
	limit := parseIntOrDefault(query.Get("limit"), constants.DefaultPagingSize)

	pageResult, err := h.productService.GetProducts(r.Context(), page, limit, query.Get("category"), query.Get("sort"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list products failed")
		return
	}

	writeJSON(w, http.StatusOK, pageResult)
}

func (h *ProductHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "slug is required")
		return
	}

	product, err := h.productService.GetProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotExist) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get product failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"product": product})
}

func (h *ProductHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productService.GetCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list categories failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func parseIntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}
