package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrProductNotExist       = errors.New("product is not exist")
	ErrProductFieldsRequired = errors.New("title, slug, price_cents and category are required")
	ErrCategoryNotExist      = errors.New("category is not exist")
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

type ProductPage struct {
	Items      []model.Product `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type CreateProductParams struct {
	Title       string
	Slug        string
	Description string
	PriceCents  int64
	CategoryID  string
	Images      []model.ProductImage
	Variants    []model.Variant
}

type IProductService interface {
	GetProducts(ctx context.Context, page, limit int, categorySlug, sort string) (*ProductPage, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (*model.Product, error)
}

type ProductService struct {
	productRepo  db.IProductRepository
	productCache redis_repo.IProductCacheRepository
	logger       *zerolog.Logger
}

// productCache 允許為nil，沒接redis就全部直接走DB
func NewProductService(productRepo db.IProductRepository, productCache redis_repo.IProductCacheRepository, logger *zerolog.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		productCache: productCache,
		logger:       logger,
	}
}

func (p *ProductService) GetProducts(ctx context.Context, page, limit int, categorySlug, sort string) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	items, total, err := p.productRepo.GetProductsPaginated(ctx, page, limit, categorySlug, sort)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ProductPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetProductBySlug cache-aside: 先查redis，miss才回DB並回填
func (p *ProductService) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if p.productCache != nil {
		cached, err := p.productCache.GetProduct(ctx, slug)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis_repo.ErrCacheMiss) && p.logger != nil {
			// redis故障降級走DB
			p.logger.Warn().Err(err).Str("slug", slug).Msg("product cache read failed")
		}
	}

	product, err := p.productRepo.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotExist
		}
		return nil, err
	}

	if p.productCache != nil {
		if err := p.productCache.SetProduct(ctx, product); err != nil && p.logger != nil {
			p.logger.Warn().Err(err).Str("slug", slug).Msg("product cache write failed")
		}
	}
	return product, nil
}

func (p *ProductService) GetCategories(ctx context.Context) ([]model.Category, error) {
	return p.productRepo.GetAllCategories(ctx)
}

func (p *ProductService) CreateProduct(ctx context.Context, params CreateProductParams) (*model.Product, error) {
	if params.Title == "" || params.Slug == "" || params.PriceCents <= 0 || params.CategoryID == "" {
		return nil, ErrProductFieldsRequired
	}

	category, err := p.productRepo.GetCategoryByID(ctx, params.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotExist
		}
		return nil, err
	}

	productID := uuid.NewString()
	images := make([]model.ProductImage, 0, len(params.Images))
	for i, img := range params.Images {
		img.ProductID = productID
		img.Position = i
		images = append(images, img)
	}
	variants := make([]model.Variant, 0, len(params.Variants))
	for _, v := range params.Variants {
		v.VariantID = uuid.NewString()
		v.ProductID = productID
		variants = append(variants, v)
	}

	product := &model.Product{
		ProductID:   productID,
		Title:       params.Title,
		Slug:        params.Slug,
		Description: params.Description,
		PriceCents:  params.PriceCents,
		Images:      images,
		Variants:    variants,
		Categories:  []model.Category{*category},
	}
	if err := p.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	// 新商品先清掉同slug的殘留快取
	if p.productCache != nil {
		if err := p.productCache.DeleteProduct(ctx, product.Slug); err != nil && p.logger != nil {
			p.logger.Warn().Err(err).Str("slug", product.Slug).Msg("product cache invalidate failed")
		}
	}
	return product, nil
}
