package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrProductSlugExists slug 已存在
	ErrProductSlugExists = errors.New("product slug already exists")
)

const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetProductsPaginated(ctx context.Context, page, pageSize int, categorySlug, sort string) ([]model.Product, int64, error)
	GetAllCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	GetVariantByID(ctx context.Context, id string) (*model.Variant, error)
}

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

// CreateProduct 連同圖片/變體/分類關聯一併建立
// slug 重複回傳 ErrProductSlugExists
func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	err := s.db.WithContext(ctx).Create(product).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrProductSlugExists
	}
	return err
}

func (s *ProductRepo) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Variants").
		Preload("Categories").
		First(&product, "product_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Variants").
		Preload("Categories").
		First(&product, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// 分頁查詢商品，支援分類過濾與價格排序
func (s *ProductRepo) GetProductsPaginated(ctx context.Context, page, pageSize int, categorySlug, sort string) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	offset := (page - 1) * pageSize
	query := s.db.WithContext(ctx).Model(&model.Product{})

	if categorySlug != "" {
		query = query.
			Joins("JOIN product_categories ON product_categories.product_product_id = products.product_id").
			Joins("JOIN categories ON categories.category_id = product_categories.category_category_id").
			Where("categories.slug = ?", categorySlug)
	}

	// 計算總數
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch sort {
	case SortPriceAsc:
		query = query.Order("price_cents ASC")
	case SortPriceDesc:
		query = query.Order("price_cents DESC")
	default:
		query = query.Order("products.created_at DESC")
	}

	// 圖片按position預載，前端取第一張當列表首圖
	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Variants").
		Offset(offset).Limit(pageSize).
		Find(&products).Error

	return products, total, err
}

func (s *ProductRepo) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (s *ProductRepo) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *ProductRepo) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).First(&category, "category_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *ProductRepo) GetVariantByID(ctx context.Context, id string) (*model.Variant, error) {
	var variant model.Variant
	err := s.db.WithContext(ctx).First(&variant, "variant_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}
