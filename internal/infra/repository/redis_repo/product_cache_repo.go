package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

type ProductCacheError error

var ErrCacheMiss ProductCacheError = errors.New("product cache miss")

// IProductCacheRepository 商品詳情的cache-aside快取
type IProductCacheRepository interface {
	GetProduct(ctx context.Context, slug string) (*model.Product, error)
	SetProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, slug string) error
}

/*	redis 只快取商品詳情頁
	結構:
	product:{slug}:detail -> 商品JSON, 帶TTL*/

type ProductCacheRepo struct {
	productCache *redis.Client
	ttl          time.Duration
}

func NewProductCacheRepo(productCache *redis.Client, ttl time.Duration) *ProductCacheRepo {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCacheRepo{productCache: productCache, ttl: ttl}
}

func generateProductDetailKey(slug string) string {
	return fmt.Sprintf("product:%s:detail", slug)
}

func (s *ProductCacheRepo) GetProduct(ctx context.Context, slug string) (*model.Product, error) {
	raw, err := s.productCache.Get(ctx, generateProductDetailKey(slug)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		// 快取內容壞掉就當作miss，交給DB重建
		return nil, ErrCacheMiss
	}
	return &product, nil
}

func (s *ProductCacheRepo) SetProduct(ctx context.Context, product *model.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return s.productCache.Set(ctx, generateProductDetailKey(product.Slug), raw, s.ttl).Err()
}

func (s *ProductCacheRepo) DeleteProduct(ctx context.Context, slug string) error {
	return s.productCache.Del(ctx, generateProductDetailKey(slug)).Err()
}
