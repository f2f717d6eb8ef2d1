package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/product"
	"github.com/fekuna/omnipos-rental-service/internal/product/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	indexName     = "products"
	listKeyPrefix = "products:list:"
	listTTL       = 5 * time.Minute
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"sku": { "type": "keyword" },
			"name": { "type": "text" },
			"description": { "type": "text" },
			"brand": { "type": "text" },
			"kind": { "type": "keyword" },
			"is_active": { "type": "boolean" },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	cache  product.Cache
	es     product.Indexer
	logger logger.ZapLogger

	indexOnce sync.Once
	bg        sync.WaitGroup
}

// NewProductUseCase accepts a nil cache or indexer; the use case then reads
// straight from the repository.
func NewProductUseCase(repo product.Repository, cache product.Cache, es product.Indexer, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	kind := model.ProductKind(input.Kind)
	if !kind.Valid() {
		return nil, apperr.Invalid("unknown product kind %q", input.Kind)
	}

	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	if sku == "" || name == "" {
		return nil, apperr.Invalid("sku and name are required")
	}
	if err := validatePrices(kind, input.SalePrice, input.RentalPrice, input.CostPrice); err != nil {
		return nil, err
	}

	unique, err := uc.repo.IsSKUUnique(ctx, sku, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, apperr.Conflict("Product", "sku "+sku)
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		SKU:         sku,
		Name:        name,
		Description: model.NullString(input.Description),
		Brand:       model.NullString(input.Brand),
		Kind:        kind,
		SalePrice:   input.SalePrice,
		RentalPrice: input.RentalPrice,
		CostPrice:   input.CostPrice,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, p)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("Product")
	}
	return p, nil
}

type cachedList struct {
	Products []model.Product `json:"products"`
	Count    int             `json:"count"`
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey := listCacheKey(filters)
	if uc.cache != nil {
		var cached cachedList
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("product cache read failed", zap.Error(err))
		}
		if hit {
			return cached.Products, cached.Count, nil
		}
	}

	if filters.Search != "" && uc.es != nil {
		products, count, err := uc.searchIndex(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("product search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, cacheKey, cachedList{Products: products, Count: count}, listTTL); err != nil {
			uc.logger.Warn("product cache write failed", zap.Error(err))
		}
	}
	return products, count, nil
}

func (uc *productUseCase) searchIndex(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":  filters.Search,
				"type":   "phrase_prefix",
				"fields": []string{"name^3", "sku", "brand", "description"},
			},
		},
	}
	if filters.Kind != "" {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"kind": filters.Kind}})
	}
	if filters.ActiveOnly {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"is_active": true}})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}
	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		q["from"] = (page - 1) * filters.PageSize
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err != nil {
		return nil, 0, err
	}

	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			uc.logger.Warn("skipping malformed product document", zap.String("product_id", hit.ID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	if sku == "" || name == "" {
		return nil, apperr.Invalid("sku and name are required")
	}
	if err := validatePrices(p.Kind, input.SalePrice, input.RentalPrice, input.CostPrice); err != nil {
		return nil, err
	}

	if p.SKU != sku {
		unique, err := uc.repo.IsSKUUnique(ctx, sku, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, apperr.Conflict("Product", "sku "+sku)
		}
	}

	p.SKU = sku
	p.Name = name
	p.Description = model.NullString(input.Description)
	p.Brand = model.NullString(input.Brand)
	p.SalePrice = input.SalePrice
	p.RentalPrice = input.RentalPrice
	p.CostPrice = input.CostPrice
	p.IsActive = input.IsActive
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, p)
	return p, nil
}

// DeleteProduct deactivates the product; history rows keep referencing it.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsActive {
		return nil
	}

	p.IsActive = false
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return err
	}

	uc.afterWrite(ctx, p)
	return nil
}

// afterWrite drops cached lists and pushes the product to the search index
// in the background.
func (uc *productUseCase) afterWrite(ctx context.Context, p *model.Product) {
	if uc.cache != nil {
		if err := uc.cache.DeletePattern(ctx, listKeyPrefix+"*"); err != nil {
			uc.logger.Warn("product cache invalidation failed", zap.Error(err))
		}
	}

	if uc.es == nil {
		return
	}
	doc := *p
	uc.bg.Add(1)
	go func() {
		defer uc.bg.Done()
		uc.syncToIndex(context.Background(), &doc)
	}()
}

func (uc *productUseCase) syncToIndex(ctx context.Context, p *model.Product) {
	uc.indexOnce.Do(func() {
		if err := uc.es.CreateIndex(ctx, indexName, indexMapping); err != nil {
			uc.logger.Warn("failed to ensure product index", zap.Error(err))
		}
	})

	if err := uc.es.Index(ctx, indexName, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func validatePrices(kind model.ProductKind, sale, rental, cost decimal.Decimal) error {
	if sale.IsNegative() || rental.IsNegative() || cost.IsNegative() {
		return apperr.Invalid("prices cannot be negative")
	}
	if !model.IsMoney(sale) || !model.IsMoney(rental) || !model.IsMoney(cost) {
		return apperr.Invalid("prices take at most two decimals")
	}
	switch kind {
	case model.ProductKindSale:
		if !sale.IsPositive() {
			return apperr.Invalid("sale products need a sale price")
		}
	case model.ProductKindRental:
		if !rental.IsPositive() {
			return apperr.Invalid("rental products need a daily rental price")
		}
	}
	return nil
}

func listCacheKey(filters *dto.ProductFilters) string {
	data, _ := json.Marshal(filters)
	return fmt.Sprintf("%s%x", listKeyPrefix, md5.Sum(data))
}
