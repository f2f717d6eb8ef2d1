package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/product/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/fekuna/omnipos-rental-service/pkg/search"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	products  map[string]*model.Product
	findCalls int
}

func newMemRepo() *memRepo {
	return &memRepo{products: map[string]*model.Product{}}
}

func (r *memRepo) Create(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	r.findCalls++
	var out []model.Product
	for _, p := range r.products {
		if f.Kind != "" && string(p.Kind) != f.Kind {
			continue
		}
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *memRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memRepo) IsSKUUnique(_ context.Context, sku, excludeID string) (bool, error) {
	for id, p := range r.products {
		if p.SKU == sku && id != excludeID {
			return false, nil
		}
	}
	return true, nil
}

type memCache struct {
	data map[string][]byte
}

func (c *memCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memCache) DeletePattern(_ context.Context, _ string) error {
	c.data = map[string][]byte{}
	return nil
}

type fakeIndex struct {
	mu        sync.Mutex
	docs      map[string]interface{}
	searchErr error
	hits      []search.Hit
	lastQuery map[string]interface{}
}

func (f *fakeIndex) CreateIndex(context.Context, string, string) error { return nil }

func (f *fakeIndex) Index(_ context.Context, _, id string, doc interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[id] = doc
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string, query map[string]interface{}) (*search.SearchResponse, error) {
	f.mu.Lock()
	f.lastQuery = query
	f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	res := &search.SearchResponse{}
	res.Hits.Hits = f.hits
	res.Hits.Total.Value = len(f.hits)
	return res, nil
}

func (f *fakeIndex) Delete(context.Context, string, string) error { return nil }

func newUseCase(repo *memRepo, cache *memCache, es *fakeIndex) *productUseCase {
	uc := NewProductUseCase(repo, nil, nil, logger.NewNop()).(*productUseCase)
	if cache != nil {
		uc.cache = cache
	}
	if es != nil {
		uc.es = es
	}
	return uc
}

func TestCreateProduct_PriceRules(t *testing.T) {
	tests := []struct {
		name  string
		input dto.CreateProductInput
		kind  apperr.Kind
	}{
		{
			name:  "rental without daily price",
			input: dto.CreateProductInput{SKU: "R-1", Name: "Tent", Kind: "rental", SalePrice: decimal.NewFromInt(100)},
			kind:  apperr.KindInvalid,
		},
		{
			name:  "sale without sale price",
			input: dto.CreateProductInput{SKU: "S-1", Name: "Rope", Kind: "sale"},
			kind:  apperr.KindInvalid,
		},
		{
			name:  "unknown kind",
			input: dto.CreateProductInput{SKU: "X-1", Name: "Thing", Kind: "lease", SalePrice: decimal.NewFromInt(1)},
			kind:  apperr.KindInvalid,
		},
		{
			name:  "negative cost",
			input: dto.CreateProductInput{SKU: "S-2", Name: "Rope", Kind: "sale", SalePrice: decimal.NewFromInt(5), CostPrice: decimal.NewFromInt(-1)},
			kind:  apperr.KindInvalid,
		},
		{
			name:  "daily price below a cent",
			input: dto.CreateProductInput{SKU: "R-2", Name: "Chair", Kind: "rental", RentalPrice: decimal.RequireFromString("1.505")},
			kind:  apperr.KindInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(newMemRepo(), nil, nil)
			_, err := uc.CreateProduct(context.Background(), &tt.input)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}
}

func TestCreateProduct_IndexesAndRejectsDuplicateSKU(t *testing.T) {
	repo := newMemRepo()
	es := &fakeIndex{docs: map[string]interface{}{}}
	uc := newUseCase(repo, nil, es)
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		SKU: "TENT-4", Name: "Tent 4p", Kind: "rental", RentalPrice: decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProductKindRental, p.Kind)

	uc.bg.Wait()
	assert.Contains(t, es.docs, p.ID)

	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{
		SKU: "TENT-4", Name: "Other", Kind: "rental", RentalPrice: decimal.NewFromInt(1),
	})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestListProducts_CachesUntilWrite(t *testing.T) {
	repo := newMemRepo()
	cache := &memCache{data: map[string][]byte{}}
	uc := newUseCase(repo, cache, nil)
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, &dto.CreateProductInput{SKU: "S-1", Name: "Rope", Kind: "sale", SalePrice: decimal.NewFromInt(3)})
	require.NoError(t, err)

	filters := &dto.ProductFilters{Kind: "sale"}
	_, count, err := uc.ListProducts(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, _, err = uc.ListProducts(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls, "second list should be served from cache")

	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{SKU: "S-2", Name: "Hook", Kind: "sale", SalePrice: decimal.NewFromInt(2)})
	require.NoError(t, err)

	_, count, err = uc.ListProducts(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, repo.findCalls)
}

func TestListProducts_SearchFallsBackToDB(t *testing.T) {
	repo := newMemRepo()
	es := &fakeIndex{docs: map[string]interface{}{}, searchErr: errors.New("circuit breaker is open")}
	uc := newUseCase(repo, nil, es)
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, &dto.CreateProductInput{SKU: "S-1", Name: "Rope", Kind: "sale", SalePrice: decimal.NewFromInt(3)})
	require.NoError(t, err)
	uc.bg.Wait()

	products, count, err := uc.ListProducts(ctx, &dto.ProductFilters{Search: "rope"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, repo.findCalls)
}

func TestListProducts_SearchUsesIndex(t *testing.T) {
	repo := newMemRepo()
	doc, _ := json.Marshal(model.Product{BaseModel: model.BaseModel{ID: "p-1"}, SKU: "TENT-4", Name: "Tent", Kind: model.ProductKindRental})
	es := &fakeIndex{docs: map[string]interface{}{}, hits: []search.Hit{{ID: "p-1", Source: doc}, {ID: "bad", Source: json.RawMessage(`"x"`)}}}
	uc := newUseCase(repo, nil, es)

	products, _, err := uc.ListProducts(context.Background(), &dto.ProductFilters{Search: "tent"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "TENT-4", products[0].SKU)
	assert.Zero(t, repo.findCalls)
}

func TestListProducts_SearchTextIsNotQuerySyntax(t *testing.T) {
	es := &fakeIndex{docs: map[string]interface{}{}}
	uc := newUseCase(newMemRepo(), nil, es)

	_, _, err := uc.ListProducts(context.Background(), &dto.ProductFilters{Search: "brand:x OR sku:* ("})
	require.NoError(t, err)

	raw, err := json.Marshal(es.lastQuery)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, `"multi_match"`)
	assert.Contains(t, body, `"phrase_prefix"`)
	assert.Contains(t, body, `"query":"brand:x OR sku:* ("`)
	assert.NotContains(t, body, "query_string")
}

func TestDeleteProduct_SoftDeletes(t *testing.T) {
	repo := newMemRepo()
	uc := newUseCase(repo, nil, nil)
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{SKU: "S-1", Name: "Rope", Kind: "sale", SalePrice: decimal.NewFromInt(3)})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(ctx, p.ID))

	stored, err := uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	err = uc.DeleteProduct(ctx, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
