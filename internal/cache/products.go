package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	listPrefix = "products:list:"
	itemPrefix = "products:item:"
)

// ProductCache stores product lists (keyed by category filter) and single
// products as JSON with a fixed TTL. Entries are never invalidated
// explicitly; the TTL bounds staleness.
type ProductCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewProductCache(client redis.UniversalClient, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

// GetList returns the cached list for category. ok is false on a miss.
func (c *ProductCache) GetList(ctx context.Context, category string) ([]models.Product, bool, error) {
	var products []models.Product
	ok, err := c.get(ctx, listPrefix+category, &products)
	return products, ok, err
}

func (c *ProductCache) SetList(ctx context.Context, category string, products []models.Product) error {
	return c.set(ctx, listPrefix+category, products)
}

func (c *ProductCache) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, bool, error) {
	var product models.Product
	ok, err := c.get(ctx, itemPrefix+id.String(), &product)
	if !ok {
		return nil, false, err
	}
	return &product, true, nil
}

func (c *ProductCache) SetProduct(ctx context.Context, product *models.Product) error {
	return c.set(ctx, itemPrefix+product.ID.String(), product)
}

func (c *ProductCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ProductCache) get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *ProductCache) set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
