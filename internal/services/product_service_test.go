package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/cache"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/services"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/store"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/testutil"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func seedProducts(t *testing.T, products *store.ProductStore) []*models.Product {
	t.Helper()
	seeded := []*models.Product{
		{Name: "Apple", Category: "Fruits", Price: 3},
		{Name: "Banana", Category: "Fruits", Price: 1},
		{Name: "Carrot", Category: "Vegetables", Price: 2},
	}
	for _, p := range seeded {
		require.NoError(t, products.Create(context.Background(), p))
	}
	return seeded
}

func TestProductService_NoCache(t *testing.T) {
	ctx := context.Background()
	products := store.NewProductStore(testutil.NewDB(t))
	seeded := seedProducts(t, products)
	svc := services.NewProductService(products, nil)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	fruits, err := svc.List(ctx, "Fruits")
	require.NoError(t, err)
	require.Len(t, fruits, 2)
	for _, p := range fruits {
		require.Equal(t, "Fruits", p.Category)
	}

	got, err := svc.Get(ctx, seeded[2].ID)
	require.NoError(t, err)
	require.Equal(t, "Carrot", got.Name)

	_, err = svc.Get(ctx, uuid.New())
	require.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestProductService_ReadThroughRedis(t *testing.T) {
	ctx := context.Background()
	products := store.NewProductStore(testutil.NewDB(t))
	seeded := seedProducts(t, products)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := services.NewProductService(products, cache.NewProductCache(client, time.Minute))

	fruits, err := svc.List(ctx, "Fruits")
	require.NoError(t, err)
	require.Len(t, fruits, 2)
	require.True(t, mr.Exists("products:list:Fruits"))

	// served from the cache even though the row set changed
	require.NoError(t, products.Create(ctx, &models.Product{Name: "Cherry", Category: "Fruits", Price: 5}))
	fruits, err = svc.List(ctx, "Fruits")
	require.NoError(t, err)
	require.Len(t, fruits, 2)

	_, err = svc.Get(ctx, seeded[0].ID)
	require.NoError(t, err)
	require.True(t, mr.Exists("products:item:"+seeded[0].ID.String()))
}

type brokenCache struct{}

var errCacheDown = errors.New("cache down")

func (brokenCache) GetList(context.Context, string) ([]models.Product, bool, error) {
	return nil, false, errCacheDown
}
func (brokenCache) SetList(context.Context, string, []models.Product) error { return errCacheDown }
func (brokenCache) GetProduct(context.Context, uuid.UUID) (*models.Product, bool, error) {
	return nil, false, errCacheDown
}
func (brokenCache) SetProduct(context.Context, *models.Product) error { return errCacheDown }

func TestProductService_CacheFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	products := store.NewProductStore(testutil.NewDB(t))
	seeded := seedProducts(t, products)
	svc := services.NewProductService(products, brokenCache{})

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	got, err := svc.Get(ctx, seeded[1].ID)
	require.NoError(t, err)
	require.Equal(t, "Banana", got.Name)
}
