package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newCache(t *testing.T) (*ProductCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewProductCache(client, time.Minute), mr
}

func TestProductCache_List(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)

	_, ok, err := c.GetList(ctx, "Fruits")
	require.NoError(t, err)
	require.False(t, ok)

	products := []models.Product{
		{ID: uuid.New(), Name: "Apple", Category: "Fruits", Price: 3, Images: datatypes.NewJSONSlice([]string{"a.png"})},
	}
	require.NoError(t, c.SetList(ctx, "Fruits", products))

	got, ok, err := c.GetList(ctx, "Fruits")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	require.Equal(t, products[0].ID, got[0].ID)
	require.Equal(t, []string{"a.png"}, []string(got[0].Images))

	_, ok, err = c.GetList(ctx, "")
	require.NoError(t, err)
	require.False(t, ok, "the unfiltered list has its own key")

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.GetList(ctx, "Fruits")
	require.NoError(t, err)
	require.False(t, ok, "entries expire")
}

func TestProductCache_Product(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)

	p := &models.Product{ID: uuid.New(), Name: "Pear", Category: "Fruits", Price: 2}
	require.NoError(t, c.SetProduct(ctx, p))
	require.True(t, mr.Exists("products:item:"+p.ID.String()))

	got, ok, err := c.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Pear", got.Name)

	got, ok, err = c.GetProduct(ctx, uuid.New())
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, got)
}

func TestProductCache_Errors(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)

	require.NoError(t, mr.Set("products:list:broken", "{not json"))
	_, _, err := c.GetList(ctx, "broken")
	require.Error(t, err)

	require.NoError(t, c.Ping(ctx))
	mr.Close()
	_, _, err = c.GetList(ctx, "Fruits")
	require.Error(t, err)
	require.Error(t, c.Ping(ctx))
}

func TestConnect(t *testing.T) {
	client, err := Connect(context.Background(), "", "", 0)
	require.NoError(t, err)
	require.Nil(t, client, "empty address disables caching")

	mr := miniredis.RunT(t)
	client, err = Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NotNil(t, client)
	require.NoError(t, client.Close())
}
