package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serigraph/quotebot/internal/models"
)

func TestMemoryStore_CatalogOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, name := range []string{"Volantes", "Tarjetas", "Posters"} {
		_, err := store.CreateProduct(ctx, name, 10)
		require.NoError(t, err)
	}

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Volantes", products[0].Name)
	assert.Equal(t, "Tarjetas", products[1].Name)
	assert.Equal(t, "Posters", products[2].Name)
	assert.Equal(t, uint(1), products[0].ID)
}

func TestMemoryStore_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.CreateDimension(ctx, "Carta 8.5x11", 0)
	require.NoError(t, err)

	dims, err := store.ListDimensions(ctx)
	require.NoError(t, err)
	dims[0].Label = "mutated"

	dims, err = store.ListDimensions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Carta 8.5x11", dims[0].Label)
}

func TestMemoryStore_Validation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.CreateProduct(ctx, "", 1)
	assert.Error(t, err)

	_, err = store.CreateDimension(ctx, "4x6", -1)
	assert.Error(t, err)

	_, err = store.CreateMaterial(ctx, &models.Material{Name: "Couche", Price: -5, SheetSize: "20x30"})
	assert.Error(t, err)

	_, err = store.CreateChargeDefinition(ctx, "", "x")
	assert.Error(t, err)
}

func TestMemoryStore_DeleteCharge(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c, err := store.CreateChargeDefinition(ctx, "Corte", "Corte de guillotina")
	require.NoError(t, err)

	require.NoError(t, store.DeleteChargeDefinition(ctx, c.ID))

	err = store.DeleteChargeDefinition(ctx, c.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	charges, err := store.ListChargeDefinitions(ctx)
	require.NoError(t, err)
	assert.Empty(t, charges)
}

func TestMemoryStore_Quotes(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, n := range []string{"COT-1", "COT-2", "COT-3"} {
		q := &models.QuoteRecord{Number: n, Status: models.QuoteStatusSent}
		require.NoError(t, store.SaveQuote(ctx, q))
		assert.NotZero(t, q.ID)
	}

	quotes, err := store.ListQuotes(ctx, 2)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "COT-3", quotes[0].Number)
	assert.Equal(t, "COT-2", quotes[1].Number)

	q, err := store.GetQuote(ctx, "COT-1")
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusSent, q.Status)

	_, err = store.GetQuote(ctx, "COT-404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.CreateChargeDefinition(ctx, "Barniz", "")
		}()
	}
	wg.Wait()

	charges, err := store.ListChargeDefinitions(ctx)
	require.NoError(t, err)
	assert.Len(t, charges, 50)
	seen := map[uint]bool{}
	for _, c := range charges {
		assert.False(t, seen[c.ID])
		seen[c.ID] = true
	}
}
