package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/internal/storefront/business/models"
)

func product(id, price int64) models.Product {
	return models.Product{ID: id, Variants: []models.Variant{{Price: price}}}
}

func TestCart_AddMergesLines(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 10000), 2))
	require.NoError(t, c.Add(product(2, 5000), 1))
	require.NoError(t, c.Add(product(1, 10000), 3))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].Product.ID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 6, c.TotalQuantity())
	assert.Equal(t, int64(55000), c.TotalPrice())
}

func TestCart_AddRejectsNonPositive(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.Add(product(1, 1), 0), ErrInvalidQuantity)
	assert.ErrorIs(t, c.Add(product(1, 1), -2), ErrInvalidQuantity)
	assert.Empty(t, c.Items())
}

func TestCart_RemoveLastUnitDropsLine(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 100), 2))

	c.Remove(1)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, 1, c.Items()[0].Quantity)

	c.Remove(1)
	assert.Empty(t, c.Items())

	c.Remove(1)
	assert.Empty(t, c.Items())
}

func TestCart_SetQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 100), 1))
	require.NoError(t, c.Add(product(2, 100), 1))

	assert.True(t, c.SetQuantity(1, 4))
	assert.Equal(t, 5, c.TotalQuantity())

	assert.True(t, c.SetQuantity(1, 0))
	assert.False(t, c.SetQuantity(1, 3))
	require.Len(t, c.Items(), 1)
	assert.Equal(t, int64(2), c.Items()[0].Product.ID)
}

func TestCart_DeleteAndClear(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 100), 1))
	require.NoError(t, c.Add(product(2, 200), 1))
	require.NoError(t, c.Add(product(3, 300), 1))

	c.Delete(2)
	assert.Equal(t, int64(400), c.TotalPrice())

	q := c.Quote()
	assert.Equal(t, 2, q.TotalQuantity)
	assert.Equal(t, int64(400), q.TotalPrice)

	c.Clear()
	assert.Empty(t, c.Items())
	assert.Zero(t, c.TotalPrice())
}

func TestCart_ItemsIsACopy(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 100), 1))

	items := c.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, c.TotalQuantity())
}
