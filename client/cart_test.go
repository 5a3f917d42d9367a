package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcm-webshop/models"
)

func testCatalog() *Catalog {
	return NewCatalog([]models.Product{
		{ID: "productA", Name: "PorschE 911", PriceCents: 500, Stock: 3},
		{ID: "productB", Name: "Tupol-Volt 144", PriceCents: 1000, Stock: 10},
		{ID: "productC", Name: "E-Nuke", PriceCents: 700, Stock: 0},
	})
}

func TestCartAddClampsToStock(t *testing.T) {
	cart := NewCartStore(nil)
	cat := testCatalog()

	cart.Add(cat, "productA", 5)
	assert.Equal(t, 3, cart.Quantity("productA"), "requested 5 with stock 3 must clamp to 3")

	// additive adds clamp too
	cart.Add(cat, "productA", 1)
	assert.Equal(t, 3, cart.Quantity("productA"))
}

func TestCartAddAccumulates(t *testing.T) {
	cart := NewCartStore(nil)
	cat := testCatalog()

	cart.Add(cat, "productB", 2)
	cart.Add(cat, "productB", 3)
	assert.Equal(t, 5, cart.Quantity("productB"))
	assert.Equal(t, 1, cart.Len())
}

func TestCartAddUnknownProductIsNoop(t *testing.T) {
	cart := NewCartStore(nil)
	cat := testCatalog()

	cart.Add(cat, "ghost", 2)
	assert.Equal(t, 0, cart.Len())
	assert.Equal(t, 0, cart.Quantity("ghost"))
}

func TestCartAddNonPositiveQuantityIsNoop(t *testing.T) {
	cart := NewCartStore(nil)
	cat := testCatalog()

	cart.Add(cat, "productA", 0)
	cart.Add(cat, "productA", -2)
	assert.Equal(t, 0, cart.Len())
}

func TestCartAddOutOfStockProductNotStored(t *testing.T) {
	cart := NewCartStore(nil)
	cat := testCatalog()

	cart.Add(cat, "productC", 1)
	assert.Equal(t, 0, cart.Len(), "stock 0 clamps to 0, which is removal, not a stored zero")
}

func TestCartSnapshotTotal(t *testing.T) {
	cart := NewCartStore(nil)
	cat := testCatalog()

	cart.Add(cat, "productA", 2)
	cart.Add(cat, "productB", 1)

	lines, total := cart.Snapshot(cat)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(2000), total)
	assert.Equal(t, "productA", lines[0].Product.ID, "insertion order preserved")
	assert.Equal(t, int64(1000), lines[0].TotalCents)
	assert.Equal(t, int64(1000), lines[1].TotalCents)
}

func TestCartSnapshotSkipsDiscontinuedProducts(t *testing.T) {
	cart := NewCartStore(nil)
	cart.Add(testCatalog(), "productA", 2)
	cart.Add(testCatalog(), "productB", 1)

	// productA vanished from the fresh snapshot
	fresh := NewCatalog([]models.Product{
		{ID: "productB", Name: "Tupol-Volt 144", PriceCents: 1000, Stock: 10},
	})

	lines, total := cart.Snapshot(fresh)
	require.Len(t, lines, 1)
	assert.Equal(t, "productB", lines[0].Product.ID)
	assert.Equal(t, int64(1000), total)
}

func TestCartSnapshotUsesSuppliedPrices(t *testing.T) {
	cart := NewCartStore(nil)
	cart.Add(testCatalog(), "productB", 2)

	// price changed server-side since the line was added
	fresh := NewCatalog([]models.Product{
		{ID: "productB", Name: "Tupol-Volt 144", PriceCents: 1200, Stock: 10},
	})

	_, total := cart.Snapshot(fresh)
	assert.Equal(t, int64(2400), total)
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := NewCartStore(nil)
	cat := testCatalog()

	cart.Add(cat, "productA", 1)
	cart.Add(cat, "productB", 1)

	cart.Remove("productA")
	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, 0, cart.Quantity("productA"))

	cart.Clear()
	assert.Equal(t, 0, cart.Len())
	_, total := cart.Snapshot(cat)
	assert.Equal(t, int64(0), total)
}

func TestCartToOrderRequest(t *testing.T) {
	cart := NewCartStore(nil)
	cat := testCatalog()

	assert.Empty(t, cart.ToOrderRequest())

	cart.Add(cat, "productB", 4)
	cart.Add(cat, "productA", 1)

	items := cart.ToOrderRequest()
	require.Len(t, items, 2)
	assert.Equal(t, models.OrderItem{ProductID: "productB", Qty: 4}, items[0])
	assert.Equal(t, models.OrderItem{ProductID: "productA", Qty: 1}, items[1])
}
