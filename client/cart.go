package client

import (
	"go.uber.org/zap"

	"tcm-webshop/models"
)

// Line is one cart entry joined with its product detail from a catalog
// snapshot.
type Line struct {
	Product    models.Product
	Qty        int
	TotalCents int64
}

// CartStore owns the product -> quantity mapping for one session. It is an
// injectable object, not package state, and is not safe for concurrent use;
// one session drives it from one goroutine.
type CartStore struct {
	quantities map[string]int
	order      []string
	logger     *zap.Logger
}

// NewCartStore creates an empty cart.
func NewCartStore(logger *zap.Logger) *CartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartStore{
		quantities: make(map[string]int),
		logger:     logger,
	}
}

// Add increments the requested quantity for a product, clamped to the stock
// known in cat at this moment. Unknown products and non-positive quantities
// are no-ops. The clamp is not re-validated later; a stale cart is the
// server's to reject at order time.
func (c *CartStore) Add(cat *Catalog, productID string, qty int) {
	if qty <= 0 {
		c.logger.Debug("cart: ignoring non-positive quantity",
			zap.String("product_id", productID), zap.Int("qty", qty))
		return
	}
	product, ok := cat.Lookup(productID)
	if !ok {
		c.logger.Debug("cart: ignoring unknown product", zap.String("product_id", productID))
		return
	}

	next := c.quantities[productID] + qty
	if next > product.Stock {
		next = product.Stock
	}
	if next <= 0 {
		// stock is exhausted; never store a zero entry
		c.Remove(productID)
		return
	}
	if _, exists := c.quantities[productID]; !exists {
		c.order = append(c.order, productID)
	}
	c.quantities[productID] = next
}

// Remove drops a product from the cart.
func (c *CartStore) Remove(productID string) {
	if _, ok := c.quantities[productID]; !ok {
		return
	}
	delete(c.quantities, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart. Used after a confirmed order.
func (c *CartStore) Clear() {
	c.quantities = make(map[string]int)
	c.order = nil
}

// Len returns the number of distinct products in the cart.
func (c *CartStore) Len() int {
	return len(c.quantities)
}

// Quantity returns the stored quantity for a product, 0 when absent.
func (c *CartStore) Quantity(productID string) int {
	return c.quantities[productID]
}

// Snapshot joins the cart against the supplied catalog snapshot and returns
// display lines plus the total in cents. Entries whose product is absent from
// cat are treated as discontinued and excluded from both lines and total.
// Callers decide the snapshot's freshness; the shop always passes a freshly
// fetched one so prices are never stale.
func (c *CartStore) Snapshot(cat *Catalog) ([]Line, int64) {
	var lines []Line
	var total int64
	for _, id := range c.order {
		qty := c.quantities[id]
		product, ok := cat.Lookup(id)
		if !ok {
			continue
		}
		lineTotal := product.PriceCents * int64(qty)
		lines = append(lines, Line{Product: product, Qty: qty, TotalCents: lineTotal})
		total += lineTotal
	}
	return lines, total
}

// ToOrderRequest derives the order item sequence from the current entries.
func (c *CartStore) ToOrderRequest() models.OrderRequest {
	items := make(models.OrderRequest, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, models.OrderItem{ProductID: id, Qty: c.quantities[id]})
	}
	return items
}
