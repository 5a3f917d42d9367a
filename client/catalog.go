package client

import (
	"context"

	"tcm-webshop/models"
)

// Catalog is a point-in-time snapshot of the server's product data. Cart
// recomputation and add-time stock clamping always work against the snapshot
// the caller supplies, never a hidden cached one.
type Catalog struct {
	products []models.Product
	index    map[string]models.Product
}

// NewCatalog builds a snapshot from a product list, keeping its order.
func NewCatalog(products []models.Product) *Catalog {
	index := make(map[string]models.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return &Catalog{products: products, index: index}
}

// Products returns the snapshot's products in listing order.
func (c *Catalog) Products() []models.Product {
	return c.products
}

// Lookup returns the product for an id, reporting whether it exists in this
// snapshot.
func (c *Catalog) Lookup(id string) (models.Product, bool) {
	p, ok := c.index[id]
	return p, ok
}

// Len returns the number of products in the snapshot.
func (c *Catalog) Len() int {
	return len(c.products)
}

// CatalogClient fetches catalog snapshots from the shop API.
type CatalogClient struct {
	api *API
}

// NewCatalogClient creates a CatalogClient over an API client.
func NewCatalogClient(api *API) *CatalogClient {
	return &CatalogClient{api: api}
}

// Fetch retrieves a fresh catalog snapshot.
func (cc *CatalogClient) Fetch(ctx context.Context) (*Catalog, error) {
	var resp struct {
		Products []models.Product `json:"products"`
	}
	if err := cc.api.Do(ctx, "GET", "/api/products", nil, &resp); err != nil {
		return nil, err
	}
	return NewCatalog(resp.Products), nil
}
