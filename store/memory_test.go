package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcm-webshop/models"
)

func TestMemoryCreateUserRejectsDuplicateEmail(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.CreateUser(ctx, &models.User{Email: "User@Example.com", Password: "x"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// email comparison is case-insensitive via normalization
	_, err = m.CreateUser(ctx, &models.User{Email: "user@example.com", Password: "y"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	user, err := m.UserByEmail(ctx, "USER@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
}

func TestMemoryUserLookupNotFound(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.UserByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.UserByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProductsKeepInsertionOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, err := m.CreateProduct(ctx, &models.Product{Name: "A", PriceCents: 100, Stock: 1})
	require.NoError(t, err)
	b, err := m.CreateProduct(ctx, &models.Product{Name: "B", PriceCents: 200, Stock: 2})
	require.NoError(t, err)

	products, err := m.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, a, products[0].ID)
	assert.Equal(t, b, products[1].ID)
}

func TestMemoryDecrementStock(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.CreateProduct(ctx, &models.Product{Name: "A", PriceCents: 100, Stock: 3})
	require.NoError(t, err)

	require.NoError(t, m.DecrementStock(ctx, id, 2))
	p, err := m.ProductByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)

	err = m.DecrementStock(ctx, id, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	p, _ = m.ProductByID(ctx, id)
	assert.Equal(t, 1, p.Stock, "failed decrement leaves stock untouched")

	assert.ErrorIs(t, m.DecrementStock(ctx, "ghost", 1), ErrNotFound)
}

func TestMemoryAdjustStock(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.CreateProduct(ctx, &models.Product{Name: "A", PriceCents: 100, Stock: 3})
	require.NoError(t, err)

	newStock, err := m.AdjustStock(ctx, id, 5)
	require.NoError(t, err)
	assert.Equal(t, 8, newStock)

	_, err = m.AdjustStock(ctx, "ghost", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDeleteProductRefusedWhenOrdered(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.CreateProduct(ctx, &models.Product{Name: "A", PriceCents: 100, Stock: 3})
	require.NoError(t, err)

	_, err = m.CreateOrder(ctx, &models.Order{
		UserID:     "u1",
		Lines:      []models.OrderLine{{ProductID: id, Name: "A", Qty: 1, PriceCents: 100}},
		TotalCents: 100,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, m.DeleteProduct(ctx, id), ErrProductOrdered)

	other, err := m.CreateProduct(ctx, &models.Product{Name: "B", PriceCents: 200, Stock: 2})
	require.NoError(t, err)
	assert.NoError(t, m.DeleteProduct(ctx, other))
	assert.ErrorIs(t, m.DeleteProduct(ctx, other), ErrNotFound)
}

func TestMemoryOrdersJoinCustomerDetails(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	userID, err := m.CreateUser(ctx, &models.User{
		Email:      "user@example.com",
		Password:   "x",
		FullName:   "Max Muster",
		Address:    "Bahnhofstrasse 1",
		City:       "Zürich",
		PostalCode: "8000",
	})
	require.NoError(t, err)

	orderID, err := m.CreateOrder(ctx, &models.Order{
		UserID:     userID,
		Lines:      []models.OrderLine{{ProductID: "p1", Name: "A", Qty: 2, PriceCents: 100}},
		TotalCents: 200,
	})
	require.NoError(t, err)

	orders, err := m.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
	assert.Equal(t, "Max Muster", orders[0].FullName)
	assert.Equal(t, "user@example.com", orders[0].Email)
	assert.Equal(t, "8000", orders[0].PostalCode)
	assert.Equal(t, int64(200), orders[0].TotalCents)
}

func TestEnsureSeed(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, EnsureSeed(ctx, m, "hash"))

	products, err := m.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 12)

	admin, err := m.UserByEmail(ctx, AdminEmail)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	// a second run must not duplicate anything
	require.NoError(t, EnsureSeed(ctx, m, "hash"))
	products, _ = m.Products(ctx)
	assert.Len(t, products, 12)
}
