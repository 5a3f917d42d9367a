package store

import (
	"context"
	"errors"

	"tcm-webshop/models"
)

var (
	ErrNotFound          = errors.New("store: not found")
	ErrDuplicateEmail    = errors.New("store: email already registered")
	ErrInsufficientStock = errors.New("store: insufficient stock")
	ErrProductOrdered    = errors.New("store: product referenced by an order")
)

// Store is the persistence boundary shared by the mongo and in-memory
// backends. All IDs are opaque strings.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) (string, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)

	Products(ctx context.Context) ([]models.Product, error)
	ProductByID(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (string, error)
	// DeleteProduct refuses with ErrProductOrdered when the product appears
	// in any placed order.
	DeleteProduct(ctx context.Context, id string) error
	// AdjustStock applies a delta and returns the new stock level.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
	// DecrementStock atomically reduces stock by qty, failing with
	// ErrInsufficientStock when fewer than qty units remain.
	DecrementStock(ctx context.Context, id string, qty int) error

	CreateOrder(ctx context.Context, order *models.Order) (string, error)
	Orders(ctx context.Context) ([]models.AdminOrder, error)
}
