package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tcm-webshop/models"
)

// Memory is an in-memory Store. It backs tests and local runs without a
// database; the server behaves identically on either backend.
type Memory struct {
	mu       sync.Mutex
	users    map[string]models.User
	products map[string]models.Product
	orders   map[string]models.Order
	// insertion sequence, so product listings keep a stable order
	productSeq []string
	orderSeq   []string
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]models.User),
		products: make(map[string]models.Product),
		orders:   make(map[string]models.Order),
	}
}

func (m *Memory) CreateUser(ctx context.Context, user *models.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range m.users {
		if u.Email == email {
			return "", ErrDuplicateEmail
		}
	}
	user.ID = uuid.NewString()
	user.Email = email
	m.users[user.ID] = *user
	return user.ID, nil
}

func (m *Memory) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := u
	return &out, nil
}

func (m *Memory) Products(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Product, 0, len(m.productSeq))
	for _, id := range m.productSeq {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := p
	return &out, nil
}

func (m *Memory) CreateProduct(ctx context.Context, p *models.Product) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = uuid.NewString()
	m.products[p.ID] = *p
	m.productSeq = append(m.productSeq, p.ID)
	return p.ID, nil
}

func (m *Memory) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	for _, o := range m.orders {
		for _, line := range o.Lines {
			if line.ProductID == id {
				return ErrProductOrdered
			}
		}
	}
	delete(m.products, id)
	return nil
}

func (m *Memory) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return 0, ErrNotFound
	}
	p.Stock += delta
	m.products[id] = p
	return p.Stock, nil
}

func (m *Memory) DecrementStock(ctx context.Context, id string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return ErrNotFound
	}
	if p.Stock < qty {
		return ErrInsufficientStock
	}
	p.Stock -= qty
	m.products[id] = p
	return nil
}

func (m *Memory) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order.ID = uuid.NewString()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	m.orders[order.ID] = *order
	m.orderSeq = append(m.orderSeq, order.ID)
	return order.ID, nil
}

func (m *Memory) Orders(ctx context.Context) ([]models.AdminOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.AdminOrder, 0, len(m.orderSeq))
	for _, id := range m.orderSeq {
		o, ok := m.orders[id]
		if !ok {
			continue
		}
		ao := models.AdminOrder{Order: o}
		if u, ok := m.users[o.UserID]; ok {
			ao.FullName = u.FullName
			ao.Email = u.Email
			ao.Address = u.Address
			ao.City = u.City
			ao.PostalCode = u.PostalCode
		}
		out = append(out, ao)
	}
	// newest first for the admin listing
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
