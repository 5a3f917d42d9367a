package client

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"tcm-webshop/models"
)

var (
	// ErrEmptyCart means submission was blocked client-side; no network
	// call was made.
	ErrEmptyCart = errors.New("client: cart is empty")
	// ErrSubmitInFlight means a submission is already pending.
	ErrSubmitInFlight = errors.New("client: order submission already in progress")
)

// Order failure codes, mirroring the order boundary.
const (
	OrderCodeInsufficientStock = "insufficient_stock"
	OrderCodeUnknownProduct    = "unknown_product"
	OrderCodeInvalid           = "invalid"
	OrderCodeTransport         = "transport"
)

// OrderError is a rejected or failed order submission. The cart is left
// untouched so the user can correct and retry.
type OrderError struct {
	Code   string
	Reason string
	cause  error
}

func (e *OrderError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "Bestellung fehlgeschlagen"
}

func (e *OrderError) Unwrap() error { return e.cause }

// SubmitResult is a confirmed order. Catalog is the post-order refresh and is
// nil when that refresh failed; the order itself still succeeded.
type SubmitResult struct {
	OrderID string
	Catalog *Catalog
}

// OrderSubmitter serializes a cart into an order request, submits it, and
// reconciles the result with the cart.
type OrderSubmitter struct {
	api      *API
	catalog  *CatalogClient
	logger   *zap.Logger
	inFlight atomic.Bool
}

// NewOrderSubmitter creates an OrderSubmitter.
func NewOrderSubmitter(api *API, catalog *CatalogClient, logger *zap.Logger) *OrderSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderSubmitter{api: api, catalog: catalog, logger: logger}
}

// Submit sends the cart's contents to the order boundary. An empty cart fails
// fast with ErrEmptyCart and a pending submission with ErrSubmitInFlight,
// both before any network call. On success the cart is cleared and the
// catalog re-fetched to reflect the server's stock decrement; on any failure
// the cart is left exactly as it was and the reason is surfaced verbatim.
func (s *OrderSubmitter) Submit(ctx context.Context, cart *CartStore) (*SubmitResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	items := cart.ToOrderRequest()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var resp struct {
		OK      bool   `json:"ok"`
		OrderID string `json:"order_id"`
	}
	err := s.api.Do(ctx, "POST", "/api/order", map[string]models.OrderRequest{"items": items}, &resp)
	if err != nil {
		return nil, s.asOrderError(err)
	}

	s.logger.Info("order accepted", zap.String("order_id", resp.OrderID))
	cart.Clear()

	result := &SubmitResult{OrderID: resp.OrderID}
	fresh, err := s.catalog.Fetch(ctx)
	if err != nil {
		// the order stands; the next render fetches again anyway
		s.logger.Warn("catalog refresh after order failed", zap.Error(err))
	} else {
		result.Catalog = fresh
	}
	return result, nil
}

// asOrderError maps boundary failures onto OrderError. Transport-level
// failures and application-level rejections look the same to the caller.
func (s *OrderSubmitter) asOrderError(err error) *OrderError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		code := apiErr.Code
		switch code {
		case OrderCodeInsufficientStock, OrderCodeUnknownProduct:
		case "empty_order":
			code = OrderCodeInvalid
		case "":
			code = OrderCodeTransport
		default:
			code = OrderCodeInvalid
		}
		return &OrderError{Code: code, Reason: apiErr.Message, cause: err}
	}
	return &OrderError{Code: OrderCodeTransport, cause: err}
}
