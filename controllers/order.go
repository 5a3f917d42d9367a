// controllers/order.go
package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tcm-webshop/middleware"
	"tcm-webshop/models"
	"tcm-webshop/store"
	"tcm-webshop/utils"
)

// OrderController handles order placement and the admin order listing
type OrderController struct {
	Store        store.Store
	EmailService *utils.EmailService
	Logger       *zap.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(s store.Store, emailService *utils.EmailService, logger *zap.Logger) *OrderController {
	return &OrderController{Store: s, EmailService: emailService, Logger: logger}
}

// CreateOrder places an order from the submitted item list. Validation runs
// over every item before any stock is touched, so a rejected order leaves
// stock unchanged.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		respondError(w, http.StatusUnauthorized, "not_authenticated", "Nicht angemeldet")
		return
	}

	var body struct {
		Items models.OrderRequest `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid", "Ungültige Eingabe")
		return
	}

	ctx := r.Context()

	// phase 1: validate items and compute the total against current stock
	var lines []models.OrderLine
	var total int64
	for _, item := range body.Items {
		if item.Qty <= 0 {
			continue
		}
		product, err := oc.Store.ProductByID(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "unknown_product",
				fmt.Sprintf("Produkt %s existiert nicht", item.ProductID))
			return
		}
		if err != nil {
			oc.Logger.Error("order: product lookup failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "internal", "Fehler beim Laden des Produkts")
			return
		}
		if item.Qty > product.Stock {
			respondError(w, http.StatusBadRequest, "insufficient_stock",
				fmt.Sprintf("Nicht genug Lagerbestand für Produkt %s", product.Name))
			return
		}
		lines = append(lines, models.OrderLine{
			ProductID:  product.ID,
			Name:       product.Name,
			Qty:        item.Qty,
			PriceCents: product.PriceCents,
		})
		total += product.PriceCents * int64(item.Qty)
	}

	if len(lines) == 0 {
		respondError(w, http.StatusBadRequest, "empty_order", "Keine Artikel im Warenkorb")
		return
	}

	// phase 2: decrement stock; on a mid-sequence conflict the already
	// decremented lines are restored before rejecting
	for i, line := range lines {
		err := oc.Store.DecrementStock(ctx, line.ProductID, line.Qty)
		if err != nil {
			for j := 0; j < i; j++ {
				if _, rerr := oc.Store.AdjustStock(ctx, lines[j].ProductID, lines[j].Qty); rerr != nil {
					oc.Logger.Error("order: stock rollback failed",
						zap.String("product_id", lines[j].ProductID), zap.Error(rerr))
				}
			}
			if errors.Is(err, store.ErrInsufficientStock) || errors.Is(err, store.ErrNotFound) {
				respondError(w, http.StatusBadRequest, "insufficient_stock",
					fmt.Sprintf("Nicht genug Lagerbestand für Produkt %s", line.Name))
				return
			}
			oc.Logger.Error("order: stock decrement failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "internal", "Fehler beim Aktualisieren des Bestands")
			return
		}
	}

	order := models.Order{
		UserID:     claims.UserID,
		Lines:      lines,
		TotalCents: total,
		CreatedAt:  time.Now().UTC(),
	}
	orderID, err := oc.Store.CreateOrder(ctx, &order)
	if err != nil {
		oc.Logger.Error("order: create failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "Fehler beim Anlegen der Bestellung")
		return
	}

	oc.Logger.Info("order placed",
		zap.String("order_id", orderID),
		zap.String("user_id", claims.UserID),
		zap.Int64("total_cents", total))

	// confirmation mail is best effort and never blocks the response
	if oc.EmailService != nil {
		go func(email string, order models.Order) {
			if err := oc.EmailService.SendOrderConfirmationEmail(email, order); err != nil {
				oc.Logger.Warn("order: confirmation email failed",
					zap.String("order_id", order.ID), zap.Error(err))
			}
		}(claims.Email, order)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "order_id": orderID})
}

// ListOrders returns all orders with customer details (Admin only)
func (oc *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := oc.Store.Orders(r.Context())
	if err != nil {
		oc.Logger.Error("list orders failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "Fehler beim Laden der Bestellungen")
		return
	}
	if orders == nil {
		orders = []models.AdminOrder{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}
