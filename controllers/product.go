package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tcm-webshop/models"
	"tcm-webshop/store"
)

// ProductController handles product-related requests
type ProductController struct {
	Store  store.Store
	Logger *zap.Logger
}

// NewProductController creates a new ProductController
func NewProductController(s store.Store, logger *zap.Logger) *ProductController {
	return &ProductController{Store: s, Logger: logger}
}

// ListProducts returns the catalog as {"products": [...]}
func (pc *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := pc.Store.Products(r.Context())
	if err != nil {
		pc.Logger.Error("list products failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "Fehler beim Laden der Produkte")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid", "Ungültige Eingabe")
		return
	}
	if product.Name == "" || product.PriceCents <= 0 {
		respondError(w, http.StatusBadRequest, "invalid", "Ungültige Daten")
		return
	}
	if product.Stock < 0 {
		respondError(w, http.StatusBadRequest, "invalid", "Ungültige Daten")
		return
	}

	id, err := pc.Store.CreateProduct(r.Context(), &product)
	if err != nil {
		pc.Logger.Error("create product failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "Fehler beim Anlegen des Produkts")
		return
	}

	pc.Logger.Info("product created", zap.String("product_id", id), zap.String("name", product.Name))
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "product_id": id})
}

// DeleteProduct handles deleting a product (Admin only). Products that appear
// in a placed order cannot be deleted.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := pc.Store.DeleteProduct(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "unknown_product", "Produkt nicht gefunden")
		return
	}
	if errors.Is(err, store.ErrProductOrdered) {
		respondError(w, http.StatusBadRequest, "product_ordered", "Produkt kann nicht gelöscht werden, da es bereits bestellt wurde")
		return
	}
	if err != nil {
		pc.Logger.Error("delete product failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "Fehler beim Löschen des Produkts")
		return
	}

	pc.Logger.Info("product deleted", zap.String("product_id", id))
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "message": "Produkt gelöscht"})
}

// UpdateStock increases a product's stock by a positive delta (Admin only)
func (pc *ProductController) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Change int `json:"change"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid", "Ungültige Eingabe")
		return
	}
	if body.Change <= 0 {
		respondError(w, http.StatusBadRequest, "invalid", "Änderung muss positiv sein")
		return
	}

	newStock, err := pc.Store.AdjustStock(r.Context(), id, body.Change)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "unknown_product", "Produkt nicht gefunden")
		return
	}
	if err != nil {
		pc.Logger.Error("update stock failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "Fehler beim Aktualisieren des Bestands")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "new_stock": newStock})
}
