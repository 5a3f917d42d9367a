package models

import (
	"time"
)

// OrderLine is one item of a placed order with the price captured at order
// time, so later price changes do not rewrite order history.
type OrderLine struct {
	ProductID  string `bson:"product_id" json:"product_id"`
	Name       string `bson:"name" json:"name"`
	Qty        int    `bson:"qty" json:"qty"`
	PriceCents int64  `bson:"price_cents" json:"price_cents"`
}

// Order represents a placed order.
type Order struct {
	ID         string      `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     string      `bson:"user_id" json:"user_id"`
	Lines      []OrderLine `bson:"lines" json:"lines"`
	TotalCents int64       `bson:"total_cents" json:"total_cents"`
	CreatedAt  time.Time   `bson:"created_at" json:"created_at"`
}

// AdminOrder is an order joined with the customer details for the admin
// order listing.
type AdminOrder struct {
	Order      `bson:",inline"`
	FullName   string `bson:"fullname" json:"fullname"`
	Email      string `bson:"email" json:"email"`
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalcode" json:"postalcode"`
}
