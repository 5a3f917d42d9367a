package models

// Product is one catalog entry as the API exposes it. The ID is an opaque
// stable key; price is in integer cents and never converted to a float
// anywhere in the system.
type Product struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	PriceCents  int64  `bson:"price_cents" json:"price_cents"`
	Stock       int    `bson:"stock" json:"stock"`
}
