package models

// OrderItem is one (product, quantity) pair as sent to the order endpoint.
type OrderItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Qty       int    `bson:"qty" json:"qty"`
}

// OrderRequest is the ordered item sequence derived from a cart at the moment
// of submission.
type OrderRequest []OrderItem
