package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	ProductID primitive.ObjectID `json:"product_id" bson:"product"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Size      float64            `json:"size" bson:"size"`
	// Product is resolved from the products collection when the cart is
	// returned to a client; it is never stored on the cart document.
	Product *ProductSummary `json:"product,omitempty" bson:"-"`
}

type Cart struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID primitive.ObjectID `json:"user_id" bson:"user"`
	Items  []CartItem         `json:"items" bson:"items"`
	// Total is a cached value recomputed from current product prices on
	// every mutation. It can go stale if a price changes afterwards.
	Total float64 `json:"total" bson:"total"`
	// Version backs the optimistic concurrency check on save.
	Version   int64     `json:"-" bson:"version"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ProductIDs returns the distinct product ids referenced by the cart lines.
func (c *Cart) ProductIDs() []primitive.ObjectID {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	for _, item := range c.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}
