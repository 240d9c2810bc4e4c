package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"sneaker-shop/models"
)

type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{collection: db.Collection("carts")}
}

func (r *CartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) Create(ctx context.Context, cart *models.Cart) error {
	now := time.Now()
	cart.ID = primitive.NewObjectID()
	cart.CreatedAt = now
	cart.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, cart)
	return err
}

// Save replaces the cart document only if nobody else saved it since it was
// read. On success the in-memory version is bumped to match the stored one;
// on a lost race it returns ErrVersionConflict and leaves the cart untouched.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	filter := bson.M{"_id": cart.ID, "version": cart.Version}

	cart.Version++
	cart.UpdatedAt = time.Now()

	res, err := r.collection.ReplaceOne(ctx, filter, cart)
	if err != nil {
		cart.Version--
		return err
	}
	if res.MatchedCount == 0 {
		cart.Version--
		return ErrVersionConflict
	}
	return nil
}
