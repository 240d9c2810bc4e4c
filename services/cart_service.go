package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sneaker-shop/models"
	"sneaker-shop/repositories"
)

// CartStore is the persistence surface of the cart engine. Save must fail
// with repositories.ErrVersionConflict when it loses a concurrent update.
type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	Save(ctx context.Context, cart *models.Cart) error
}

// maxSaveAttempts bounds the optimistic-concurrency retry on cart mutations.
const maxSaveAttempts = 3

type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the caller's cart, creating an empty one on first access.
func (s *CartService) Get(ctx context.Context, userIDHex string) (*models.Cart, error) {
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return nil, ErrUserNotFound
	}

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem merges the quantity into an existing product+size line or appends
// a new one, then recomputes the total.
func (s *CartService) AddItem(ctx context.Context, userIDHex string, req models.AddCartItemRequest) (*models.Cart, error) {
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if !product.HasSize(req.Size) {
		return nil, ErrInvalidSize
	}

	return s.mutate(ctx, userIDHex, func(cart *models.Cart) error {
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID && cart.Items[i].Size == req.Size {
				cart.Items[i].Quantity += req.Quantity
				return nil
			}
		}
		cart.Items = append(cart.Items, models.CartItem{
			ID:        primitive.NewObjectID(),
			ProductID: productID,
			Quantity:  req.Quantity,
			Size:      req.Size,
		})
		return nil
	})
}

// UpdateItem sets the quantity of a line in the caller's cart.
func (s *CartService) UpdateItem(ctx context.Context, userIDHex, itemIDHex string, quantity int) (*models.Cart, error) {
	itemID, err := primitive.ObjectIDFromHex(itemIDHex)
	if err != nil {
		return nil, ErrCartItemNotFound
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return s.mutate(ctx, userIDHex, func(cart *models.Cart) error {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items[i].Quantity = quantity
				return nil
			}
		}
		return ErrCartItemNotFound
	})
}

// RemoveItem filters a line out of the caller's cart.
func (s *CartService) RemoveItem(ctx context.Context, userIDHex, itemIDHex string) (*models.Cart, error) {
	itemID, err := primitive.ObjectIDFromHex(itemIDHex)
	if err != nil {
		return nil, ErrCartItemNotFound
	}

	return s.mutate(ctx, userIDHex, func(cart *models.Cart) error {
		items := cart.Items[:0]
		found := false
		for _, item := range cart.Items {
			if item.ID == itemID {
				found = true
				continue
			}
			items = append(items, item)
		}
		if !found {
			return ErrCartItemNotFound
		}
		cart.Items = items
		return nil
	})
}

// mutate runs the read-modify-recompute-save cycle, retrying a bounded
// number of times when the versioned save loses a concurrent update.
func (s *CartService) mutate(ctx context.Context, userIDHex string, fn func(cart *models.Cart) error) (*models.Cart, error) {
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return nil, ErrUserNotFound
	}

	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		cart, err := s.getOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		if err := fn(cart); err != nil {
			return nil, err
		}

		if err := s.recomputeTotal(ctx, cart); err != nil {
			return nil, err
		}

		err = s.carts.Save(ctx, cart)
		if errors.Is(err, repositories.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if err := s.populate(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}

	return nil, ErrCartConflict
}

func (s *CartService) getOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	cart = &models.Cart{
		UserID: userID,
		Items:  []models.CartItem{},
		Total:  0,
	}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// recomputeTotal derives the cached total from current product prices.
// Lines whose product no longer exists contribute nothing.
func (s *CartService) recomputeTotal(ctx context.Context, cart *models.Cart) error {
	if len(cart.Items) == 0 {
		cart.Total = 0
		return nil
	}

	products, err := s.products.FindByIDs(ctx, cart.ProductIDs())
	if err != nil {
		return err
	}

	total := 0.0
	for _, item := range cart.Items {
		if product, ok := products[item.ProductID]; ok {
			total += product.Price * float64(item.Quantity)
		}
	}
	cart.Total = total
	return nil
}

func (s *CartService) populate(ctx context.Context, cart *models.Cart) error {
	if len(cart.Items) == 0 {
		return nil
	}

	products, err := s.products.FindByIDs(ctx, cart.ProductIDs())
	if err != nil {
		return err
	}

	for i := range cart.Items {
		if product, ok := products[cart.Items[i].ProductID]; ok {
			cart.Items[i].Product = product.Summary()
		}
	}
	return nil
}
