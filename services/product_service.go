package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sneaker-shop/models"
	"sneaker-shop/repositories"
)

// ProductStore is the persistence surface the product and cart services need.
type ProductStore interface {
	Find(ctx context.Context, search string) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) List(ctx context.Context, search string) ([]models.Product, error) {
	return s.products.Find(ctx, search)
}

func (s *ProductService) Get(ctx context.Context, idHex string) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrProductNotFound
	}

	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("name is required")
	}
	if req.Price < 0 {
		return nil, errors.New("price must not be negative")
	}
	if req.Stock < 0 {
		return nil, errors.New("stock must not be negative")
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Brand:       strings.TrimSpace(req.Brand),
		Description: req.Description,
		Price:       req.Price,
		Sizes:       req.Sizes,
		Stock:       req.Stock,
		Images:      images,
		Category:    strings.TrimSpace(req.Category),
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies a partial update. When newImages is non-empty they either
// replace the existing images or, with keepExisting, are appended. The
// returned slice holds image paths no longer referenced so the caller can
// remove them from disk.
func (s *ProductService) Update(ctx context.Context, idHex string, req models.UpdateProductRequest, newImages []string, keepExisting bool) (*models.Product, []string, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, nil, ErrProductNotFound
	}

	existing, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, ErrProductNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		updates["brand"] = strings.TrimSpace(*req.Brand)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, nil, errors.New("price must not be negative")
		}
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, nil, errors.New("stock must not be negative")
		}
		updates["stock"] = *req.Stock
	}
	if req.Sizes != nil {
		updates["size"] = *req.Sizes
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}

	var removed []string
	if len(newImages) > 0 {
		if keepExisting {
			updates["images"] = append(append([]string{}, existing.Images...), newImages...)
		} else {
			updates["images"] = newImages
			removed = existing.Images
		}
	}

	if err := s.products.Update(ctx, id, updates); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrProductNotFound
		}
		return nil, nil, err
	}

	updated, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, removed, nil
}

// Delete removes the product and returns its image paths for disk cleanup.
// Carts referencing the product are left alone; their lines go stale.
func (s *ProductService) Delete(ctx context.Context, idHex string) ([]string, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrProductNotFound
	}

	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product.Images, nil
}

// ParseSizes turns a comma-separated size string into numbers, silently
// dropping entries that are not numeric.
func ParseSizes(raw string) []float64 {
	sizes := []float64{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		size, err := strconv.ParseFloat(part, 64)
		if err != nil {
			continue
		}
		sizes = append(sizes, size)
	}
	return sizes
}
