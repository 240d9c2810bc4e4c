package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sneaker-shop/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestParseSizes(t *testing.T) {
	cases := []struct {
		raw  string
		want []float64
	}{
		{"40,41,42.5", []float64{40, 41, 42.5}},
		{" 40 , 41 ", []float64{40, 41}},
		{"40,abc,41", []float64{40, 41}},
		{"", []float64{}},
		{"abc", []float64{}},
	}
	for _, tc := range cases {
		got := ParseSizes(tc.raw)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseSizes(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(newStubProductStore())

	if _, err := svc.Create(context.Background(), models.CreateProductRequest{Name: "  "}); err == nil {
		t.Error("expected an error for a blank name")
	}
	if _, err := svc.Create(context.Background(), models.CreateProductRequest{Name: "Dunk Low", Price: -1}); err == nil {
		t.Error("expected an error for a negative price")
	}
	if _, err := svc.Create(context.Background(), models.CreateProductRequest{Name: "Dunk Low", Stock: -1}); err == nil {
		t.Error("expected an error for negative stock")
	}
}

func TestCreateProductDefaultsImages(t *testing.T) {
	store := newStubProductStore()
	svc := NewProductService(store)

	product, err := svc.Create(context.Background(), models.CreateProductRequest{
		Name:  "Dunk Low",
		Brand: "Nike",
		Price: 110,
		Sizes: []float64{42, 43},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.Images == nil {
		t.Fatal("expected an empty image slice, not nil")
	}
	if product.ID.IsZero() {
		t.Fatal("expected the store to assign an id")
	}
}

func TestUpdateProductReplacesImages(t *testing.T) {
	product := newTestProduct(100, 42)
	product.Images = []string{"/uploads/old-1.png", "/uploads/old-2.png"}
	store := newStubProductStore(product)
	svc := NewProductService(store)

	_, removed, err := svc.Update(context.Background(), product.ID.Hex(), models.UpdateProductRequest{},
		[]string{"/uploads/new.png"}, false)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !reflect.DeepEqual(removed, []string{"/uploads/old-1.png", "/uploads/old-2.png"}) {
		t.Fatalf("expected the old images to be reported removed, got %v", removed)
	}
	if !reflect.DeepEqual(store.lastUpdate["images"], []string{"/uploads/new.png"}) {
		t.Fatalf("expected images to be replaced, got %v", store.lastUpdate["images"])
	}
}

func TestUpdateProductKeepsExistingImages(t *testing.T) {
	product := newTestProduct(100, 42)
	product.Images = []string{"/uploads/old.png"}
	store := newStubProductStore(product)
	svc := NewProductService(store)

	_, removed, err := svc.Update(context.Background(), product.ID.Hex(), models.UpdateProductRequest{},
		[]string{"/uploads/new.png"}, true)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(removed) != 0 {
		t.Fatalf("appending must not remove images, got %v", removed)
	}
	if !reflect.DeepEqual(store.lastUpdate["images"], []string{"/uploads/old.png", "/uploads/new.png"}) {
		t.Fatalf("expected old and new images together, got %v", store.lastUpdate["images"])
	}
}

func TestUpdateProductPartialFields(t *testing.T) {
	product := newTestProduct(100, 42)
	store := newStubProductStore(product)
	svc := NewProductService(store)

	_, _, err := svc.Update(context.Background(), product.ID.Hex(), models.UpdateProductRequest{
		Price: floatPtr(90),
	}, nil, false)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(store.lastUpdate) != 1 {
		t.Fatalf("expected only the price to change, got %v", store.lastUpdate)
	}
	if store.lastUpdate["price"] != 90.0 {
		t.Fatalf("expected price 90, got %v", store.lastUpdate["price"])
	}
}

func TestUpdateProductRejectsNegativePrice(t *testing.T) {
	product := newTestProduct(100, 42)
	svc := NewProductService(newStubProductStore(product))

	_, _, err := svc.Update(context.Background(), product.ID.Hex(), models.UpdateProductRequest{
		Price: floatPtr(-5),
	}, nil, false)
	if err == nil {
		t.Fatal("expected an error for a negative price")
	}
}

func TestDeleteProductReturnsImages(t *testing.T) {
	product := newTestProduct(100, 42)
	product.Images = []string{"/uploads/a.png", "/uploads/b.png"}
	store := newStubProductStore(product)
	svc := NewProductService(store)

	images, err := svc.Delete(context.Background(), product.ID.Hex())
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !reflect.DeepEqual(images, []string{"/uploads/a.png", "/uploads/b.png"}) {
		t.Fatalf("expected the product's images back, got %v", images)
	}
	if _, ok := store.byID[product.ID]; ok {
		t.Fatal("expected the product to be gone from the store")
	}
}

func TestGetProductBadID(t *testing.T) {
	svc := NewProductService(newStubProductStore())

	_, err := svc.Get(context.Background(), "not-a-hex-id")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestGetProductUnknownID(t *testing.T) {
	svc := NewProductService(newStubProductStore())

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
