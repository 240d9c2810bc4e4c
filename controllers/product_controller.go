package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sneaker-shop/libs"
	"sneaker-shop/models"
	"sneaker-shop/services"
)

type ProductController struct {
	productService *services.ProductService
}

func NewProductController(productService *services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

func productCacheKey(search string) string {
	return fmt.Sprintf("products_list_%s", search)
}

func invalidateProductCache() {
	if models.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := models.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		models.RedisClient.Del(ctx, iter.Val())
	}
}

// @Summary Get all products
// @Description Get all products, optionally filtered by a search term over name, brand, category and description
// @Tags Products
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {object} models.Response
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	cacheKey := productCacheKey(search)
	ctx := c.Request.Context()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	products, err := ctrl.productService.List(ctx, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Server error",
		})
		return
	}

	response := models.Response{
		Success: true,
		Message: "Products retrieved",
		Data:    products,
	}

	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get product by ID
// @Description Get product details
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctrl.productService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Message: "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Server error",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product retrieved",
		Data:    product,
	})
}

// @Summary Create product
// @Description Create a new product with up to 5 images (Manager)
// @Tags Manager - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Product name"
// @Param brand formData string true "Brand"
// @Param description formData string false "Description"
// @Param price formData number true "Price"
// @Param stock formData int false "Stock"
// @Param size formData string false "Comma-separated sizes"
// @Param category formData string true "Category"
// @Param images formData file false "Product images"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid price",
		})
		return
	}

	stock := 0
	if stockStr := c.PostForm("stock"); stockStr != "" {
		stock, err = strconv.Atoi(stockStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Message: "Invalid stock",
			})
			return
		}
	}

	images := []string{}
	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["images"]; len(files) > 0 {
			images, err = libs.SaveProductImages(c, files)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Success: false,
					Message: "Invalid upload",
					Error:   err.Error(),
				})
				return
			}
		}
	}

	req := models.CreateProductRequest{
		Name:        c.PostForm("name"),
		Brand:       c.PostForm("brand"),
		Description: c.PostForm("description"),
		Price:       price,
		Sizes:       services.ParseSizes(c.PostForm("size")),
		Stock:       stock,
		Category:    c.PostForm("category"),
		Images:      images,
	}

	product, err := ctrl.productService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Failed to create product",
			Error:   err.Error(),
		})
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// @Summary Update product
// @Description Partially update a product; new images replace existing ones unless keepExistingImages=true (Manager)
// @Tags Manager - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param keepExistingImages formData string false "Append new images instead of replacing"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	req := models.UpdateProductRequest{}

	if v, ok := c.GetPostForm("name"); ok {
		req.Name = &v
	}
	if v, ok := c.GetPostForm("brand"); ok {
		req.Brand = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		req.Description = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		req.Category = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Message: "Invalid price",
			})
			return
		}
		req.Price = &price
	}
	if v, ok := c.GetPostForm("stock"); ok {
		stock, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Message: "Invalid stock",
			})
			return
		}
		req.Stock = &stock
	}
	if v, ok := c.GetPostForm("size"); ok {
		sizes := services.ParseSizes(v)
		req.Sizes = &sizes
	}

	newImages := []string{}
	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["images"]; len(files) > 0 {
			newImages, err = libs.SaveProductImages(c, files)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Success: false,
					Message: "Invalid upload",
					Error:   err.Error(),
				})
				return
			}
		}
	}

	keepExisting := c.PostForm("keepExistingImages") == "true"

	product, removed, err := ctrl.productService.Update(c.Request.Context(), c.Param("id"), req, newImages, keepExisting)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Message: "Product not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Failed to update product",
			Error:   err.Error(),
		})
		return
	}

	for _, path := range removed {
		libs.RemoveUploadedFile(path)
	}

	invalidateProductCache()

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// @Summary Delete product
// @Description Delete a product and its stored images (Manager)
// @Tags Manager - Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	removed, err := ctrl.productService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Message: "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Server error",
		})
		return
	}

	for _, path := range removed {
		libs.RemoveUploadedFile(path)
	}

	invalidateProductCache()

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product removed",
	})
}
