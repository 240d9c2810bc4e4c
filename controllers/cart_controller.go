package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sneaker-shop/models"
	"sneaker-shop/services"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

func (ctrl *CartController) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Product not found",
		})
	case errors.Is(err, services.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Item not found",
		})
	case errors.Is(err, services.ErrInvalidSize), errors.Is(err, services.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrCartConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Message: "Cart was modified concurrently, please retry",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Server error",
		})
	}
}

// @Summary Get cart
// @Description Get the caller's cart, creating an empty one on first access
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.cartService.Get(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data:    cart,
	})
}

// @Summary Add item to cart
// @Description Add a product+size line or increment the quantity of an existing one
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Item to add"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/add [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	cart, err := ctrl.cartService.AddItem(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item added to cart",
		Data:    cart,
	})
}

// @Summary Update cart item
// @Description Set the quantity of a cart line
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param itemId path string true "Cart item ID"
// @Param request body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/update/{itemId} [put]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	cart, err := ctrl.cartService.UpdateItem(c.Request.Context(), c.GetString("user_id"), c.Param("itemId"), req.Quantity)
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart updated",
		Data:    cart,
	})
}

// @Summary Remove cart item
// @Description Remove a line from the caller's cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param itemId path string true "Cart item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/remove/{itemId} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	cart, err := ctrl.cartService.RemoveItem(c.Request.Context(), c.GetString("user_id"), c.Param("itemId"))
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item removed from cart",
		Data:    cart,
	})
}
