package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sneaker-shop/models"
	"sneaker-shop/services"
)

type ChatController struct {
	chatService *services.ChatService
}

func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// @Summary Chat with the shopping assistant
// @Description Forward a single message to the AI assistant and return its reply
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Message"
// @Success 200 {object} models.ChatResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /chat [post]
func (ctrl *ChatController) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	reply, err := ctrl.chatService.Reply(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Message: "Message is required",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to process chat request",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Response: reply})
}
