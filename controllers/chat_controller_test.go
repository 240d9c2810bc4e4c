package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"sneaker-shop/models"
	"sneaker-shop/services"
)

type stubResponder struct {
	reply string
	err   error
}

func (s *stubResponder) Reply(ctx context.Context, message string) (string, error) {
	return s.reply, s.err
}

func chatRouter(responder services.ChatResponder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := NewChatController(services.NewChatService(responder))
	router.POST("/api/chat", ctrl.Chat)
	return router
}

func TestChatEndpoint(t *testing.T) {
	router := chatRouter(&stubResponder{reply: "We stock Jordans in sizes 40 to 47."})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"Do you have Jordans?"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body models.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Response != "We stock Jordans in sizes 40 to 47." {
		t.Fatalf("unexpected reply %q", body.Response)
	}
}

func TestChatEndpointEmptyMessage(t *testing.T) {
	router := chatRouter(&stubResponder{reply: "unused"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestChatEndpointWithoutClient(t *testing.T) {
	router := chatRouter(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
}
