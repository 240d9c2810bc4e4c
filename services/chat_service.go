package services

import (
	"context"
	"strings"
)

// ChatResponder is the upstream generative-model client. A nil responder
// means the client failed to initialize; the service then fails closed.
type ChatResponder interface {
	Reply(ctx context.Context, message string) (string, error)
}

type ChatService struct {
	responder ChatResponder
}

func NewChatService(responder ChatResponder) *ChatService {
	return &ChatService{responder: responder}
}

// Reply forwards a single message upstream. No conversation state is kept
// between calls.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	if s.responder == nil {
		return "", ErrChatUnavailable
	}
	return s.responder.Reply(ctx, message)
}
