package libs

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// systemPrompt establishes the assistant's persona; it is sent with every
// request since the proxy keeps no conversation state.
const systemPrompt = `You are an AI shopping assistant for a sneaker store. Your role is to:
1. Help customers find the right sneakers based on their preferences
2. Answer questions about products, sizes, and availability
3. Provide style advice and recommendations
4. Assist with order-related queries
5. Be friendly, professional, and knowledgeable about sneakers

Keep responses concise and focused on helping customers with their shopping experience.`

// ChatClient wraps the Gemini API for the chat proxy. It is constructed once
// at composition time and injected into the chat controller.
type ChatClient struct {
	client *genai.Client
	model  string
}

func NewChatClient(ctx context.Context, apiKey, model string) (*ChatClient, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &ChatClient{client: client, model: model}, nil
}

// Reply sends a single message to the model and returns its text response.
func (c *ChatClient) Reply(ctx context.Context, message string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(message),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr[float32](0.7),
			MaxOutputTokens:   1000,
		})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", errors.New("model returned an empty response")
	}
	return text, nil
}
