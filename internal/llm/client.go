package llm

import (
	"context"
	"fmt"

	"assistant-backend/internal/models"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Config for the Gemini client.
type Config struct {
	APIKey    string
	ModelName string // Default: "gemini-2.0-flash"
}

// Client wraps the Gemini API client behind the chat turn boundary.
// Each turn is a single request; retry policy is owned by the caller
// (and the caller deliberately has none).
type Client struct {
	client    *genai.Client
	logger    *zap.Logger
	modelName string
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	if cfg.ModelName == "" {
		cfg.ModelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logger.Info("Gemini client initialized", zap.String("model", cfg.ModelName))

	return &Client{
		client:    client,
		logger:    logger,
		modelName: cfg.ModelName,
	}, nil
}

// Close closes the Gemini client.
func (c *Client) Close() error {
	return c.client.Close()
}

// SendTurn sends one chat turn with the prior transcript as history and
// returns the model's reply text.
func (c *Client) SendTurn(ctx context.Context, systemPrompt string, prior []*models.ChatMessage, message string) (string, error) {
	// A fresh model per call: SystemInstruction is per-turn state and
	// the shared client must stay safe for concurrent requests.
	model := c.client.GenerativeModel(c.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	chat := model.StartChat()
	history := make([]*genai.Content, 0, len(prior))
	for _, msg := range prior {
		role := "user"
		if msg.Role == models.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	chat.History = history

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from gemini")
	}

	return string(text), nil
}
