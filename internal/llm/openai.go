package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rishav781/Test-Agent/internal/config"
	"github.com/rishav781/Test-Agent/internal/logger"
)

// OpenAIClient implements the Client interface using OpenAI's chat
// completion API.
type OpenAIClient struct {
	client *openai.Client
	config *config.LLMConfig
	logger *logger.Logger
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(cfg *config.LLMConfig, log *logger.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		logger: log,
	}
}

// Complete performs one chat completion round trip. The configured timeout
// bounds the call; multimodal requests switch to the vision model.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	model := req.Model
	if req.ImageBase64 != "" {
		model = c.config.VisionModel
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.System,
			},
			userMessage(req),
		},
	})
	if err != nil {
		return "", &UpstreamError{Provider: "OpenAI", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Provider: "OpenAI", Err: fmt.Errorf("no choices in response")}
	}

	return resp.Choices[0].Message.Content, nil
}

func userMessage(req Request) openai.ChatCompletionMessage {
	if req.ImageBase64 == "" {
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.User,
		}
	}

	parts := []openai.ChatMessagePart{}
	if req.User != "" {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: req.User,
		})
	}
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeImageURL,
		ImageURL: &openai.ChatMessageImageURL{
			URL: "data:image/jpeg;base64," + req.ImageBase64,
		},
	})

	return openai.ChatCompletionMessage{
		Role:         openai.ChatMessageRoleUser,
		MultiContent: parts,
	}
}
