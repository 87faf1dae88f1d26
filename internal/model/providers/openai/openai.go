package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	chatErrors "github.com/harunnryd/chatbot/internal/errors"
	"github.com/harunnryd/chatbot/internal/model/contract"

	"github.com/sashabaranov/go-openai"
)

// Provider talks to any endpoint speaking the OpenAI chat completions API
// (api.openai.com, Ollama, self-hosted gateways).
type Provider struct {
	client *openai.Client
}

func New(apiKey, baseURL string) *Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	return &Provider{client: openai.NewClientWithConfig(cfg)}
}

func (p *Provider) Name() string {
	return "openai"
}

func (p *Provider) Generate(ctx context.Context, req contract.CompletionRequest) (*contract.CompletionResponse, error) {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}

	// Temperature is omitempty in go-openai; 0 would be dropped and the server default applied.
	temperature := float32(req.Temperature)
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, chatErrors.MalformedResponse("openai returned no choices")
	}

	return &contract.CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Raw:     resp,
	}, nil
}

// classify tags HTTP-level failures as upstream; anything else (dial errors, bad JSON)
// is left for the dispatcher's mapper.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return chatErrors.WrapWithCategory(err, "openai request failed", chatErrors.ErrUpstream)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return chatErrors.WrapWithCategory(err, "openai request failed", chatErrors.ErrUpstream)
	}

	return fmt.Errorf("openai request failed: %w", err)
}
