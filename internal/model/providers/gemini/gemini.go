package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	chatErrors "github.com/harunnryd/chatbot/internal/errors"
	"github.com/harunnryd/chatbot/internal/model/contract"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

type Provider struct {
	client *genai.Client
}

func New(ctx context.Context, apiKey, baseURL string) (*Provider, error) {
	cc := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	if baseURL != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Provider{client: client}, nil
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) Generate(ctx context.Context, req contract.CompletionRequest) (*contract.CompletionResponse, error) {
	var system *genai.Content
	var contents []*genai.Content
	for _, m := range req.Messages {
		switch m.Role {
		case contract.RoleSystem:
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, &genai.Part{Text: m.Content})
		case contract.RoleAssistant:
			contents = append(contents, &genai.Content{Role: "model", Parts: []*genai.Part{{Text: m.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: m.Content}}})
		}
	}

	modelName := req.Model
	if modelName == "" {
		modelName = DefaultModel
	}

	temperature := float32(req.Temperature)
	resp, err := p.client.Models.GenerateContent(ctx, modelName, contents, &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       &temperature,
	})
	if err != nil {
		return nil, classify(err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, chatErrors.MalformedResponse("gemini returned no candidates")
	}

	out := &contract.CompletionResponse{Model: modelName, Raw: resp}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			out.Content += part.Text
		}
	}
	if out.Content == "" {
		return nil, chatErrors.MalformedResponse("gemini returned no text")
	}

	return out, nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return chatErrors.WrapWithCategory(err, "gemini request failed", chatErrors.ErrUpstream)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return chatErrors.WrapWithCategory(err, "gemini request failed", chatErrors.ErrUpstream)
	}
	return fmt.Errorf("gemini request failed: %w", err)
}
