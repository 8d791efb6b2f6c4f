package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

type GeminiProvider struct {
	client *genai.Client
	cfg    GeminiConfig
}

func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigurationError{Provider: Gemini}
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash-lite"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.TopP == 0 {
		cfg.TopP = 0.95
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = 2048
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, cfg: cfg}, nil
}

func (g *GeminiProvider) Name() string { return Gemini }

func (g *GeminiProvider) Close() error {
	return g.client.Close()
}

func (g *GeminiProvider) Complete(ctx context.Context, system, user string) (string, error) {
	// Models carry the system instruction, so each call gets its own.
	model := g.client.GenerativeModel(g.cfg.Model)
	model.SetTemperature(g.cfg.Temperature)
	model.SetTopP(g.cfg.TopP)
	model.SetMaxOutputTokens(g.cfg.MaxOutputTokens)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", geminiError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &ServiceError{Provider: Gemini, HTTPStatus: http.StatusOK, Message: "no content generated"}
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", &ServiceError{Provider: Gemini, HTTPStatus: http.StatusOK, Message: "no content generated"}
	}
	return b.String(), nil
}

func geminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &ServiceError{Provider: Gemini, HTTPStatus: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	return &ServiceError{Provider: Gemini, Message: "failed to generate content", Err: err}
}
