package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type OpenAIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	HTTPClient  *http.Client
}

// OpenAIProvider talks to an OpenAI-compatible /chat/completions endpoint.
type OpenAIProvider struct {
	name        string
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	recency     string
	httpClient  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	Temperature         float64       `json:"temperature"`
	MaxTokens           int           `json:"max_tokens"`
	SearchRecencyFilter string        `json:"search_recency_filter,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigurationError{Provider: OpenAI}
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1500
	}
	return newChatProvider(OpenAI, cfg, ""), nil
}

func newChatProvider(name string, cfg OpenAIConfig, recency string) *OpenAIProvider {
	client := cfg.HTTPClient
	if client == nil {
		client = defaultHTTPClient()
	}
	return &OpenAIProvider{
		name:        name,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		recency:     recency,
		httpClient:  client,
	}
}

func (o *OpenAIProvider) Name() string { return o.name }

func (o *OpenAIProvider) Complete(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:         o.temperature,
		MaxTokens:           o.maxTokens,
		SearchRecencyFilter: o.recency,
	}

	raw, err := postJSON(ctx, o.httpClient, o.name, o.baseURL+"/chat/completions", o.apiKey, req)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &ServiceError{Provider: o.name, HTTPStatus: http.StatusOK, Message: "malformed response", Err: err}
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &ServiceError{Provider: o.name, HTTPStatus: http.StatusOK, Message: "no content generated"}
	}
	return resp.Choices[0].Message.Content, nil
}
