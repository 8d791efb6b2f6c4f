package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type HuggingFaceConfig struct {
	APIKey       string
	ModelURL     string
	MaxNewTokens int
	Temperature  float64
	HTTPClient   *http.Client
}

// HuggingFaceProvider calls a hosted text-generation model. The inference API
// takes a single input string, so the system and user prompts are joined.
type HuggingFaceProvider struct {
	apiKey       string
	modelURL     string
	maxNewTokens int
	temperature  float64
	httpClient   *http.Client
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

func NewHuggingFaceProvider(cfg HuggingFaceConfig) (*HuggingFaceProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigurationError{Provider: HuggingFace}
	}
	if cfg.ModelURL == "" {
		cfg.ModelURL = "https://api-inference.huggingface.co/models/microsoft/DialoGPT-medium"
	}
	if cfg.MaxNewTokens == 0 {
		cfg.MaxNewTokens = 1000
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	client := cfg.HTTPClient
	if client == nil {
		client = defaultHTTPClient()
	}
	return &HuggingFaceProvider{
		apiKey:       cfg.APIKey,
		modelURL:     cfg.ModelURL,
		maxNewTokens: cfg.MaxNewTokens,
		temperature:  cfg.Temperature,
		httpClient:   client,
	}, nil
}

func (h *HuggingFaceProvider) Name() string { return HuggingFace }

func (h *HuggingFaceProvider) Complete(ctx context.Context, system, user string) (string, error) {
	req := hfRequest{
		Inputs: system + "\n\n" + user,
		Parameters: hfParameters{
			MaxNewTokens:   h.maxNewTokens,
			Temperature:    h.temperature,
			ReturnFullText: false,
		},
	}

	raw, err := postJSON(ctx, h.httpClient, HuggingFace, h.modelURL, h.apiKey, req)
	if err != nil {
		return "", err
	}

	text, ok := decodeGeneration(raw)
	if !ok {
		return "", &ServiceError{Provider: HuggingFace, HTTPStatus: http.StatusOK, Message: "malformed response"}
	}
	if strings.TrimSpace(text) == "" {
		return "", &ServiceError{Provider: HuggingFace, HTTPStatus: http.StatusOK, Message: "no content generated"}
	}
	return text, nil
}

// decodeGeneration accepts both [{generated_text}] and {generated_text}.
func decodeGeneration(raw []byte) (string, bool) {
	var list []hfGeneration
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", true
		}
		return list[0].GeneratedText, true
	}
	var single hfGeneration
	if err := json.Unmarshal(raw, &single); err == nil {
		return single.GeneratedText, true
	}
	return "", false
}
