package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAIServer(t *testing.T, status int, body string, capture *chatRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIProviderSuccess(t *testing.T) {
	var got chatRequest
	server := newOpenAIServer(t, http.StatusOK, `{"choices":[{"message":{"content":"Category: Tax"}}]}`, &got)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	text, err := p.Complete(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.Equal(t, "Category: Tax", text)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "sys"}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "usr"}, got.Messages[1])
	assert.Empty(t, got.SearchRecencyFilter)
}

func TestOpenAIProviderFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"error envelope on 401", http.StatusUnauthorized, `{"error":{"message":"Invalid API key"}}`, 401, "Invalid API key"},
		{"error envelope on 200", http.StatusOK, `{"error":{"message":"quota exceeded"}}`, 200, "quota exceeded"},
		{"plain 500", http.StatusInternalServerError, `upstream down`, 500, "upstream down"},
		{"no choices", http.StatusOK, `{"choices":[]}`, 200, "no content generated"},
		{"malformed", http.StatusOK, `not json`, 200, "malformed response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newOpenAIServer(t, tt.status, tt.body, nil)
			p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = p.Complete(context.Background(), "sys", "usr")
			var se *ServiceError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, OpenAI, se.Provider)
			assert.Equal(t, tt.wantStatus, se.HTTPStatus)
			assert.Contains(t, se.Message, tt.wantMsg)
		})
	}
}

func TestOpenAIProviderTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: url})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "sys", "usr")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Zero(t, se.HTTPStatus)
}

func TestMissingKeysAreConfigurationErrors(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{})
	assert.True(t, IsConfiguration(err))

	_, err = NewHuggingFaceProvider(HuggingFaceConfig{APIKey: "  "})
	assert.True(t, IsConfiguration(err))

	_, err = NewPerplexityProvider(PerplexityConfig{})
	assert.True(t, IsConfiguration(err))

	_, err = NewGeminiProvider(context.Background(), GeminiConfig{})
	var ce *ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, Gemini, ce.Provider)
}

func TestPerplexitySendsRecencyFilter(t *testing.T) {
	var got chatRequest
	server := newOpenAIServer(t, http.StatusOK, `{"choices":[{"message":{"content":"No new updates"}}]}`, &got)

	p, err := NewPerplexityProvider(PerplexityConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, Perplexity, p.Name())

	_, err = p.Complete(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.Equal(t, "day", got.SearchRecencyFilter)
	assert.Equal(t, 500, got.MaxTokens)
	assert.InDelta(t, 0.2, got.Temperature, 1e-9)
}

func TestHuggingFaceResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"array", `[{"generated_text":"Subject: Hi\nBody"}]`, "Subject: Hi\nBody"},
		{"object", `{"generated_text":"Subject: Hi"}`, "Subject: Hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got hfRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p, err := NewHuggingFaceProvider(HuggingFaceConfig{APIKey: "k", ModelURL: server.URL})
			require.NoError(t, err)

			text, err := p.Complete(context.Background(), "sys", "usr")
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
			assert.Equal(t, "sys\n\nusr", got.Inputs)
			assert.False(t, got.Parameters.ReturnFullText)
		})
	}
}

func TestHuggingFaceLoadingModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer server.Close()

	p, err := NewHuggingFaceProvider(HuggingFaceConfig{APIKey: "k", ModelURL: server.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "sys", "usr")
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.HTTPStatus)
	assert.Equal(t, "Model is currently loading", se.Message)
}
