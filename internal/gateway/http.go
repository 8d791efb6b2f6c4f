package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxErrorBody = 512

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 2 * time.Minute}
}

// postJSON sends payload to url and returns the raw 2xx body. Anything else
// becomes a ServiceError carrying the provider's error message when it sent one.
func postJSON(ctx context.Context, client *http.Client, provider, url, apiKey string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &ServiceError{Provider: provider, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServiceError{Provider: provider, HTTPStatus: resp.StatusCode, Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := envelopeMessage(raw)
		if msg == "" {
			msg = truncate(strings.TrimSpace(string(raw)), maxErrorBody)
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &ServiceError{Provider: provider, HTTPStatus: resp.StatusCode, Message: msg}
	}
	if msg := envelopeMessage(raw); msg != "" {
		return nil, &ServiceError{Provider: provider, HTTPStatus: resp.StatusCode, Message: msg}
	}
	return raw, nil
}

// envelopeMessage reads {"error":{"message":...}} or {"error":"..."}.
func envelopeMessage(raw []byte) string {
	var env struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Error) == 0 || string(env.Error) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(env.Error, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(env.Error, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return string(env.Error)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
