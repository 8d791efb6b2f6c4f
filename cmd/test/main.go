package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/a2a"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/analysis"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/session"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

const defaultQuestion = "How does the Finance Bill 2025 affect a matatu driver in Nairobi?"

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			// Analysis may walk three providers before falling back.
			Timeout: 3 * time.Minute,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the advisor")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, flow, chat, a2a")
	question := flag.String("q", defaultQuestion, "Question for the chat and a2a tests")
	occupation := flag.String("occupation", "Software Developer", "Occupation used by the flow test")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Finance Bill 2025 Advisor - Smoke Tests")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, client.baseURL, colorReset)

	tests := map[string]func() bool{
		"health":     client.testHealthCheck,
		"agent-card": client.testAgentCard,
		"flow":       func() bool { return client.testAdvisorFlow(*occupation) },
		"chat":       func() bool { return client.testChat(*question) },
		"a2a":        func() bool { return client.testA2A(*question) },
	}

	if *testType == "all" {
		client.runAll([]string{"health", "agent-card", "flow", "chat", "a2a"}, tests)
		return
	}
	fn, ok := tests[*testType]
	if !ok {
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, agent-card, flow, chat, a2a")
		os.Exit(1)
	}
	if !fn() {
		os.Exit(1)
	}
}

func (tc *TestClient) runAll(order []string, tests map[string]func() bool) {
	passed, failed := 0, 0
	for _, name := range order {
		if tests[name]() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

// call sends body as JSON (when non-nil) and decodes a 2xx reply into out.
func (tc *TestClient) call(method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	url := tc.baseURL + path
	fmt.Printf("%s %s\n", method, url)

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return nil
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	var body map[string]string
	if err := tc.call(http.MethodGet, "/health", nil, &body); err != nil {
		printError(err.Error())
		return false
	}
	if body["status"] != "ok" {
		printError(fmt.Sprintf("Expected status 'ok', got '%s'", body["status"]))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	var card a2a.AgentCard
	if err := tc.call(http.MethodGet, a2a.AgentCardPath, nil, &card); err != nil {
		printError(err.Error())
		return false
	}
	if card.Name == "" || card.URL == "" || len(card.Skills) == 0 {
		printError("Agent card is missing name, url or skills")
		return false
	}

	printSuccess("Agent card is valid")
	printValue("Agent Card", card)
	return true
}

// testAdvisorFlow drives one session from welcome through analysis to a
// mailto link, the path the UI follows.
func (tc *TestClient) testAdvisorFlow(occupation string) bool {
	printTestHeader("Testing Advisor Flow")

	var snap session.Snapshot
	if err := tc.call(http.MethodPost, "/api/sessions", nil, &snap); err != nil {
		printError(err.Error())
		return false
	}
	base := "/api/sessions/" + snap.ID

	profile := models.UserProfile{
		Occupation:        occupation,
		IncomeLevel:       models.IncomeMiddle,
		Location:          models.LocationUrban,
		Transport:         []string{"Matatu/Bus"},
		Dependents:        2,
		ConsumptionHabits: []string{"Basic foodstuffs", "Mobile money", "Digital services"},
	}
	steps := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, base + "/transition", map[string]string{"state": string(session.StateProfiling)}},
		{http.MethodPut, base + "/profile", profile},
		{http.MethodPost, base + "/documents", map[string]bool{"skip": true}},
	}
	for _, s := range steps {
		if err := tc.call(s.method, s.path, s.body, nil); err != nil {
			printError(err.Error())
			return false
		}
	}

	var impacts analysis.ImpactResult
	if err := tc.call(http.MethodPost, base+"/analysis", nil, &impacts); err != nil {
		printError(err.Error())
		return false
	}
	if len(impacts.Impacts) == 0 {
		printError("Analysis returned no impacts")
		return false
	}
	printSuccess(fmt.Sprintf("Analysis returned %d impact(s) from %s", len(impacts.Impacts), impacts.Source))
	if impacts.Degraded {
		printWarning(impacts.Notice)
	}
	for _, i := range impacts.Impacts {
		fmt.Printf("  - %s [%s/%s]\n", i.Category, i.Impact, i.Severity)
	}

	var email analysis.EmailResult
	if err := tc.call(http.MethodPost, base+"/email", nil, &email); err != nil {
		printError(err.Error())
		return false
	}
	printSuccess(fmt.Sprintf("Email drafted by %s: %s", email.Source, email.Draft.Subject))

	var link struct {
		Mailto string `json:"mailto"`
	}
	if err := tc.call(http.MethodGet, base+"/email/mailto", nil, &link); err != nil {
		printError(err.Error())
		return false
	}
	if !strings.HasPrefix(link.Mailto, "mailto:") {
		printError("Expected a mailto link")
		return false
	}

	printSuccess("Advisor flow completed")
	return true
}

func (tc *TestClient) testChat(question string) bool {
	printTestHeader("Testing Chat")
	fmt.Printf("%sQuestion:%s %s\n\n", colorCyan, colorReset, question)

	var snap session.Snapshot
	if err := tc.call(http.MethodPost, "/api/sessions", nil, &snap); err != nil {
		printError(err.Error())
		return false
	}

	var reply struct {
		Reply    models.ChatMessage   `json:"reply"`
		Messages []models.ChatMessage `json:"messages"`
	}
	if err := tc.call(http.MethodPost, "/api/sessions/"+snap.ID+"/chat", map[string]string{"message": question}, &reply); err != nil {
		printError(err.Error())
		return false
	}
	if len(reply.Messages) != 3 {
		printError(fmt.Sprintf("Expected 3 messages in the transcript, got %d", len(reply.Messages)))
		return false
	}

	printSuccess("Chat turn completed")
	printBlock("Reply", reply.Reply.Message)
	return true
}

func (tc *TestClient) testA2A(question string) bool {
	printTestHeader("Testing A2A message/send")

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind":  "message",
				"role":  "user",
				"parts": []map[string]any{{"kind": "text", "text": question}},
			},
			"configuration": map[string]any{"blocking": true},
		},
	}

	var response struct {
		Result *a2a.TaskResult `json:"result"`
		Error  *a2a.RPCError   `json:"error"`
	}
	if err := tc.call(http.MethodPost, a2a.AdvisorPath, request, &response); err != nil {
		printError(err.Error())
		return false
	}
	if response.Error != nil {
		printError(fmt.Sprintf("RPC error %d: %s", response.Error.Code, response.Error.Message))
		return false
	}
	if response.Result == nil || response.Result.Status.State != a2a.StateCompleted {
		printError("Expected a completed task")
		return false
	}

	printSuccess("A2A task completed")
	if msg := response.Result.Status.Message; msg != nil && len(msg.Parts) > 0 {
		printBlock("Reply", msg.Parts[0].Text)
	}
	return true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printWarning(text string) {
	fmt.Printf("%s! %s%s\n", colorYellow, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printBlock(title, text string) {
	fmt.Printf("\n%s%s:%s\n", colorPurple, title, colorReset)
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(text)
	fmt.Println(strings.Repeat("=", 80))
}

func printValue(title string, v any) {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err == nil {
		fmt.Printf("\n%s%s:%s\n%s\n", colorYellow, title, colorReset, pretty)
	}
}
