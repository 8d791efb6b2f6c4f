package a2a

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/chat"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

const (
	AgentCardPath = "/.well-known/agent.json"
	AdvisorPath   = "/a2a/advisor"

	promptForQuestion = "Please ask a question about the Finance Bill 2025."
)

// Handler answers A2A message/send requests with one advisor chat turn.
// Each request is stateless; clients carry history in data parts.
type Handler struct {
	responder *chat.Responder
	card      AgentCard
	logger    *zap.Logger
	now       func() time.Time
}

func NewHandler(responder *chat.Responder, baseURL string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		responder: responder,
		card:      NewAgentCard(baseURL),
		logger:    logger,
		now:       time.Now,
	}
}

// NewAgentCard builds the advisor's card with its endpoint under baseURL.
func NewAgentCard(baseURL string) AgentCard {
	return AgentCard{
		Name:        "Finance Bill 2025 Advisor",
		Description: "Constitutional advisor that explains how Kenya's Finance Bill 2025 affects a citizen and how to respond lawfully.",
		URL:         strings.TrimRight(baseURL, "/") + AdvisorPath,
		Version:     "1.0.0",
		Capabilities: Capabilities{
			Streaming:         false,
			PushNotifications: false,
		},
		DefaultInputModes:  []string{"text/plain", "application/json"},
		DefaultOutputModes: []string{"text/plain"},
		Skills: []Skill{{
			ID:          "finance-bill-chat",
			Name:        "Finance Bill 2025 Q&A",
			Description: "Answers questions about the bill's provisions, the constitutional rights involved and lawful ways to engage.",
			Tags:        []string{"kenya", "finance-bill", "constitution", "tax"},
			Examples:    chat.Suggestions()[:3],
		}},
	}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET(AgentCardPath, h.ServeAgentCard)
	r.POST(AdvisorPath, h.HandleMessage)
}

func (h *Handler) ServeAgentCard(c *gin.Context) {
	c.JSON(http.StatusOK, h.card)
}

// HandleMessage accepts a JSON-RPC 2.0 envelope, or a bare MessageParams
// body from clients that skip the envelope.
func (h *Handler) HandleMessage(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.sendError(c, nil, CodeParseError, "Failed to read request body")
		return
	}

	var req JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil || req.Method == "" {
		h.handleDirect(c, body)
		return
	}

	if req.JSONRPC != jsonRPCVersion {
		h.sendError(c, req.ID, CodeInvalidRequest, "Invalid JSON-RPC version")
		return
	}

	switch req.Method {
	case "message/send", "agent/task":
		var params MessageParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			h.logger.Warn("invalid a2a params", zap.Error(err))
			h.sendError(c, req.ID, CodeInvalidParams, "Invalid parameters")
			return
		}
		h.sendResult(c, req.ID, h.runTask(c, params.Message))
	default:
		h.sendError(c, req.ID, CodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (h *Handler) handleDirect(c *gin.Context, body []byte) {
	var params MessageParams
	if err := json.Unmarshal(body, &params); err != nil || len(params.Message.Parts) == 0 {
		h.sendError(c, nil, CodeParseError, "Invalid request format")
		return
	}
	h.sendResult(c, nil, h.runTask(c, params.Message))
}

func (h *Handler) runTask(c *gin.Context, msg Message) TaskResult {
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.NewString()
	}
	contextID := msg.ContextID
	if contextID == "" {
		contextID = uuid.NewString()
	}

	question, profile := extractQuestion(msg)
	if question == "" {
		return h.taskResult(taskID, contextID, StateInputRequired, promptForQuestion)
	}

	h.logger.Info("a2a chat turn", zap.String("task", taskID), zap.Bool("profile", profile != nil))
	reply, ok := h.responder.Respond(c.Request.Context(), question, profile)
	if !ok {
		return h.taskResult(taskID, contextID, StateFailed, reply)
	}
	return h.taskResult(taskID, contextID, StateCompleted, reply)
}

func (h *Handler) taskResult(taskID, contextID, state, text string) TaskResult {
	result := TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: timestamp(h.now()),
			Message: &Message{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    taskID,
				ContextID: contextID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
	}
	if state == StateCompleted {
		result.Artifacts = []Artifact{{
			ArtifactID: uuid.NewString(),
			Name:       "Finance Bill Advice",
			Parts:      []MessagePart{TextPart(text)},
		}}
	}
	return result
}

// extractQuestion joins the message's text parts. When there are none, the
// most recent text in a history data part is used. An object data part is
// read as the asker's profile.
func extractQuestion(msg Message) (string, *models.UserProfile) {
	var texts []string
	var history string
	var profile *models.UserProfile

	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if t := cleanText(part.Text); t != "" {
				texts = append(texts, t)
			}
		case "data":
			data := bytes.TrimSpace(part.Data)
			if len(data) == 0 {
				continue
			}
			if data[0] == '{' {
				var p models.UserProfile
				if err := json.Unmarshal(data, &p); err == nil && p.Occupation != "" {
					profile = &p
				}
				continue
			}
			if t := lastHistoryText(data); t != "" {
				history = t
			}
		}
	}

	if len(texts) == 0 && history != "" {
		texts = append(texts, history)
	}
	return strings.Join(texts, " "), profile
}

func lastHistoryText(data []byte) string {
	var items []MessagePart
	if err := json.Unmarshal(data, &items); err != nil {
		return ""
	}
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Kind != "text" {
			continue
		}
		if t := cleanText(items[i].Text); t != "" && strings.Trim(t, ".") != "" {
			return t
		}
	}
	return ""
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "<p>", "")
	s = strings.ReplaceAll(s, "</p>", "")
	return strings.TrimSpace(s)
}

func (h *Handler) sendResult(c *gin.Context, id json.RawMessage, result TaskResult) {
	c.JSON(http.StatusOK, JSONRPCResponse{JSONRPC: jsonRPCVersion, ID: id, Result: result})
}

// sendError replies 200 with a JSON-RPC error object.
func (h *Handler) sendError(c *gin.Context, id json.RawMessage, code int, message string) {
	h.logger.Warn("a2a request rejected", zap.Int("code", code), zap.String("message", message))
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	})
}
