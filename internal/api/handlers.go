package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/analysis"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/chat"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/document"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/mail"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/session"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/updates"
)

// Analysis modes accepted by POST /api/sessions/:id/analysis.
const (
	ModePersonal         = "personal"
	ModeMultiPerspective = "multi_perspective"
	ModeStatic           = "static"
)

var errNotAnalysing = errors.New("session is not in the analysis step")

type Handler struct {
	sessions  *session.Store
	analysis  *analysis.Service
	responder *chat.Responder
	documents *document.Processor
	updates   *updates.Checker
	logger    *zap.Logger
}

func NewHandler(
	sessions *session.Store,
	svc *analysis.Service,
	responder *chat.Responder,
	documents *document.Processor,
	checker *updates.Checker,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions:  sessions,
		analysis:  svc,
		responder: responder,
		documents: documents,
		updates:   checker,
		logger:    logger,
	}
}

type transitionRequest struct {
	State session.State `json:"state" binding:"required"`
}

type documentRequest struct {
	File     string `json:"file"`
	FileName string `json:"fileName"`
	Skip     bool   `json:"skip"`
}

type documentErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type documentResponse struct {
	Document *document.Result `json:"document,omitempty"`
	State    session.State    `json:"state"`
}

type editEmailRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type mailtoResponse struct {
	To        []string `json:"to"`
	Mailto    string   `json:"mailto"`
	Clipboard string   `json:"clipboard"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply    models.ChatMessage   `json:"reply"`
	Messages []models.ChatMessage `json:"messages"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Finance Bill 2025 advisor is running"})
}

func (h *Handler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()
	h.logger.Info("session created", zap.String("session", sess.ID))
	c.JSON(http.StatusCreated, sess.Snapshot())
}

func (h *Handler) GetSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) Transition(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.JSONError(c, http.StatusBadRequest, "Invalid transition request", err.Error())
		return
	}
	if !req.State.Valid() {
		h.JSONError(c, http.StatusBadRequest, "Unknown state", string(req.State))
		return
	}
	if err := sess.Transition(req.State); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) SetProfile(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.JSONError(c, http.StatusBadRequest, "Invalid profile", err.Error())
		return
	}
	if err := sess.SetProfile(profile); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// ProcessDocument ingests an upload without touching any session.
func (h *Handler) ProcessDocument(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.JSONError(c, http.StatusBadRequest, "Invalid document request", err.Error())
		return
	}
	res, err := h.documents.Process(req.FileName, req.File)
	if err != nil {
		c.JSON(http.StatusBadRequest, documentErrorResponse{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// AttachDocument ingests the session's bill upload, or records that it was
// skipped, and moves the flow on to analysis.
func (h *Handler) AttachDocument(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.JSONError(c, http.StatusBadRequest, "Invalid document request", err.Error())
		return
	}
	if sess.State() != session.StateUpload {
		h.fail(c, session.ErrInvalidTransition)
		return
	}

	if req.Skip || req.File == "" {
		if err := sess.AttachDocument("", ""); err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, documentResponse{State: sess.State()})
		return
	}

	res, err := h.documents.Process(req.FileName, req.File)
	if err != nil {
		c.JSON(http.StatusBadRequest, documentErrorResponse{Message: err.Error()})
		return
	}
	if err := sess.AttachDocument(req.FileName, res.Content); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, documentResponse{Document: &res, State: sess.State()})
}

// Analyze runs the requested analysis and stores its impacts on the session.
func (h *Handler) Analyze(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	mode := c.DefaultQuery("mode", ModePersonal)
	if mode != ModePersonal && mode != ModeMultiPerspective && mode != ModeStatic {
		h.JSONError(c, http.StatusBadRequest, "Unknown analysis mode", mode)
		return
	}

	var result analysis.ImpactResult
	err := sess.Exclusive(func() error {
		if sess.State() != session.StateAnalysis {
			return errNotAnalysing
		}
		profile := sess.Profile()
		switch mode {
		case ModeMultiPerspective:
			result = h.analysis.MultiPerspective(c.Request.Context(), profile, sess.Document())
		case ModeStatic:
			result = h.analysis.Static(profile)
		default:
			result = h.analysis.Personal(c.Request.Context(), profile)
		}
		sess.SetImpacts(result.Impacts)
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) Questions(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var result analysis.QuestionsResult
	err := sess.Exclusive(func() error {
		if sess.State() != session.StateAnalysis {
			return errNotAnalysing
		}
		result = h.analysis.Questions(c.Request.Context(), sess.Profile())
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GenerateEmail drafts a letter from the session's profile and current
// impacts. The draft replaces any earlier one.
func (h *Handler) GenerateEmail(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var result analysis.EmailResult
	err := sess.Exclusive(func() error {
		if sess.State() != session.StateAnalysis {
			return errNotAnalysing
		}
		result = h.analysis.Email(c.Request.Context(), sess.Profile(), sess.Impacts())
		sess.SetDraft(result.Draft)
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) EditEmail(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req editEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.JSONError(c, http.StatusBadRequest, "Subject and body are required", err.Error())
		return
	}
	draft, err := sess.EditDraft(req.Subject, req.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"emailDraft": draft})
}

func (h *Handler) Mailto(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	draft, err := sess.Draft()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mailtoResponse{
		To:        draft.To,
		Mailto:    mail.MailtoURI(draft),
		Clipboard: mail.ClipboardText(draft),
	})
}

// Chat runs one turn. Turns on the same session are serialised so replies
// land in the transcript in order.
func (h *Handler) Chat(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
		return
	}

	var reply models.ChatMessage
	err := sess.Exclusive(func() error {
		var err error
		reply, err = h.responder.Send(c.Request.Context(), sess.Transcript(), req.Message, sess.Profile())
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chatResponse{Reply: reply, Messages: sess.Transcript().Messages()})
}

// ResetChat starts a new conversation: the transcript goes back to the
// welcome message.
func (h *Handler) ResetChat(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	err := sess.Exclusive(func() error {
		sess.Transcript().Reset()
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": sess.Transcript().Messages()})
}

func (h *Handler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": chat.Suggestions()})
}

// Updates returns the last bill update, checking now when none is cached or
// refresh is set.
func (h *Handler) Updates(c *gin.Context) {
	refresh, _ := strconv.ParseBool(c.Query("refresh"))
	if !refresh {
		if u, ok := h.updates.Latest(); ok {
			c.JSON(http.StatusOK, u)
			return
		}
	}
	u, err := h.updates.Check(c.Request.Context())
	if err != nil {
		h.JSONError(c, http.StatusBadGateway, "Failed to check Finance Bill updates", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) session(c *gin.Context) (*session.Session, bool) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return sess, true
}

// fail maps domain errors onto status codes.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		h.JSONError(c, http.StatusNotFound, "Session not found", err.Error())
	case errors.Is(err, session.ErrNoDraft):
		h.JSONError(c, http.StatusNotFound, "No email draft", err.Error())
	case errors.Is(err, models.ErrInvalidProfile), errors.Is(err, chat.ErrEmptyMessage):
		h.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, session.ErrInvalidTransition),
		errors.Is(err, session.ErrProfileLocked),
		errors.Is(err, errNotAnalysing):
		h.JSONError(c, http.StatusConflict, "Not allowed in the current step", err.Error())
	default:
		h.logger.Error("unexpected handler error", zap.Error(err))
		h.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// JSONError writes an ErrorResponse and logs it at warn.
func (h *Handler) JSONError(c *gin.Context, status int, message, details string) {
	h.logger.Warn(message, zap.Int("status", status), zap.String("details", details))
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Details: details})
}
