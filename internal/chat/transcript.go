package chat

import (
	"strconv"
	"sync"
	"time"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

const Welcome = "Hello! I'm your AI advisor for the Finance Bill 2025. I'm here to help you understand how this legislation might affect you personally. As a morally upright Kenyan citizen, I'll guide you through your constitutional rights and help you engage with this bill constructively. How can I assist you today?"

const timestampLayout = "15:04:05"

// Transcript is the append-only message log of one conversation. Message IDs
// are the order in which messages were generated, counted from 1 and
// restarted by Reset.
type Transcript struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	seq      int
	now      func() time.Time
}

// NewTranscript returns a transcript seeded with the welcome message.
func NewTranscript(now func() time.Time) *Transcript {
	if now == nil {
		now = time.Now
	}
	t := &Transcript{now: now}
	t.Reset()
	return t
}

func (t *Transcript) Append(message string, isUser bool) models.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.appendLocked(message, isUser)
}

func (t *Transcript) appendLocked(message string, isUser bool) models.ChatMessage {
	t.seq++
	m := models.ChatMessage{
		ID:        strconv.Itoa(t.seq),
		Message:   message,
		IsUser:    isUser,
		Timestamp: t.now().Format(timestampLayout),
	}
	t.messages = append(t.messages, m)
	return m
}

// Reset clears every message and re-seeds the welcome message.
func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = nil
	t.seq = 0
	t.appendLocked(Welcome, false)
}

func (t *Transcript) Messages() []models.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.ChatMessage(nil), t.messages...)
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}
