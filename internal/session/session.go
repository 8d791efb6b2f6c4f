package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/chat"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

var (
	ErrProfileLocked = errors.New("profile can only be set while profiling")
	ErrNoDraft       = errors.New("no email draft generated")
)

// Session is one user's in-memory advisor state. Field access goes through
// methods that take mu; Exclusive serialises long-running work such as chat
// turns without blocking snapshot reads.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	state      State
	profile    *models.UserProfile
	fileName   string
	document   string
	impacts    []models.ImpactAnalysis
	draft      *models.EmailDraft
	transcript *chat.Transcript

	work sync.Mutex
}

func newSession(id string, now func() time.Time) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  now(),
		state:      StateWelcome,
		transcript: chat.NewTranscript(now),
	}
}

// Snapshot is a read-only copy of a session for rendering.
type Snapshot struct {
	ID         string                  `json:"id"`
	State      State                   `json:"state"`
	Profile    *models.UserProfile     `json:"profile,omitempty"`
	FileName   string                  `json:"fileName,omitempty"`
	HasDoc     bool                    `json:"hasDocument"`
	Impacts    []models.ImpactAnalysis `json:"impacts,omitempty"`
	EmailDraft *models.EmailDraft      `json:"emailDraft,omitempty"`
	Messages   []models.ChatMessage    `json:"messages"`
	CreatedAt  time.Time               `json:"createdAt"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:        s.ID,
		State:     s.state,
		Profile:   s.profile.Clone(),
		FileName:  s.fileName,
		HasDoc:    s.document != "",
		Impacts:   append([]models.ImpactAnalysis(nil), s.impacts...),
		Messages:  s.transcript.Messages(),
		CreatedAt: s.CreatedAt,
	}
	if s.draft != nil {
		d := s.draft.WithEdits(s.draft.Subject, s.draft.Body)
		snap.EmailDraft = &d
	}
	return snap
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transition moves the flow to next. Leaving analysis for welcome is a reset
// and discards the profile, document, impacts and draft.
func (s *Session) Transition(next State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkTransition(s.state, next); err != nil {
		return err
	}
	if s.state == StateAnalysis && next == StateWelcome {
		s.profile = nil
		s.fileName, s.document = "", ""
		s.impacts = nil
		s.draft = nil
	}
	s.state = next
	return nil
}

// SetProfile stores a validated copy of p and completes profiling, moving the
// flow to upload.
func (s *Session) SetProfile(p models.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateProfiling {
		return fmt.Errorf("%w (state %s)", ErrProfileLocked, s.state)
	}
	s.profile = p.Clone()
	s.impacts = nil
	s.draft = nil
	s.state = StateUpload
	return nil
}

// Profile returns a copy of the stored profile, or nil.
func (s *Session) Profile() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// AttachDocument records ingested bill text and moves upload -> analysis. An
// empty content marks the upload as skipped.
func (s *Session) AttachDocument(fileName, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkTransition(s.state, StateAnalysis); err != nil {
		return err
	}
	s.fileName, s.document = fileName, content
	s.state = StateAnalysis
	return nil
}

func (s *Session) Document() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

// SetImpacts replaces the current analysis. The previous draft no longer
// matches it and is dropped.
func (s *Session) SetImpacts(impacts []models.ImpactAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.impacts = append([]models.ImpactAnalysis(nil), impacts...)
	s.draft = nil
}

func (s *Session) Impacts() []models.ImpactAnalysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ImpactAnalysis(nil), s.impacts...)
}

func (s *Session) SetDraft(d models.EmailDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = &d
}

// EditDraft replaces the draft with the user's edited copy.
func (s *Session) EditDraft(subject, body string) (models.EmailDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return models.EmailDraft{}, ErrNoDraft
	}
	edited := s.draft.WithEdits(subject, body)
	s.draft = &edited
	return edited, nil
}

func (s *Session) Draft() (models.EmailDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return models.EmailDraft{}, ErrNoDraft
	}
	return s.draft.WithEdits(s.draft.Subject, s.draft.Body), nil
}

func (s *Session) Transcript() *chat.Transcript {
	return s.transcript
}

// Exclusive runs fn while holding the session's work lock, so at most one
// provider-backed operation runs per session at a time.
func (s *Session) Exclusive(fn func() error) error {
	s.work.Lock()
	defer s.work.Unlock()
	return fn()
}
