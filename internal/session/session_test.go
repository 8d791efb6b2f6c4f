package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

func validProfile() models.UserProfile {
	return models.UserProfile{
		Occupation:  "Farmer",
		IncomeLevel: models.IncomeLow,
		Location:    models.LocationRural,
		Transport:   []string{"Motorcycle/Boda Boda"},
	}
}

func TestTransitions(t *testing.T) {
	all := []State{StateWelcome, StateProfiling, StateUpload, StateAnalysis, StateChat}
	allowed := map[[2]State]bool{
		{StateWelcome, StateProfiling}: true,
		{StateWelcome, StateChat}:      true,
		{StateProfiling, StateUpload}:  true,
		{StateUpload, StateAnalysis}:   true,
		{StateAnalysis, StateChat}:     true,
		{StateAnalysis, StateWelcome}:  true,
		{StateChat, StateWelcome}:      true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]State{from, to}], from.CanTransition(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, State("limbo").Valid())
}

func TestSessionHappyPath(t *testing.T) {
	store := NewStore(4, time.Minute)
	s := store.Create()
	assert.Equal(t, StateWelcome, s.State())

	require.ErrorIs(t, s.SetProfile(validProfile()), ErrProfileLocked)
	require.NoError(t, s.Transition(StateProfiling))

	p := validProfile()
	require.NoError(t, s.SetProfile(p))
	assert.Equal(t, StateUpload, s.State())

	p.Transport[0] = "Personal Car"
	assert.Equal(t, "Motorcycle/Boda Boda", s.Profile().Transport[0])

	require.NoError(t, s.AttachDocument("bill.pdf", "FINANCE BILL 2025"))
	assert.Equal(t, StateAnalysis, s.State())
	assert.Equal(t, "FINANCE BILL 2025", s.Document())

	s.SetImpacts([]models.ImpactAnalysis{{Category: "Agriculture"}})
	s.SetDraft(models.EmailDraft{To: []string{"mp@example.com"}, Subject: "s", Body: "b"})

	edited, err := s.EditDraft("new subject", "new body")
	require.NoError(t, err)
	assert.Equal(t, []string{"mp@example.com"}, edited.To)
	got, err := s.Draft()
	require.NoError(t, err)
	assert.Equal(t, "new subject", got.Subject)

	snap := s.Snapshot()
	assert.Equal(t, StateAnalysis, snap.State)
	assert.True(t, snap.HasDoc)
	assert.Len(t, snap.Impacts, 1)
	require.NotNil(t, snap.EmailDraft)
	assert.Len(t, snap.Messages, 1)

	require.NoError(t, s.Transition(StateWelcome))
	assert.Nil(t, s.Profile())
	assert.Empty(t, s.Impacts())
	_, err = s.Draft()
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestSessionRejectsInvalidFlow(t *testing.T) {
	s := NewStore(1, time.Minute).Create()

	assert.ErrorIs(t, s.Transition(StateAnalysis), ErrInvalidTransition)
	assert.ErrorIs(t, s.AttachDocument("x.txt", ""), ErrInvalidTransition)

	require.NoError(t, s.Transition(StateProfiling))
	bad := validProfile()
	bad.IncomeLevel = "billionaire"
	assert.ErrorIs(t, s.SetProfile(bad), models.ErrInvalidProfile)
	assert.Equal(t, StateProfiling, s.State())
}

func TestNewImpactsDropDraft(t *testing.T) {
	s := NewStore(1, time.Minute).Create()
	s.SetDraft(models.EmailDraft{Subject: "old"})
	s.SetImpacts(nil)
	_, err := s.Draft()
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestStoreLookupAndEviction(t *testing.T) {
	store := NewStore(2, time.Minute)
	a := store.Create()
	b := store.Create()
	assert.NotEqual(t, a.ID, b.ID)

	got, err := store.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	c := store.Create()
	assert.Equal(t, 2, store.Len())

	_, err = store.Get(b.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound, "least recently used session is evicted")
	_, err = store.Get(c.ID)
	assert.NoError(t, err)

	assert.True(t, store.Delete(a.ID))
	_, err = store.Get(a.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(2, 20*time.Millisecond)
	s := store.Create()

	// Polling with Get would keep refreshing the idle timer.
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)
	_, err := store.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExclusiveSerialises(t *testing.T) {
	s := NewStore(1, time.Minute).Create()
	inside := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = s.Exclusive(func() error {
			close(inside)
			<-release
			return nil
		})
	}()
	<-inside

	go func() {
		_ = s.Exclusive(func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second operation ran while the first held the session")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	<-done
}
