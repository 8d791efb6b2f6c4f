package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	DefaultCapacity = 1024
	DefaultTTL      = time.Hour
)

// Store keeps sessions in memory only. The least recently used session is
// evicted at capacity and idle sessions expire after the TTL.
type Store struct {
	cache *expirable.LRU[string, *Session]
	now   func() time.Time
}

func NewStore(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		cache: expirable.NewLRU[string, *Session](capacity, nil, ttl),
		now:   time.Now,
	}
}

func (s *Store) Create() *Session {
	sess := newSession(uuid.NewString(), s.now)
	s.cache.Add(sess.ID, sess)
	return sess
}

// Get returns the session and restarts its idle timer.
func (s *Store) Get(id string) (*Session, error) {
	sess, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.cache.Add(id, sess)
	return sess, nil
}

func (s *Store) Delete(id string) bool {
	return s.cache.Remove(id)
}

func (s *Store) Len() int {
	return s.cache.Len()
}
