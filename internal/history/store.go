package history

import (
	"bytes"
	"strconv"
	"sync"
	"time"
)

// Store keeps the generations of one session, most recent first.
type Store struct {
	mu      sync.RWMutex
	records []Record
	seq     uint64
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Append records a generation at the front of the store and returns it.
// The image bytes are copied; the caller keeps ownership of its slice.
func (s *Store) Append(prompt string, image []byte, seed int64, duration time.Duration) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	// ids stay unique across Clear, so the sequence is never reset
	s.seq++
	now := s.now()
	rec := Record{
		ID:        strconv.FormatInt(now.Unix(), 10) + "-" + strconv.FormatUint(s.seq, 10),
		Prompt:    prompt,
		Seed:      seed,
		CreatedAt: now,
		Duration:  duration,
		image:     bytes.Clone(image),
	}
	s.records = append([]Record{rec}, s.records...)
	return rec
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Items returns a snapshot of the records, newest first.
func (s *Store) Items() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
