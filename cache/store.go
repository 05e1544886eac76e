package cache

import (
	"sort"
	"sync"
)

// Entry is the recorded history for one signature
type Entry struct {
	Policy    Policy
	Responses []string

	cursor int
}

// Cursor reports how many responses have been consumed
func (e *Entry) Cursor() int {
	return e.cursor
}

// next returns the response a lookup should yield and advances the cursor.
func (e *Entry) next() string {
	if e.cursor >= len(e.Responses) {
		if e.Policy == PolicyRepeat && len(e.Responses) > 0 {
			return e.Responses[len(e.Responses)-1]
		}
		return ""
	}
	e.cursor++
	return e.Responses[e.cursor-1]
}

// Store is an in-memory record/replay cache. A single mutex covers every
// operation since a replay lookup is a read-modify-write on the cursor.
type Store struct {
	mu        sync.Mutex
	entries   map[string]*Entry
	recording bool
	policy    Policy
}

// NewStore returns an empty store that is not recording
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*Entry),
		policy:  PolicyRepeat,
	}
}

// BeginRecording turns recording on. New entries get policy.
func (s *Store) BeginRecording(policy Policy) {
	if policy == "" {
		policy = PolicyRepeat
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recording = true
	s.policy = policy
}

// EndRecording turns recording off; recorded entries are kept
func (s *Store) EndRecording() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recording = false
}

// Recording reports whether Append currently has an effect
func (s *Store) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// Append implements Recorder
func (s *Store) Append(signature, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.recording {
		return
	}
	e, ok := s.entries[signature]
	if !ok {
		e = &Entry{Policy: s.policy}
		s.entries[signature] = e
	}
	e.Responses = append(e.Responses, raw)
}

// Remove drops the entry for signature, if any
func (s *Store) Remove(signature string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, signature)
}

// Lookup implements Replayer
func (s *Store) Lookup(signature string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[signature]
	if !ok {
		return ""
	}
	return e.next()
}

// Len returns the number of signatures held
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Signatures returns the recorded signatures in sorted order
func (s *Store) Signatures() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entry returns a copy of the entry for signature
func (s *Store) Entry(signature string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[signature]
	if !ok {
		return Entry{}, false
	}
	return Entry{
		Policy:    e.Policy,
		Responses: append([]string(nil), e.Responses...),
		cursor:    e.cursor,
	}, true
}
