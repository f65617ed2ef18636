// Package resolver maps reference identifiers to concrete audio paths.
// Two namespaces exist: speaker references and emotion references. An
// emotion id missing from the emotion namespace falls back to the speaker
// namespace, so a speaker's own audio can double as an emotion reference.
package resolver

import (
	"sort"
	"sync"
)

// Table is an in-memory, thread-safe resolver.
type Table struct {
	mu       sync.RWMutex
	speakers map[string]string
	emotions map[string]string
}

// New builds a table from id-to-path maps. Nil maps are allowed.
func New(speakers, emotions map[string]string) *Table {
	t := &Table{
		speakers: make(map[string]string, len(speakers)),
		emotions: make(map[string]string, len(emotions)),
	}
	for id, path := range speakers {
		t.speakers[id] = path
	}
	for id, path := range emotions {
		t.emotions[id] = path
	}
	return t
}

// ResolveSpeaker returns the speaker reference path for id.
func (t *Table) ResolveSpeaker(id string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	path, ok := t.speakers[id]
	return path, ok
}

// ResolveEmotion returns the emotion reference path for id, falling back
// to the speaker namespace when the emotion namespace misses.
func (t *Table) ResolveEmotion(id string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if path, ok := t.emotions[id]; ok {
		return path, true
	}
	path, ok := t.speakers[id]
	return path, ok
}

// AddSpeaker registers or replaces a speaker reference.
func (t *Table) AddSpeaker(id, path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.speakers[id] = path
}

// AddEmotion registers or replaces an emotion reference.
func (t *Table) AddEmotion(id, path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.emotions[id] = path
}

// Speakers returns the sorted speaker ids.
func (t *Table) Speakers() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return sortedKeys(t.speakers)
}

// Emotions returns the sorted emotion ids.
func (t *Table) Emotions() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return sortedKeys(t.emotions)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
