package comparison

import (
	"sync"
	"time"

	shields "Sediment/internal/calc/shields"
)

type Entry struct {
	Input   shields.Input  `json:"input"`
	Result  shields.Result `json:"result"`
	AddedAt time.Time      `json:"added_at"`
}

// Log is an append-only, insertion-ordered list of evaluations. Entries are
// never removed, reordered or modified once appended.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewLog() *Log {
	return &Log{}
}

// Append adds an evaluation at the end of the log and returns it with its
// 1-based position.
func (l *Log) Append(in shields.Input, res shields.Result) (Entry, int) {
	e := Entry{Input: in, Result: res, AddedAt: time.Now()}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	return e, len(l.entries)
}

// Entries returns a copy of the log in insertion order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
