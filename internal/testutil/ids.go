// Package testutil provides deterministic helpers for tests.
package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates predictable run IDs of the form "<prefix>-0001",
// "<prefix>-0002", ... so that stored history and CLI output are stable
// across test runs.
//
// Implements store.IDGenerator.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewSequentialIDs creates a generator whose first ID ends in 0001.
// If prefix is empty, "run" is used.
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "run"
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%04d", g.prefix, g.seq)
}

// Issued returns how many IDs have been generated.
func (g *SequentialIDs) Issued() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset restarts the sequence. After Reset, the next ID ends in 0001.
func (g *SequentialIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
