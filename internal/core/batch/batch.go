// Package batch defines rename batch domain types and interfaces.
package batch

import (
	"crypto/rand"
	"encoding/hex"
	"path/filepath"
	"time"
)

// Pair is one planned rename from a source path to a destination path. Both
// paths are absolute. A pair is never mutated after planning.
type Pair struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// Dir returns the directory both paths live in.
func (p Pair) Dir() string {
	return filepath.Dir(p.Source)
}

// Record is one executed rename batch, persisted so it can be listed and
// undone later.
type Record struct {
	ID         string    `json:"id"`
	Pairs      []Pair    `json:"pairs"`
	ExecutedAt time.Time `json:"executed_at"`
	Reverted   bool      `json:"reverted"`
}

// MarkReverted flags the record as undone.
func (r *Record) MarkReverted() {
	r.Reverted = true
}

// NewID returns a short random identifier for a batch record.
func NewID() string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
