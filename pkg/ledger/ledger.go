// Package ledger is the stateful collaborator at the system boundary: an
// append-only audit trail of accepted attestations and the replay registry
// for (intentCommitment, nonce) pairs. It is the only shared mutable state
// around the core, so check-then-insert is serialized under one mutex.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// ErrReplayDetected means the (intentCommitment, nonce) pair was already
// accepted. A pair is accepted at most once, ever.
var ErrReplayDetected = errors.New("ledger: intent commitment and nonce already accepted")

// Entry is one immutable line of the audit trail. Both valid=1 and valid=0
// attestations are recorded; downstream policy, not the ledger, decides what
// a failed threshold means.
type Entry struct {
	TxID             string    `json:"tx_id"`
	Timestamp        time.Time `json:"timestamp"`
	VCAID            string    `json:"vca_id"`
	Intent           string    `json:"intent"`
	IntentCommitment string    `json:"intentCommitment"`
	Nonce            string    `json:"nonce"`
	ProofHash        string    `json:"proof_hash"`
	Valid            bool      `json:"valid"`
	Status           string    `json:"status"`
}

// ProofHash fingerprints proof bytes for the audit trail.
func ProofHash(proof []byte) string {
	sum := sha256.Sum256(proof)
	return hex.EncodeToString(sum[:])
}

// Ledger guards the accepted-pair set and the entry log. When opened with a
// path it persists every append; the zero-path form is memory only.
type Ledger struct {
	mu       sync.Mutex
	path     string
	accepted map[string]struct{}
	entries  []Entry
}

// NewMemory returns a ledger that lives only in this process.
func NewMemory() *Ledger {
	return &Ledger{accepted: make(map[string]struct{})}
}

// Open loads the ledger file at path, creating an empty ledger when the
// file does not exist yet.
func Open(path string) (*Ledger, error) {
	l := NewMemory()
	l.path = path
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &l.entries); err != nil {
		return nil, fmt.Errorf("decode ledger %s: %w", path, err)
	}
	for _, e := range l.entries {
		l.accepted[pairKey(e.IntentCommitment, e.Nonce)] = struct{}{}
	}
	return l, nil
}

// Append records an entry after the atomic replay check. It assigns the
// sequential transaction id and timestamp; the second submission of the
// same pair fails with ErrReplayDetected regardless of how the two calls
// interleave.
func (l *Ledger) Append(e Entry) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := pairKey(e.IntentCommitment, e.Nonce)
	if _, dup := l.accepted[key]; dup {
		return Entry{}, fmt.Errorf("pair %s: %w", key, ErrReplayDetected)
	}

	e.TxID = fmt.Sprintf("tx-%06d", len(l.entries)+1)
	e.Timestamp = time.Now().UTC()
	if e.Status == "" {
		e.Status = "recorded"
	}

	l.accepted[key] = struct{}{}
	l.entries = append(l.entries, e)

	if l.path != "" {
		if err := l.flushLocked(); err != nil {
			return Entry{}, err
		}
	}
	return e, nil
}

// Seen reports whether a pair was already accepted, without inserting.
func (l *Ledger) Seen(commitment, nonce string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.accepted[pairKey(commitment, nonce)]
	return ok
}

// Entries returns a copy of the audit trail in append order.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Ledger) flushLocked() error {
	raw, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, raw, 0o644)
}

func pairKey(commitment, nonce string) string {
	return commitment + ":" + nonce
}
