// Package vca assembles Verifiable Cognitive Action records: one
// attestation wrapped with the intent text and metadata that the ledger and
// consent layers consume.
package vca

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/yourorg/vanguardzk/pkg/attest"
)

const (
	ProofType   = "groth16"
	CircuitName = "intent_threshold"
)

// CognitiveState is the prover's own record of what was attested. The
// confidence value is private to the circuit but the prover may keep it in
// its local records.
type CognitiveState struct {
	Confidence uint64 `json:"confidence"` // basis points
	Threshold  uint64 `json:"threshold"`  // basis points
}

// ZKP carries the proof artifact and its public signals.
type ZKP struct {
	Type          string              `json:"type"`
	Circuit       string              `json:"circuit"`
	Proof         string              `json:"proof"` // hex
	PublicSignals attest.PublicInputs `json:"public_signals"`
	Verified      bool                `json:"verified"`
	VerifiedAt    time.Time           `json:"verified_at"`
}

// Record is one complete VCA.
type Record struct {
	ID             string         `json:"vca_id"`
	Timestamp      time.Time      `json:"timestamp"`
	Intent         string         `json:"intent"`
	TaskData       string         `json:"task_data"`
	CognitiveState CognitiveState `json:"cognitive_state"`
	ZKP            ZKP            `json:"zkp"`
}

// NewID returns a fresh vca-xxxxxxxx identifier.
func NewID() string {
	return "vca-" + uuid.New().String()[:8]
}

// New wraps an attestation into a record. The record starts unverified;
// call MarkVerified after an independent Verify succeeds.
func New(intentText, taskData string, confidence uint64, att *attest.Attestation) *Record {
	return &Record{
		ID:        NewID(),
		Timestamp: time.Now().UTC(),
		Intent:    intentText,
		TaskData:  taskData,
		CognitiveState: CognitiveState{
			Confidence: confidence,
			Threshold:  att.Public.Threshold,
		},
		ZKP: ZKP{
			Type:          ProofType,
			Circuit:       CircuitName,
			Proof:         hex.EncodeToString(att.Proof),
			PublicSignals: att.Public,
		},
	}
}

// ProofBytes decodes the hex proof back into wire form.
func (r *Record) ProofBytes() ([]byte, error) {
	raw, err := hex.DecodeString(r.ZKP.Proof)
	if err != nil {
		return nil, fmt.Errorf("decode vca proof: %w", err)
	}
	return raw, nil
}

// MarkVerified stamps the record after independent verification.
func (r *Record) MarkVerified(at time.Time) {
	r.ZKP.Verified = true
	r.ZKP.VerifiedAt = at.UTC()
}

// Save writes the record as <dir>/<vca_id>.json and returns the path.
func (r *Record) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, r.ID+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a record back from disk.
func Load(path string) (*Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode vca %s: %w", path, err)
	}
	return &r, nil
}
