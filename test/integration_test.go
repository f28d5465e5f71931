package test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourorg/vanguardzk/pkg/attest"
	"github.com/yourorg/vanguardzk/pkg/intent"
	"github.com/yourorg/vanguardzk/pkg/ledger"
	"github.com/yourorg/vanguardzk/pkg/vca"
)

// TestEndToEnd walks the full flow: canonicalize an action, set up, prove,
// independently verify, record the VCA, and post to the ledger twice to
// confirm replay rejection.
func TestEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e in short mode")
	}

	sys, err := attest.Compile()
	require.NoError(t, err)
	require.NoError(t, sys.Setup())

	dir := t.TempDir()
	pk, vk := sys.Keys()
	require.NoError(t, attest.SaveKeys(dir, pk, vk))

	action := intent.Action{
		Intent:    "Send weekly report to the team",
		TaskData:  "channel=#reports",
		Actor:     "agent-01",
		Timestamp: time.Now(),
	}
	commitment, err := intent.Commitment(action)
	require.NoError(t, err)
	nonce := intent.NewNonce()

	att, err := sys.Prove(
		attest.PrivateInputs{Confidence: 9430},
		attest.Statement{Threshold: 9200, IntentCommitment: commitment, Nonce: nonce},
	)
	require.NoError(t, err)
	require.EqualValues(t, 1, att.Public.Valid)

	// Verifier side: only the serialized verifying key and the artifact.
	loadedVK, err := attest.LoadVerifyingKey(filepath.Join(dir, attest.VerifyingKeyFile))
	require.NoError(t, err)
	ok, reason := attest.Verify(loadedVK, att.Public, att.Proof)
	require.NoError(t, reason)
	require.True(t, ok)

	rec := vca.New(action.Intent, action.TaskData, 9430, att)
	rec.MarkVerified(time.Now())
	recPath, err := rec.Save(t.TempDir())
	require.NoError(t, err)
	loaded, err := vca.Load(recPath)
	require.NoError(t, err)
	require.Equal(t, att.Public, loaded.ZKP.PublicSignals)

	led, err := ledger.Open(filepath.Join(t.TempDir(), "ledger.json"))
	require.NoError(t, err)
	entry, err := led.Append(ledger.Entry{
		VCAID:            rec.ID,
		Intent:           rec.Intent,
		IntentCommitment: att.Public.IntentCommitment,
		Nonce:            att.Public.Nonce,
		ProofHash:        ledger.ProofHash(att.Proof),
		Valid:            att.Public.Valid == 1,
		Status:           "executed",
	})
	require.NoError(t, err)
	require.Equal(t, "tx-000001", entry.TxID)

	_, err = led.Append(ledger.Entry{
		IntentCommitment: att.Public.IntentCommitment,
		Nonce:            att.Public.Nonce,
	})
	require.ErrorIs(t, err, ledger.ErrReplayDetected)
}

// TestEndToEndBelowThreshold proves the failing outcome still yields a
// verifiable artifact; downstream policy sees valid=0 and decides.
func TestEndToEndBelowThreshold(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e in short mode")
	}

	sys, err := attest.Compile()
	require.NoError(t, err)
	require.NoError(t, sys.Setup())

	action := intent.Action{Intent: "Rotate credentials", Timestamp: time.Now()}
	commitment, err := intent.Commitment(action)
	require.NoError(t, err)

	att, err := sys.Prove(
		attest.PrivateInputs{Confidence: 8000},
		attest.Statement{Threshold: 9200, IntentCommitment: commitment, Nonce: intent.NewNonce()},
	)
	require.NoError(t, err)
	require.EqualValues(t, 0, att.Public.Valid)

	ok, reason := sys.Verify(att.Public, att.Proof)
	require.NoError(t, reason)
	require.True(t, ok)
}
