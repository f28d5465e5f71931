package vca

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourorg/vanguardzk/pkg/attest"
)

func sampleAttestation() *attest.Attestation {
	return &attest.Attestation{
		Proof: []byte{0xca, 0xfe, 0xba, 0xbe},
		Public: attest.PublicInputs{
			Threshold:        9200,
			IntentCommitment: "987654321",
			Nonce:            "1337",
			Valid:            1,
			CircuitDigest:    "00112233",
		},
	}
}

func TestNewRecord(t *testing.T) {
	rec := New("Deploy hotfix", "rev=4f2a", 9430, sampleAttestation())

	require.True(t, strings.HasPrefix(rec.ID, "vca-"))
	require.Len(t, rec.ID, len("vca-")+8)
	require.EqualValues(t, 9430, rec.CognitiveState.Confidence)
	require.EqualValues(t, 9200, rec.CognitiveState.Threshold)
	require.Equal(t, ProofType, rec.ZKP.Type)
	require.Equal(t, CircuitName, rec.ZKP.Circuit)
	require.False(t, rec.ZKP.Verified)

	raw, err := rec.ProofBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xca, 0xfe, 0xba, 0xbe}, raw)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	rec := New("Deploy hotfix", "", 9430, sampleAttestation())
	rec.MarkVerified(time.Now())

	dir := t.TempDir()
	path, err := rec.Save(dir)
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, rec.ID, loaded.ID)
	require.Equal(t, rec.ZKP.Proof, loaded.ZKP.Proof)
	require.Equal(t, rec.ZKP.PublicSignals, loaded.ZKP.PublicSignals)
	require.True(t, loaded.ZKP.Verified)
}

func TestRecordIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewID()
		require.False(t, seen[id])
		seen[id] = true
	}
}
