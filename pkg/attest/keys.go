package attest

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/consensys/gnark/backend/groth16"

	"github.com/yourorg/vanguardzk/circuits"
)

const (
	ProvingKeyFile   = "intent_threshold_pk.bin"
	VerifyingKeyFile = "intent_threshold_vk.bin"
)

// ProvingKey pairs a Groth16 proving key with the digest of the circuit
// version it was set up for. Keys are created once per circuit version and
// never mutated; a circuit change requires a full new setup.
type ProvingKey struct {
	Digest [32]byte
	PK     groth16.ProvingKey
}

// VerifyingKey is the verifier half of a versioned key pair.
type VerifyingKey struct {
	Digest [32]byte
	VK     groth16.VerifyingKey
}

// DigestHex is the circuit version in printable form.
func (k *VerifyingKey) DigestHex() string { return hex.EncodeToString(k.Digest[:]) }

func (k *ProvingKey) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(k.Digest[:])
	if err != nil {
		return int64(n), err
	}
	m, err := k.PK.WriteTo(w)
	return int64(n) + m, err
}

func (k *VerifyingKey) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(k.Digest[:])
	if err != nil {
		return int64(n), err
	}
	m, err := k.VK.WriteTo(w)
	return int64(n) + m, err
}

// ReadProvingKey decodes a digest-prefixed proving key.
func ReadProvingKey(r io.Reader) (*ProvingKey, error) {
	k := &ProvingKey{PK: groth16.NewProvingKey(circuits.Curve())}
	if _, err := io.ReadFull(r, k.Digest[:]); err != nil {
		return nil, fmt.Errorf("read proving key digest: %w", err)
	}
	if _, err := k.PK.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("read proving key: %w", err)
	}
	return k, nil
}

// ReadVerifyingKey decodes a digest-prefixed verifying key.
func ReadVerifyingKey(r io.Reader) (*VerifyingKey, error) {
	k := &VerifyingKey{VK: groth16.NewVerifyingKey(circuits.Curve())}
	if _, err := io.ReadFull(r, k.Digest[:]); err != nil {
		return nil, fmt.Errorf("read verifying key digest: %w", err)
	}
	if _, err := k.VK.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("read verifying key: %w", err)
	}
	return k, nil
}

// SaveKeys writes both halves of the pair under dir.
func SaveKeys(dir string, pk *ProvingKey, vk *VerifyingKey) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := pk.WriteTo(&buf); err != nil {
		return fmt.Errorf("serialize proving key: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ProvingKeyFile), buf.Bytes(), 0o644); err != nil {
		return err
	}
	buf.Reset()
	if _, err := vk.WriteTo(&buf); err != nil {
		return fmt.Errorf("serialize verifying key: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, VerifyingKeyFile), buf.Bytes(), 0o644)
}

// LoadKeys reads a previously saved pair back from dir.
func LoadKeys(dir string) (*ProvingKey, *VerifyingKey, error) {
	pkBytes, err := os.ReadFile(filepath.Join(dir, ProvingKeyFile))
	if err != nil {
		return nil, nil, err
	}
	pk, err := ReadProvingKey(bytes.NewReader(pkBytes))
	if err != nil {
		return nil, nil, err
	}
	vkBytes, err := os.ReadFile(filepath.Join(dir, VerifyingKeyFile))
	if err != nil {
		return nil, nil, err
	}
	vk, err := ReadVerifyingKey(bytes.NewReader(vkBytes))
	if err != nil {
		return nil, nil, err
	}
	if pk.Digest != vk.Digest {
		return nil, nil, fmt.Errorf("key pair digests diverge: %w", ErrKeyMismatch)
	}
	return pk, vk, nil
}

// LoadVerifyingKey reads just the verifier half, for deployments that never
// see the proving key.
func LoadVerifyingKey(path string) (*VerifyingKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadVerifyingKey(bytes.NewReader(raw))
}
