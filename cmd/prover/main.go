package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yourorg/vanguardzk/pkg/attest"
	"github.com/yourorg/vanguardzk/pkg/intent"
	"github.com/yourorg/vanguardzk/pkg/vca"
)

// contextKey is a custom type for context keys to avoid conflicts
type contextKey string

const startTimeKey contextKey = "start"

func main() {
	var (
		confidencePct float64
		thresholdPct  float64
		intentText    string
		taskData      string
		actor         string
		keyDir        string
		outDir        string
	)

	rootCmd := &cobra.Command{
		Use:   "prover",
		Short: "Generate a Groth16 threshold attestation for one intent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if keyDir == "" {
				_ = godotenv.Load()
				keyDir = os.Getenv("VANGUARD_KEY_DIR")
				if keyDir == "" {
					keyDir = "build"
				}
			}

			// Percent to basis points, the circuit's fixed-point encoding.
			confidence := uint64(math.Round(confidencePct * 100))
			threshold := uint64(math.Round(thresholdPct * 100))

			// -----------------------------------------------------------------
			// Circuit compile
			// -----------------------------------------------------------------
			sys, err := attest.Compile()
			if err != nil {
				return err
			}

			// -----------------------------------------------------------------
			// Trusted setup (cached)
			// -----------------------------------------------------------------
			if pk, vk, err := attest.LoadKeys(keyDir); err == nil {
				if err := sys.UseKeys(pk, vk); err != nil {
					return err
				}
			} else {
				if err := sys.Setup(); err != nil {
					return err
				}
				pk, vk := sys.Keys()
				if err := attest.SaveKeys(keyDir, pk, vk); err != nil {
					return err
				}
			}

			// -----------------------------------------------------------------
			// Statement binding
			// -----------------------------------------------------------------
			action := intent.Action{
				Intent:    intentText,
				TaskData:  taskData,
				Actor:     actor,
				Timestamp: time.Now(),
			}
			commitment, err := intent.Commitment(action)
			if err != nil {
				return err
			}

			// -----------------------------------------------------------------
			// Prove
			// -----------------------------------------------------------------
			att, err := sys.Prove(
				attest.PrivateInputs{Confidence: confidence},
				attest.Statement{
					Threshold:        threshold,
					IntentCommitment: commitment,
					Nonce:            intent.NewNonce(),
				},
			)
			if err != nil {
				return err
			}

			// Self-check before anything is written out.
			ok, err := sys.Verify(att.Public, att.Proof)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("freshly generated proof failed verification")
			}

			// -----------------------------------------------------------------
			// Outputs
			// -----------------------------------------------------------------
			rec := vca.New(intentText, taskData, confidence, att)
			rec.MarkVerified(time.Now())
			recPath, err := rec.Save(outDir)
			if err != nil {
				return err
			}

			proofPath := filepath.Join(outDir, rec.ID+"_proof.bin")
			if err := os.WriteFile(proofPath, att.Proof, 0o644); err != nil {
				return err
			}
			publicPath := filepath.Join(outDir, rec.ID+"_public.json")
			jsonBytes, _ := json.MarshalIndent(att.Public, "", "  ")
			if err := os.WriteFile(publicPath, jsonBytes, 0o644); err != nil {
				return err
			}

			fmt.Printf("circuit hash: %s\n", sys.DigestHex()[:8])
			fmt.Printf("valid: %d\n", att.Public.Valid)
			fmt.Printf("vca: %s\n", recPath)
			fmt.Printf("proof done in %s\n", time.Since(cmd.Context().Value(startTimeKey).(time.Time)))
			return nil
		},
	}

	rootCmd.Flags().Float64Var(&confidencePct, "confidence", 94.3, "Confidence score in percent (0-100)")
	rootCmd.Flags().Float64Var(&thresholdPct, "threshold", 92.0, "Minimum threshold in percent (0-100)")
	rootCmd.Flags().StringVar(&intentText, "intent", "Example cognitive action", "Intent description")
	rootCmd.Flags().StringVar(&taskData, "task-data", "", "Additional task details")
	rootCmd.Flags().StringVar(&actor, "actor", "", "Acting agent identifier")
	rootCmd.Flags().StringVar(&keyDir, "keydir", "", "Key cache directory (default $VANGUARD_KEY_DIR or ./build)")
	rootCmd.Flags().StringVar(&outDir, "outdir", "proofs", "Output directory for VCA and proof files")

	rootCmd.SetContext(context.WithValue(context.Background(), startTimeKey, time.Now()))
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
