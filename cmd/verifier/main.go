package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourorg/vanguardzk/pkg/attest"
	"github.com/yourorg/vanguardzk/pkg/ledger"
)

func main() {
	var proofPath, publicPath, vkPath, ledgerPath string

	cmd := &cobra.Command{
		Use:   "verifier",
		Short: "Independently verify a Groth16 threshold attestation",
		RunE: func(cmd *cobra.Command, args []string) error {
			proofBytes, err := os.ReadFile(proofPath)
			if err != nil {
				return err
			}
			pubBytes, err := os.ReadFile(publicPath)
			if err != nil {
				return err
			}

			var pub attest.PublicInputs
			if err := json.Unmarshal(pubBytes, &pub); err != nil {
				return fmt.Errorf("decode public inputs: %w", err)
			}

			vk, err := attest.LoadVerifyingKey(vkPath)
			if err != nil {
				return err
			}

			ok, reason := attest.Verify(vk, pub, proofBytes)
			if !ok {
				if reason != nil {
					return fmt.Errorf("verification failed: %w", reason)
				}
				return fmt.Errorf("verification failed: proof does not match statement")
			}

			// Optional replay bookkeeping: record the accepted pair so a
			// second submission of the same attestation is rejected.
			if ledgerPath != "" {
				led, err := ledger.Open(ledgerPath)
				if err != nil {
					return err
				}
				entry, err := led.Append(ledger.Entry{
					IntentCommitment: pub.IntentCommitment,
					Nonce:            pub.Nonce,
					ProofHash:        ledger.ProofHash(proofBytes),
					Valid:            pub.Valid == 1,
				})
				if errors.Is(err, ledger.ErrReplayDetected) {
					return fmt.Errorf("replay: %w", err)
				}
				if err != nil {
					return err
				}
				fmt.Printf("ledger: %s\n", entry.TxID)
			}

			fmt.Printf("proof verified, valid=%d\n", pub.Valid)
			return nil
		},
	}

	cmd.Flags().StringVar(&proofPath, "proof", "", "Path to proof .bin file")
	cmd.Flags().StringVar(&publicPath, "public", "", "Path to public inputs .json file")
	cmd.Flags().StringVar(&vkPath, "vk", "", "Path to verifying key .bin file")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "Optional ledger file for replay bookkeeping")
	_ = cmd.MarkFlagRequired("proof")
	_ = cmd.MarkFlagRequired("public")
	_ = cmd.MarkFlagRequired("vk")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
