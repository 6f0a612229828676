package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimscope/claimscope/internal/model"
)

var (
	verifyPending     bool
	verifyConcurrency int
	verifyForce       bool
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [claim-id]",
	Short: "Verify a claim, or all pending claims, against evidence",
	Long: `Verify runs a claim through the evidence service. Price claims get live
market context; claims too vague to check settle as unverifiable without
any external call.

A claim that already reached a terminal status is never re-verified unless
--force is set.

Example:
  claimscope verify claim-creator-a-1721234567890-ab3k9
  claimscope verify --pending --concurrency 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().BoolVar(&verifyPending, "pending", false, "verify every pending claim")
	verifyCmd.Flags().IntVar(&verifyConcurrency, "concurrency", 0, "claims verified concurrently per chunk (default from config)")
	verifyCmd.Flags().BoolVar(&verifyForce, "force", false, "re-verify a claim that already has a terminal status")
}

func runVerify(cmd *cobra.Command, args []string) error {
	if !verifyPending && len(args) == 0 {
		return fmt.Errorf("provide a claim id or use --pending")
	}

	cfg := loadConfig()
	if verifyConcurrency > 0 {
		cfg.Verification.Concurrency = verifyConcurrency
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if verifyPending {
		claims, err := st.PendingClaims()
		if err != nil {
			return err
		}
		if len(claims) == 0 {
			fmt.Println("No pending claims")
			return nil
		}
		fmt.Printf("Verifying %d pending claims...\n", len(claims))
		return verifyAndApply(ctx, cfg, st, claims)
	}

	claim, err := st.ClaimByID(args[0])
	if err != nil {
		return err
	}
	if claim.Status.IsTerminal() && !verifyForce {
		return fmt.Errorf("claim %s already settled as %s (use --force to re-verify)", claim.ID, claim.Status)
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}

	result, err := verifier.VerifyClaim(ctx, claim)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if verifyForce {
		if err := st.ForceUpdateClaimStatus(claim.ID, result, time.Now()); err != nil {
			return err
		}
	} else if result.Status != model.StatusPending {
		if _, err := st.UpdateClaimStatus(claim.ID, result, time.Now()); err != nil {
			return err
		}
	}

	fmt.Printf("Claim:      %s\n", claim.ClaimText)
	fmt.Printf("Status:     %s\n", result.Status)
	fmt.Printf("Confidence: %.2f\n", result.Confidence)
	if result.VerificationNotes != "" {
		fmt.Printf("Notes:      %s\n", result.VerificationNotes)
	}
	if result.VerificationEvidence != "" {
		fmt.Printf("Evidence:   %s\n", result.VerificationEvidence)
	}
	return nil
}
