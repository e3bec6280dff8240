package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

var estimateSeniority string

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the project timeline in weeks from the stored breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		features, err := services.Workspace.Repo.LoadBreakdown()
		if err != nil {
			return fmt.Errorf("failed to load breakdown: %w", err)
		}
		if len(features) == 0 {
			return NewCLIError("no breakdown stored", "Run 'proposer breakdown' first", nil)
		}

		total := 0.0
		for _, f := range features {
			total += f.TotalHours()
		}
		fmt.Printf("Total estimated effort: %.1f hours\n\n", total)

		if estimateSeniority != "" {
			tier := proposal.Seniority(strings.ToLower(estimateSeniority))
			if !tier.IsValid() {
				return NewCLIError(
					fmt.Sprintf("unknown seniority %q", estimateSeniority),
					"Valid tiers: entry, junior, mid, senior",
					nil,
				)
			}
			fmt.Printf("Estimated timeline (%s): %d weeks\n", tier, proposal.EstimateTimelineHours(total, tier))
			return nil
		}

		fmt.Println("Estimated timeline by seniority:")
		for _, tier := range []proposal.Seniority{proposal.SeniorityEntry, proposal.SeniorityJunior, proposal.SeniorityMid, proposal.SenioritySenior} {
			fmt.Printf("  %-8s %d weeks\n", tier, proposal.EstimateTimelineHours(total, tier))
		}
		return nil
	},
}

func init() {
	estimateCmd.Flags().StringVar(&estimateSeniority, "seniority", "", "Seniority tier to estimate for (entry/junior/mid/senior)")
	RootCmd.AddCommand(estimateCmd)
}
