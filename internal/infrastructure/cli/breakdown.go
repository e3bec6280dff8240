package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Break the stored requirements into features with hour estimates",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		req, err := services.Workspace.Repo.LoadRequest()
		if err != nil || req == nil {
			return NewCLIError("no project request found", "Run 'proposer request set' first", err)
		}

		fmt.Println("Generating feature breakdown...")
		features, warnings := services.Breakdown.GenerateBreakdown(cmd.Context(), req.Requirements)

		if err := services.Workspace.Repo.SaveBreakdown(features); err != nil {
			return fmt.Errorf("failed to save breakdown: %w", err)
		}
		_ = services.Usage.RecordCall(services.Provider.ID())
		_ = services.Notify.Emit(cmd.Context(), "breakdown.generate", "user", map[string]interface{}{
			"features": len(features),
		})

		if len(features) == 0 {
			fmt.Println(warnStyle.Render("The model produced no usable breakdown. Stored an empty one; retry or adjust the requirements."))
			return nil
		}

		total := 0.0
		for _, f := range features {
			fmt.Println(sectionStyle.Render(f.Name))
			if f.Description != "" {
				fmt.Printf("  %s\n", f.Description)
			}
			for _, task := range f.Tasks {
				marker := " "
				if !task.Required {
					marker = "~" // optional
				}
				fmt.Printf("  %s %-40s %6.1fh\n", marker, task.Name, task.EstimatedHours)
			}
			fmt.Printf("  %s %.1fh\n\n", labelStyle.Render("subtotal:"), f.TotalHours())
			total += f.TotalHours()
		}
		fmt.Printf("Total estimated effort: %.1f hours across %d features\n", total, len(features))

		printWarnings(warnings)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(breakdownCmd)
}
