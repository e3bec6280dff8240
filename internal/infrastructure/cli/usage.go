package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show AI call statistics for this workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		stats, err := services.Usage.Stats()
		if err != nil {
			return fmt.Errorf("failed to load usage stats: %w", err)
		}

		fmt.Println("AI Usage")
		fmt.Println("--------")
		fmt.Printf("Total Calls: %d\n", stats.TotalCalls)
		if !stats.LastCallAt.IsZero() {
			fmt.Printf("Last Call:   %s\n", stats.LastCallAt.Format("2006-01-02 15:04:05"))
		}

		if len(stats.ProviderStats) > 0 {
			fmt.Println("\nCalls per provider")

			// Sort keys for stable output
			keys := make([]string, 0, len(stats.ProviderStats))
			for k := range stats.ProviderStats {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				fmt.Printf("- %-25s: %d\n", k, stats.ProviderStats[k])
			}
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(usageCmd)
}
