package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var suggestIndustryCmd = &cobra.Command{
	Use:   "suggest-industry <company-name>",
	Short: "Suggest likely industries for a client company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		industries, err := services.Industry.SuggestIndustries(cmd.Context(), args[0])
		if err != nil {
			return MapError(err)
		}
		_ = services.Usage.RecordCall(services.Provider.ID())

		fmt.Printf("Suggested industries for %s:\n", args[0])
		for _, industry := range industries {
			fmt.Printf("  - %s\n", industry)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(suggestIndustryCmd)
}
