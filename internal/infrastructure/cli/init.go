package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

var initCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Initialize a new proposer workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		if err := services.Workspace.Repo.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize workspace: %w", err)
		}

		projectName := "new-project"
		if len(args) > 0 {
			projectName = args[0]
		}

		req, _ := services.Workspace.Repo.LoadRequest()
		if req == nil {
			req = &proposal.ProjectRequest{ProjectName: projectName}
			if err := services.Workspace.Repo.SaveRequest(req); err != nil {
				return fmt.Errorf("failed to seed project request: %w", err)
			}
		}

		_ = services.Audit.Log("workspace.init", "user", map[string]interface{}{"project": projectName})

		fmt.Printf("Successfully initialized proposer workspace: %s\n", projectName)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
