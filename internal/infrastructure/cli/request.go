package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

var (
	requestClient  string
	requestProject string
	requestText    string
	requestFile    string
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Manage the stored project request",
}

var requestSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the client, project name and requirements for the proposal",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if !services.Workspace.Repo.IsInitialized() {
			return NewCLIError("proposer is not initialized in this directory", "Run 'proposer init' first", nil)
		}

		requirements := requestText
		if requestFile != "" {
			data, err := os.ReadFile(requestFile)
			if err != nil {
				return fmt.Errorf("failed to read requirements file: %w", err)
			}
			requirements = string(data)
		}

		req, _ := services.Workspace.Repo.LoadRequest()
		if req == nil {
			req = &proposal.ProjectRequest{}
		}
		if requestClient != "" {
			req.ClientName = requestClient
		}
		if requestProject != "" {
			req.ProjectName = requestProject
		}
		if strings.TrimSpace(requirements) != "" {
			req.Requirements = requirements
		}

		if strings.TrimSpace(req.Requirements) == "" {
			return NewCLIError("no requirements provided", "Pass --requirements or --file with the project requirements", nil)
		}

		if err := services.Workspace.Repo.SaveRequest(req); err != nil {
			return fmt.Errorf("failed to save request: %w", err)
		}

		_ = services.Audit.Log("request.set", "user", map[string]interface{}{
			"client":  req.ClientName,
			"project": req.ProjectName,
		})

		fmt.Printf("Request stored for %s / %s\n", req.ClientName, req.ProjectName)
		return nil
	},
}

var requestShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored project request",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		req, err := services.Workspace.Repo.LoadRequest()
		if err != nil {
			return NewCLIError("no project request found", "Run 'proposer request set' first", err)
		}

		fmt.Printf("Client:  %s\n", req.ClientName)
		fmt.Printf("Project: %s\n", req.ProjectName)
		if len(req.Team) > 0 {
			team := proposal.NormalizeTeam(req.Team)
			fmt.Printf("Team:    %s (%d members)\n", team.Canonical, team.Count)
		}
		fmt.Printf("\nRequirements:\n%s\n", req.Requirements)
		return nil
	},
}

func init() {
	requestSetCmd.Flags().StringVar(&requestClient, "client", "", "Client company name")
	requestSetCmd.Flags().StringVar(&requestProject, "name", "", "Project name")
	requestSetCmd.Flags().StringVar(&requestText, "requirements", "", "Project requirements text")
	requestSetCmd.Flags().StringVarP(&requestFile, "file", "f", "", "Read requirements from a file")

	requestCmd.AddCommand(requestSetCmd)
	requestCmd.AddCommand(requestShowCmd)
	RootCmd.AddCommand(requestCmd)
}
