package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and verify the proposal history",
}

var auditLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the recorded workspace events",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		services, err := loadServices(cwd)
		if err != nil {
			return err
		}

		events, err := services.Audit.GetTimeline()
		if err != nil {
			return fmt.Errorf("failed to load audit timeline: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No events recorded yet.")
			return nil
		}

		fmt.Println(sectionStyle.Render("Audit timeline"))
		for _, ev := range events {
			fmt.Printf("  %s  %-18s %s\n", ev.Timestamp.Format("2006-01-02 15:04:05"), ev.Action, ev.Actor)
		}
		return nil
	},
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the integrity of the audit trail",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		services, err := loadServices(cwd)
		if err != nil {
			return err
		}

		fmt.Println("Verifying audit trail integrity...")
		violations, err := services.Audit.VerifyIntegrity()
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		if len(violations) == 0 {
			fmt.Println(okStyle.Render("Audit trail is intact and verified."))
			return nil
		}

		fmt.Printf("Found %d integrity violations:\n", len(violations))
		for _, v := range violations {
			fmt.Printf("  - %s\n", v)
		}
		os.Exit(1)
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditLogCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	RootCmd.AddCommand(auditCmd)
}
