package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/proposer/internal/infrastructure/config"
	"github.com/felixgeelhaar/proposer/internal/infrastructure/storage"
	"github.com/felixgeelhaar/proposer/internal/infrastructure/webhook"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Inspect outgoing notification targets",
}

var notifyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured webhook and messaging targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}

		cfg, err := config.LoadNotifyConfig(cwd)
		if err != nil {
			return fmt.Errorf("failed to load notify config: %w", err)
		}
		if cfg == nil || (len(cfg.Webhooks) == 0 && len(cfg.Adapters) == 0) {
			fmt.Println("No notification targets configured. Add them to .proposer/notify.yaml.")
			return nil
		}

		if len(cfg.Webhooks) > 0 {
			fmt.Println(sectionStyle.Render("Webhooks"))
			for _, w := range cfg.Webhooks {
				state := "enabled"
				if !w.Enabled {
					state = "disabled"
				}
				fmt.Printf("  %-20s %s (%s)\n", w.Name, w.URL, state)
			}
		}
		if len(cfg.Adapters) > 0 {
			fmt.Println(sectionStyle.Render("Messaging"))
			for _, a := range cfg.Adapters {
				state := "enabled"
				if !a.Enabled {
					state = "disabled"
				}
				fmt.Printf("  %-20s %-8s %s (%s)\n", a.Name, a.Type, a.URL, state)
			}
		}
		return nil
	},
}

var notifyDeadLetterCmd = &cobra.Command{
	Use:   "deadletter",
	Short: "Show webhook deliveries that exhausted their retries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}

		path, err := storage.NewFilesystemRepository(cwd).ResolvePath(storage.DeadLetterFile)
		if err != nil {
			return err
		}
		entries, err := webhook.NewDeadLetterStore(path).ReadAll()
		if err != nil {
			return fmt.Errorf("failed to read dead letters: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No failed deliveries.")
			return nil
		}

		for _, dl := range entries {
			fmt.Printf("%s  %-20s %s\n", dl.Timestamp.Format("2006-01-02 15:04:05"), dl.WebhookName, dl.Action)
			fmt.Printf("  %s after %d attempts: %s\n", dl.URL, dl.Attempts, dl.Error)
		}
		return nil
	},
}

func init() {
	notifyCmd.AddCommand(notifyListCmd)
	notifyCmd.AddCommand(notifyDeadLetterCmd)
	RootCmd.AddCommand(notifyCmd)
}
