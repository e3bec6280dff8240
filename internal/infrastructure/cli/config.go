package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/proposer/internal/infrastructure/config"
)

var (
	cfgProvider     string
	cfgModel        string
	cfgMaxRetries   int
	cfgRetryDelayMs int
	cfgTimeoutSec   int
	cfgInteractive  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure the AI provider and resilience settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, cErr := getProjectRoot()
		if cErr != nil {
			return fmt.Errorf("resolve project path: %w", cErr)
		}

		services, err := loadServices(cwd)
		if err != nil {
			return err
		}
		if !services.Workspace.Repo.IsInitialized() {
			return NewCLIError("proposer is not initialized in this directory", "Run 'proposer init' first", nil)
		}

		aiCfg, err := config.LoadAIConfig(cwd)
		if err != nil {
			return fmt.Errorf("failed to load AI config: %w", err)
		}
		if aiCfg == nil {
			aiCfg = &config.AIConfig{}
		}

		if cfgInteractive {
			if err := promptAIConfig(aiCfg); err != nil {
				return err
			}
		} else {
			if err := applyConfigFlags(cmd, aiCfg); err != nil {
				return err
			}
		}

		if err := validateAIConfig(aiCfg); err != nil {
			return err
		}

		if err := config.SaveAIConfig(cwd, aiCfg); err != nil {
			return fmt.Errorf("failed to save AI config: %w", err)
		}

		fmt.Println("AI configuration saved.")
		fmt.Println("- Provider/model defaults live in .proposer/ai.yaml and drive both CLI and MCP")
		fmt.Println("- PROPOSER_AI_PROVIDER and PROPOSER_AI_MODEL environment variables override them")
		return nil
	},
}

func promptAIConfig(aiCfg *config.AIConfig) error {
	reader := bufio.NewReader(os.Stdin)

	provider, err := promptString(reader, "AI provider (ollama/openai/anthropic/gemini/mock)", defaultString(aiCfg.Provider, "ollama"))
	if err != nil {
		return err
	}
	aiCfg.Provider = provider

	model, err := promptString(reader, "AI model", defaultString(aiCfg.Model, "llama3"))
	if err != nil {
		return err
	}
	aiCfg.Model = model

	retries, err := promptInt(reader, "Max retries (0 = default)", aiCfg.MaxRetries)
	if err != nil {
		return err
	}
	aiCfg.MaxRetries = retries

	timeout, err := promptInt(reader, "Timeout seconds (0 = default)", aiCfg.TimeoutSec)
	if err != nil {
		return err
	}
	aiCfg.TimeoutSec = timeout

	return nil
}

func applyConfigFlags(cmd *cobra.Command, aiCfg *config.AIConfig) error {
	if cfgProvider == "" && cfgModel == "" &&
		!cmd.Flags().Changed("max-retries") && !cmd.Flags().Changed("retry-delay-ms") && !cmd.Flags().Changed("timeout-sec") {
		return fmt.Errorf("no configuration provided; use flags or --interactive")
	}

	if cfgProvider != "" {
		aiCfg.Provider = cfgProvider
	}
	if cfgModel != "" {
		aiCfg.Model = cfgModel
	}
	if cmd.Flags().Changed("max-retries") {
		aiCfg.MaxRetries = cfgMaxRetries
	}
	if cmd.Flags().Changed("retry-delay-ms") {
		aiCfg.RetryDelayMs = cfgRetryDelayMs
	}
	if cmd.Flags().Changed("timeout-sec") {
		aiCfg.TimeoutSec = cfgTimeoutSec
	}

	return nil
}

func validateAIConfig(aiCfg *config.AIConfig) error {
	provider := strings.ToLower(strings.TrimSpace(aiCfg.Provider))
	switch provider {
	case "", "ollama", "openai", "anthropic", "gemini", "mock":
		// ok
	default:
		return fmt.Errorf("unsupported AI provider: %s", aiCfg.Provider)
	}

	if aiCfg.MaxRetries < 0 || aiCfg.RetryDelayMs < 0 || aiCfg.TimeoutSec < 0 {
		return fmt.Errorf("resilience settings must not be negative")
	}

	return nil
}

func promptString(reader *bufio.Reader, label string, def string) (string, error) {
	fmt.Printf("%s [%s]: ", label, def)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return def, nil
	}
	return value, nil
}

func promptInt(reader *bufio.Reader, label string, def int) (int, error) {
	for {
		fmt.Printf("%s [%d]: ", label, def)
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, err
		}
		value := strings.TrimSpace(line)
		if value == "" {
			return def, nil
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			fmt.Println("Please enter a valid number.")
			continue
		}
		return parsed, nil
	}
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func init() {
	configCmd.Flags().StringVar(&cfgProvider, "provider", "", "AI provider (ollama/openai/anthropic/gemini/mock)")
	configCmd.Flags().StringVar(&cfgModel, "model", "", "AI model identifier")
	configCmd.Flags().IntVar(&cfgMaxRetries, "max-retries", 0, "Retry attempts for AI calls (0 = default)")
	configCmd.Flags().IntVar(&cfgRetryDelayMs, "retry-delay-ms", 0, "Initial retry delay in milliseconds (0 = default)")
	configCmd.Flags().IntVar(&cfgTimeoutSec, "timeout-sec", 0, "AI call timeout in seconds (0 = default)")
	configCmd.Flags().BoolVar(&cfgInteractive, "interactive", false, "Prompt for configuration interactively")
	RootCmd.AddCommand(configCmd)
}
