package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/proposer/internal/application"
	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

var editInstruction string

var editCmd = &cobra.Command{
	Use:   "edit <section>",
	Short: "Regenerate one section of the stored proposal",
	Long: `Regenerate a single proposal section according to an instruction,
leaving every other section untouched. Sections:
  executiveSummary, requirementsAnalysis, featureBreakdown, projectTimeline, teamAndResources`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		key := proposal.SectionKey(args[0])
		if !key.IsValid() {
			return MapError(fmt.Errorf("%w: %s", proposal.ErrUnknownSection, args[0]))
		}
		if editInstruction == "" {
			return NewCLIError("no instruction provided", "Pass --instruction describing the change", nil)
		}

		doc, err := services.Workspace.Repo.LoadProposal()
		if err != nil {
			return NewCLIError("no proposal stored", "Run 'proposer generate' first", err)
		}

		current, err := doc.Section(key)
		if err != nil {
			return fmt.Errorf("failed to read section: %w", err)
		}

		fmt.Printf("Editing %s...\n", key.Title())
		content, warnings, err := services.Section.EditSection(cmd.Context(), application.SectionEditRequest{
			Key:            key,
			CurrentContent: current,
			Instruction:    editInstruction,
			Context: application.ProposalContext{
				Title:       doc.ProposalTitle,
				ClientName:  doc.ClientName,
				ProjectType: doc.ProjectType,
			},
		})
		if err != nil {
			return MapError(err)
		}

		if err := doc.ReplaceSection(key, content); err != nil {
			return fmt.Errorf("failed to apply section: %w", err)
		}
		if err := services.Workspace.Repo.SaveProposal(doc); err != nil {
			return fmt.Errorf("failed to save proposal: %w", err)
		}
		_ = services.Usage.RecordCall(services.Provider.ID())
		if err := services.Notify.Emit(cmd.Context(), "section.edit", "user", map[string]interface{}{
			"section": string(key),
		}); err != nil {
			fmt.Printf("%s notification delivery: %v\n", warnStyle.Render("!"), err)
		}

		fmt.Println(okStyle.Render(fmt.Sprintf("%s updated.", key.Title())))
		printWarnings(warnings)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editInstruction, "instruction", "i", "", "What to change in the section")
	RootCmd.AddCommand(editCmd)
}
