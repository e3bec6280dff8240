package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [section]",
	Short: "Render the stored proposal, or a single section",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		doc, err := services.Workspace.Repo.LoadProposal()
		if err != nil {
			return NewCLIError("no proposal stored", "Run 'proposer generate' first", err)
		}

		if len(args) == 1 {
			key := proposal.SectionKey(args[0])
			if !key.IsValid() {
				return MapError(fmt.Errorf("%w: %s", proposal.ErrUnknownSection, args[0]))
			}
			content, err := doc.Section(key)
			if err != nil {
				return fmt.Errorf("failed to read section: %w", err)
			}
			if showJSON {
				fmt.Println(content)
				return nil
			}
			fmt.Println(titleStyle.Render(key.Title()))
			fmt.Println(content)
			return nil
		}

		if showJSON {
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal proposal: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		renderProposal(doc)

		// Re-validate on display so hand-edited files surface drift.
		teamSize := 0
		if req, err := services.Workspace.Repo.LoadRequest(); err == nil && req != nil {
			teamSize = len(req.Team)
		}
		printWarnings(proposal.Validate(doc, teamSize))
		return nil
	},
}

func renderProposal(doc *proposal.StructuredProposal) {
	fmt.Println(titleStyle.Render(doc.ProposalTitle))
	fmt.Printf("%s %s | %s %s\n", labelStyle.Render("Client:"), doc.ClientName, labelStyle.Render("Type:"), doc.ProjectType)

	badges := make([]string, 0, len(doc.SummaryBadges))
	for _, b := range doc.SummaryBadges {
		badges = append(badges, b.Text)
	}
	if len(badges) > 0 {
		fmt.Printf("%s\n", strings.Join(badges, "  |  "))
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("Executive Summary"))
	fmt.Println(doc.ExecutiveSummary.SummaryText)
	for _, h := range doc.ExecutiveSummary.Highlights {
		fmt.Printf("  %s %s\n", labelStyle.Render(h.Label+":"), h.Value)
	}
	for _, g := range doc.ExecutiveSummary.ProjectGoals {
		fmt.Printf("  - %s: %s\n", g.Title, g.Description)
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("Requirements Analysis"))
	fmt.Println(doc.RequirementsAnalysis.Overview)
	if len(doc.RequirementsAnalysis.FunctionalRequirements) > 0 {
		fmt.Println(labelStyle.Render("Functional:"))
		for _, r := range doc.RequirementsAnalysis.FunctionalRequirements {
			fmt.Printf("  - %s\n", r)
		}
	}
	if len(doc.RequirementsAnalysis.NonFunctionalRequirements) > 0 {
		fmt.Println(labelStyle.Render("Non-functional:"))
		for _, r := range doc.RequirementsAnalysis.NonFunctionalRequirements {
			fmt.Printf("  - %s\n", r)
		}
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render(doc.FeatureBreakdown.Title))
	if doc.FeatureBreakdown.Subtitle != "" {
		fmt.Println(labelStyle.Render(doc.FeatureBreakdown.Subtitle))
	}
	for _, f := range doc.FeatureBreakdown.Features {
		fmt.Printf("  %s (%s)\n", f.Title, f.TotalHours)
		if f.Description != "" {
			fmt.Printf("    %s\n", f.Description)
		}
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render(doc.ProjectTimeline.Title))
	for _, p := range doc.ProjectTimeline.Phases {
		fmt.Printf("  %s (%s)\n", p.Title, p.Duration)
		for _, d := range p.KeyDeliverables {
			fmt.Printf("    - %s\n", d)
		}
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("Team & Resources"))
	fmt.Println(doc.TeamAndResources.Content)
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print raw JSON instead of rendering")
	RootCmd.AddCommand(showCmd)
}
