package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/proposer/internal/application"
	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

var generateTimelineWeeks int

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the full structured proposal from the stored request",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		req, err := services.Workspace.Repo.LoadRequest()
		if err != nil || req == nil {
			return NewCLIError("no project request found", "Run 'proposer request set' first", err)
		}
		if strings.TrimSpace(req.Requirements) == "" {
			return NewCLIError("the stored request has no requirements", "Run 'proposer request set --requirements ...'", nil)
		}

		breakdown, _ := services.Workspace.Repo.LoadBreakdown()

		timelineWeeks := generateTimelineWeeks
		if timelineWeeks == 0 && len(breakdown) > 0 && len(req.Team) > 0 {
			// Ground the proposal in the estimate for the team's top tier.
			timelineWeeks = proposal.EstimateTimeline(breakdown, topSeniority(req.Team))
		}

		fmt.Println("Generating proposal...")
		doc, warnings, err := services.Proposal.GenerateProposal(cmd.Context(), req, application.GenerateOptions{
			Breakdown:     breakdown,
			TimelineWeeks: timelineWeeks,
		})
		if err != nil {
			return MapError(err)
		}

		if err := services.Workspace.Repo.SaveProposal(doc); err != nil {
			return fmt.Errorf("failed to save proposal: %w", err)
		}
		_ = services.Usage.RecordCall(services.Provider.ID())
		if err := services.Notify.Emit(cmd.Context(), "proposal.generate", "user", map[string]interface{}{
			"title":  doc.ProposalTitle,
			"client": doc.ClientName,
		}); err != nil {
			fmt.Printf("%s notification delivery: %v\n", warnStyle.Render("!"), err)
		}

		fmt.Printf("Proposal generated: %s\n", doc.ProposalTitle)
		printWarnings(warnings)
		fmt.Println("\nRun 'proposer show' to render it, or 'proposer edit <section>' to refine a section.")
		return nil
	},
}

// topSeniority returns the most senior tier present in the team, since the
// strongest member dominates delivery pace for small teams.
func topSeniority(team []proposal.TeamMember) proposal.Seniority {
	order := []proposal.Seniority{proposal.SenioritySenior, proposal.SeniorityMid, proposal.SeniorityJunior, proposal.SeniorityEntry}
	for _, tier := range order {
		for _, m := range team {
			if m.Seniority == tier {
				return tier
			}
		}
	}
	return proposal.SeniorityMid
}

func init() {
	generateCmd.Flags().IntVar(&generateTimelineWeeks, "timeline", 0, "Timeline in weeks to ground the proposal (0 = derive from the breakdown)")
	RootCmd.AddCommand(generateCmd)
}
