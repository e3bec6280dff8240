package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage the project team used for estimates and proposals",
}

var teamAddCmd = &cobra.Command{
	Use:   "add <role> <seniority>",
	Short: "Add a team member (e.g. 'Backend Developer' senior)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		role := proposal.Role(args[0])
		seniority := proposal.Seniority(strings.ToLower(args[1]))

		if !role.IsValid() {
			return NewCLIError(
				fmt.Sprintf("unknown role %q", args[0]),
				"Valid roles: "+rolesHint(),
				nil,
			)
		}
		if !seniority.IsValid() {
			return NewCLIError(
				fmt.Sprintf("unknown seniority %q", args[1]),
				"Valid tiers: entry, junior, mid, senior",
				nil,
			)
		}

		req, _ := services.Workspace.Repo.LoadRequest()
		if req == nil {
			req = &proposal.ProjectRequest{}
		}
		member := proposal.NewTeamMember(role, seniority)
		req.Team = append(req.Team, member)

		if err := services.Workspace.Repo.SaveRequest(req); err != nil {
			return fmt.Errorf("failed to save team member: %w", err)
		}

		_ = services.Audit.Log("team.add", "user", map[string]interface{}{
			"role":      string(role),
			"seniority": string(seniority),
		})

		fmt.Printf("Added %s %s (%s)\n", seniority, role, member.ID)
		return nil
	},
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the project team",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		req, err := services.Workspace.Repo.LoadRequest()
		if err != nil || req == nil || len(req.Team) == 0 {
			fmt.Println("No team members. Add one with 'proposer team add <role> <seniority>'.")
			return nil
		}

		team := proposal.NormalizeTeam(req.Team)
		for _, m := range req.Team {
			fmt.Printf("- %-10s %-22s %s\n", m.Seniority, m.Role, m.ID)
		}
		fmt.Printf("\n%d members: %s\n", team.Count, team.Canonical)
		return nil
	},
}

var teamRemoveCmd = &cobra.Command{
	Use:   "remove <member-id>",
	Short: "Remove a team member by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		req, err := services.Workspace.Repo.LoadRequest()
		if err != nil || req == nil {
			return NewCLIError("no project request found", "Run 'proposer init' first", err)
		}

		kept := req.Team[:0]
		removed := false
		for _, m := range req.Team {
			if m.ID == args[0] {
				removed = true
				continue
			}
			kept = append(kept, m)
		}
		if !removed {
			return NewCLIError(
				fmt.Sprintf("no team member with ID %q", args[0]),
				"Run 'proposer team list' to see member IDs",
				nil,
			)
		}
		req.Team = kept

		if err := services.Workspace.Repo.SaveRequest(req); err != nil {
			return fmt.Errorf("failed to save team: %w", err)
		}

		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

var teamSetRoles []string

var teamSetCmd = &cobra.Command{
	Use:   "set --roles <key,...>",
	Short: "Replace the team from role flags (e.g. --roles frontendDeveloper,backendDeveloper)",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if len(teamSetRoles) == 0 {
			return NewCLIError(
				"no roles given",
				"Pass --roles with one or more of: "+strings.Join(proposal.LegacyRoleKeys(), ", "),
				nil,
			)
		}

		flags := make(map[string]bool, len(teamSetRoles))
		for _, key := range teamSetRoles {
			key = strings.TrimSpace(key)
			if !isLegacyRoleKey(key) {
				return NewCLIError(
					fmt.Sprintf("unknown role key %q", key),
					"Valid keys: "+strings.Join(proposal.LegacyRoleKeys(), ", "),
					nil,
				)
			}
			flags[key] = true
		}

		team := proposal.NormalizeRoleFlags(flags)

		req, _ := services.Workspace.Repo.LoadRequest()
		if req == nil {
			req = &proposal.ProjectRequest{}
		}
		req.Team = team.Members

		if err := services.Workspace.Repo.SaveRequest(req); err != nil {
			return fmt.Errorf("failed to save team: %w", err)
		}

		_ = services.Audit.Log("team.set", "user", map[string]interface{}{
			"count": team.Count,
		})

		fmt.Printf("Team set: %s (%d members)\n", team.Canonical, team.Count)
		return nil
	},
}

func isLegacyRoleKey(key string) bool {
	for _, k := range proposal.LegacyRoleKeys() {
		if k == key {
			return true
		}
	}
	return false
}

func rolesHint() string {
	roles := proposal.ValidRoles()
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

func init() {
	teamSetCmd.Flags().StringSliceVar(&teamSetRoles, "roles", nil, "comma-separated legacy role keys")
	teamCmd.AddCommand(teamAddCmd)
	teamCmd.AddCommand(teamSetCmd)
	teamCmd.AddCommand(teamListCmd)
	teamCmd.AddCommand(teamRemoveCmd)
	RootCmd.AddCommand(teamCmd)
}
