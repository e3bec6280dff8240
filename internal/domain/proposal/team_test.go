package proposal_test

import (
	"testing"

	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

func TestNormalizeTeam_Count(t *testing.T) {
	team := []proposal.TeamMember{
		proposal.NewTeamMember(proposal.RoleFrontendDeveloper, proposal.SeniorityMid),
		proposal.NewTeamMember(proposal.RoleBackendDeveloper, proposal.SenioritySenior),
	}
	comp := proposal.NormalizeTeam(team)
	if comp.Count != 2 {
		t.Errorf("expected count 2, got %d", comp.Count)
	}
	if comp.Canonical != "Mid Frontend Developer, Senior Backend Developer" {
		t.Errorf("unexpected canonical form: %q", comp.Canonical)
	}
}

func TestNormalizeTeam_DuplicatesPreserved(t *testing.T) {
	team := []proposal.TeamMember{
		proposal.NewTeamMember(proposal.RoleBackendDeveloper, proposal.SeniorityMid),
		proposal.NewTeamMember(proposal.RoleBackendDeveloper, proposal.SeniorityMid),
		proposal.NewTeamMember(proposal.RoleBackendDeveloper, proposal.SeniorityMid),
	}
	comp := proposal.NormalizeTeam(team)
	if comp.Count != 3 {
		t.Errorf("duplicate role+seniority pairs are headcount: expected 3, got %d", comp.Count)
	}
	if len(comp.Members) != 3 {
		t.Errorf("no member may be merged or dropped: got %d", len(comp.Members))
	}
	if comp.Members[0].ID == comp.Members[1].ID {
		t.Error("members must have distinct IDs")
	}
}

func TestNormalizeTeam_Empty(t *testing.T) {
	comp := proposal.NormalizeTeam(nil)
	if comp.Count != 0 || comp.Canonical != "" {
		t.Errorf("expected empty composition, got count=%d canonical=%q", comp.Count, comp.Canonical)
	}
}

func TestNormalizeRoleFlags_Legacy(t *testing.T) {
	comp := proposal.NormalizeRoleFlags(map[string]bool{
		"frontendDeveloper": true,
		"qaEngineer":        true,
		"backendDeveloper":  false,
	})
	if comp.Count != 2 {
		t.Fatalf("expected 2 selected roles, got %d", comp.Count)
	}
	if comp.Members[0].Role != proposal.RoleFrontendDeveloper {
		t.Errorf("expected declaration order, got first role %q", comp.Members[0].Role)
	}
	if comp.Members[1].Role != proposal.RoleQAEngineer {
		t.Errorf("expected QA Engineer second, got %q", comp.Members[1].Role)
	}
	for _, m := range comp.Members {
		if m.Seniority != proposal.SeniorityMid {
			t.Errorf("legacy flags default to mid seniority, got %q", m.Seniority)
		}
	}
}

func TestRoleValidation(t *testing.T) {
	if !proposal.RoleQAEngineer.IsValid() {
		t.Error("QA Engineer should be a valid role")
	}
	if proposal.Role("DevOps Engineer").IsValid() {
		t.Error("roles outside the fixed set are invalid")
	}
	if !proposal.SeniorityEntry.IsValid() || proposal.Seniority("staff").IsValid() {
		t.Error("seniority validation mismatch")
	}
}
