package proposal

import (
	"strings"
	"unicode"
)

// TeamComposition is the canonical form of a team for prompt embedding and
// downstream validation. Count is the exact headcount and is treated as
// ground truth by the proposal validator.
type TeamComposition struct {
	Members   []TeamMember
	Canonical string
	Count     int
}

// NormalizeTeam converts an ordered member list into its canonical form.
// No member is dropped or merged; duplicate role+seniority pairs remain
// distinct individuals.
func NormalizeTeam(members []TeamMember) TeamComposition {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		parts = append(parts, describeMember(m))
	}
	return TeamComposition{
		Members:   members,
		Canonical: strings.Join(parts, ", "),
		Count:     len(members),
	}
}

func describeMember(m TeamMember) string {
	s := strings.TrimSpace(string(m.Seniority))
	if s == "" {
		return string(m.Role)
	}
	return capitalize(s) + " " + string(m.Role)
}

func capitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// NormalizeRoleFlags accepts the legacy per-role boolean map keyed by
// camelCase role names (e.g. "frontendDeveloper") and converts selected roles
// into Mid-seniority members in role declaration order.
func NormalizeRoleFlags(flags map[string]bool) TeamComposition {
	var members []TeamMember
	for _, role := range ValidRoles() {
		if flags[legacyKey(role)] {
			members = append(members, NewTeamMember(role, SeniorityMid))
		}
	}
	return NormalizeTeam(members)
}

// LegacyRoleKeys lists the accepted camelCase role keys in role declaration
// order.
func LegacyRoleKeys() []string {
	roles := ValidRoles()
	keys := make([]string, 0, len(roles))
	for _, r := range roles {
		keys = append(keys, legacyKey(r))
	}
	return keys
}

// legacyKey maps a role to its legacy camelCase form.
func legacyKey(r Role) string {
	switch r {
	case RoleFrontendDeveloper:
		return "frontendDeveloper"
	case RoleBackendDeveloper:
		return "backendDeveloper"
	case RoleBusinessAnalyst:
		return "businessAnalyst"
	case RoleUIUXDesigner:
		return "uiUxDesigner"
	case RoleQAEngineer:
		return "qaEngineer"
	case RoleProjectManager:
		return "projectManager"
	}
	return ""
}
