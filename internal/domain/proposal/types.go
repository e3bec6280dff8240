package proposal

import "github.com/google/uuid"

// Role defines the project role of a team member.
type Role string

const (
	RoleFrontendDeveloper Role = "Frontend Developer"
	RoleBackendDeveloper  Role = "Backend Developer"
	RoleBusinessAnalyst   Role = "Business Analyst"
	RoleUIUXDesigner      Role = "UI/UX Designer"
	RoleQAEngineer        Role = "QA Engineer"
	RoleProjectManager    Role = "Project Manager"
)

// ValidRoles returns all valid role values.
func ValidRoles() []Role {
	return []Role{
		RoleFrontendDeveloper,
		RoleBackendDeveloper,
		RoleBusinessAnalyst,
		RoleUIUXDesigner,
		RoleQAEngineer,
		RoleProjectManager,
	}
}

// IsValid checks if the role is a recognized value.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles() {
		if r == v {
			return true
		}
	}
	return false
}

// Seniority defines the experience tier of a team member.
type Seniority string

const (
	SeniorityEntry  Seniority = "entry"
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// IsValid checks if the seniority is a recognized tier.
func (s Seniority) IsValid() bool {
	switch s {
	case SeniorityEntry, SeniorityJunior, SeniorityMid, SenioritySenior:
		return true
	}
	return false
}

// Multiplier returns the effort multiplier applied to raw task hours.
// Unknown tiers get the base multiplier.
func (s Seniority) Multiplier() float64 {
	switch s {
	case SeniorityEntry, SeniorityJunior:
		return 1.5
	case SeniorityMid:
		return 1.2
	case SenioritySenior:
		return 1.0
	default:
		return 1.0
	}
}

// TeamMember is one individual on the proposed team. Identity is by
// generated ID; duplicate role+seniority pairs are distinct individuals.
type TeamMember struct {
	ID        string    `yaml:"id" json:"id"`
	Role      Role      `yaml:"role" json:"role"`
	Seniority Seniority `yaml:"seniority" json:"seniority"`
}

// NewTeamMember creates a member with a generated ID.
func NewTeamMember(role Role, seniority Seniority) TeamMember {
	return TeamMember{ID: uuid.NewString(), Role: role, Seniority: seniority}
}

// ProjectRequest is the immutable input to proposal generation.
type ProjectRequest struct {
	ClientName   string       `yaml:"client_name" json:"clientName"`
	ProjectName  string       `yaml:"project_name" json:"projectName"`
	Requirements string       `yaml:"requirements" json:"requirements"`
	Team         []TeamMember `yaml:"team" json:"team"`
}

// Task is an atomic unit of work inside a feature.
type Task struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	EstimatedHours float64 `json:"estimatedHours"`
	Required       bool    `json:"isRequired"`
}

// Feature is a named group of tasks produced by the breakdown generator.
type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"isRequired"`
	Tasks       []Task `json:"tasks"`
}

// TotalHours sums the estimated hours of all tasks, required or not.
func (f Feature) TotalHours() float64 {
	var total float64
	for _, t := range f.Tasks {
		total += t.EstimatedHours
	}
	return total
}

// SummaryBadge is a short header badge on the proposal.
type SummaryBadge struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// HighlightItem is one of the three highlight cards in the executive summary.
type HighlightItem struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	ColorName string `json:"colorName"`
}

// ProjectGoal is a single goal in the executive summary.
type ProjectGoal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ExecutiveSummary holds the summary text, exactly 3 highlights and 2-5 goals.
type ExecutiveSummary struct {
	SummaryText  string          `json:"summaryText"`
	Highlights   []HighlightItem `json:"highlights"`
	ProjectGoals []ProjectGoal   `json:"projectGoals"`
}

// RequirementsAnalysis holds the requirements overview and derived lists.
type RequirementsAnalysis struct {
	Overview                  string   `json:"projectRequirementsOverview"`
	FunctionalRequirements    []string `json:"functionalRequirements"`
	NonFunctionalRequirements []string `json:"nonFunctionalRequirements"`
}

// Tag is a short colored label on a feature card.
type Tag struct {
	Text        string `json:"text"`
	ColorScheme string `json:"colorScheme"`
}

// ResourceAllocationItem maps a role to estimated hours for one feature.
type ResourceAllocationItem struct {
	Role  string `json:"role"`
	Hours string `json:"hours"`
}

// FeatureItem is one card in the feature breakdown section.
type FeatureItem struct {
	ID                        string                   `json:"id"`
	Title                     string                   `json:"title"`
	Description               string                   `json:"description"`
	TotalHours                string                   `json:"totalHours"`
	Tags                      []Tag                    `json:"tags,omitempty"`
	FunctionalFeatures        []string                 `json:"functionalFeatures,omitempty"`
	NonFunctionalRequirements []string                 `json:"nonFunctionalRequirements,omitempty"`
	ResourceAllocation        []ResourceAllocationItem `json:"resourceAllocation,omitempty"`
}

// FeatureBreakdown is the 2-4 card feature section.
type FeatureBreakdown struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Features []FeatureItem `json:"features"`
}

// TimelinePhase is one of the 3-5 project phases.
type TimelinePhase struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Duration            string   `json:"duration"`
	PercentageOfProject string   `json:"percentageOfProject,omitempty"`
	KeyDeliverables     []string `json:"keyDeliverables"`
}

// ProjectTimeline is the phased timeline section.
type ProjectTimeline struct {
	Title  string          `json:"title"`
	Phases []TimelinePhase `json:"phases"`
}

// TeamAndResources is the team description section.
type TeamAndResources struct {
	Content string `json:"content"`
}

// StructuredProposal is the full generated document. Each top-level section
// is independently replaceable without touching its siblings.
type StructuredProposal struct {
	ProposalTitle        string               `json:"proposalTitle"`
	ClientName           string               `json:"clientName"`
	ProjectType          string               `json:"projectType"`
	SummaryBadges        []SummaryBadge       `json:"summaryBadges"`
	ExecutiveSummary     ExecutiveSummary     `json:"executiveSummary"`
	RequirementsAnalysis RequirementsAnalysis `json:"requirementsAnalysis"`
	FeatureBreakdown     FeatureBreakdown     `json:"featureBreakdown"`
	ProjectTimeline      ProjectTimeline      `json:"projectTimeline"`
	TeamAndResources     TeamAndResources     `json:"teamAndResources"`
}
