package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/proposer/internal/application"
	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
	"github.com/felixgeelhaar/proposer/internal/infrastructure/wiring"
)

type Server struct {
	mcpServer    *mcp.Server
	breakdownSvc *application.BreakdownService
	proposalSvc  *application.ProposalService
	sectionSvc   *application.SectionService
	industrySvc  *application.IndustryService
	usageSvc     *application.UsageService
	workspace    *wiring.Workspace
	providerID   string
	root         string
}

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// mcpErr returns a user-friendly error for MCP clients.
// Internal details are omitted; only the friendly message is returned.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

func NewServer(root string) (*Server, error) {
	services, err := wiring.BuildAppServices(root)
	if services == nil {
		return nil, fmt.Errorf("build services: %w", err)
	}

	info := mcp.ServerInfo{
		Name:    "proposer",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("Proposer MCP Server"),
			mcp.WithDescription("Proposer turns project requirements into structured business proposals for MCP clients."),
			mcp.WithWebsiteURL("https://github.com/felixgeelhaar/proposer"),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Use tools to store a project request, break requirements into features, estimate timelines, generate the proposal, and edit individual sections."),
		),
		breakdownSvc: services.Breakdown,
		proposalSvc:  services.Proposal,
		sectionSvc:   services.Section,
		industrySvc:  services.Industry,
		usageSvc:     services.Usage,
		workspace:    services.Workspace,
		providerID:   services.Provider.ID(),
		root:         root,
	}

	s.registerTools()
	return s, nil
}

type SetRequestArgs struct {
	ClientName   string `json:"client_name" jsonschema:"description=The client company name"`
	ProjectName  string `json:"project_name" jsonschema:"description=The working title of the project"`
	Requirements string `json:"requirements" jsonschema:"description=Free-form project requirements text"`
}

type TeamAddArgs struct {
	Role      string `json:"role" jsonschema:"description=Team member role such as Frontend Developer or Backend Developer"`
	Seniority string `json:"seniority" jsonschema:"description=Seniority tier: entry, junior, mid or senior"`
}

type EstimateArgs struct {
	Seniority string `json:"seniority,omitempty" jsonschema:"description=Seniority tier to estimate for; all tiers when omitted"`
}

type GenerateArgs struct {
	TimelineWeeks int `json:"timeline_weeks,omitempty" jsonschema:"description=Precomputed timeline estimate in weeks to ground the proposal"`
}

type EditSectionArgs struct {
	Section     string `json:"section" jsonschema:"description=Section key: executiveSummary, requirementsAnalysis, featureBreakdown, projectTimeline or teamAndResources"`
	Instruction string `json:"instruction" jsonschema:"description=What to change in the section"`
}

type SuggestIndustryArgs struct {
	CompanyName string `json:"company_name" jsonschema:"description=The company name to classify"`
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("proposer_init").
		Description("Initialize a proposer workspace in the current directory").
		Handler(s.handleInit)

	s.mcpServer.Tool("proposer_set_request").
		Description("Store the client name, project name and requirements for the proposal").
		Handler(s.handleSetRequest)

	s.mcpServer.Tool("proposer_team_add").
		Description("Add a team member with a role and seniority to the project request").
		Handler(s.handleTeamAdd)

	s.mcpServer.Tool("proposer_breakdown").
		Description("Break the stored requirements into features with task-level hour estimates").
		Handler(s.handleBreakdown)

	s.mcpServer.Tool("proposer_estimate").
		Description("Estimate the project timeline in weeks from the stored breakdown").
		Handler(s.handleEstimate)

	s.mcpServer.Tool("proposer_generate").
		Description("Generate the full structured proposal from the stored request and breakdown").
		Handler(s.handleGenerate)

	s.mcpServer.Tool("proposer_edit_section").
		Description("Regenerate one section of the stored proposal according to an instruction").
		Handler(s.handleEditSection)

	s.mcpServer.Tool("proposer_get_proposal").
		Description("Retrieve the stored structured proposal").
		Handler(s.handleGetProposal)

	s.mcpServer.Tool("proposer_suggest_industry").
		Description("Suggest likely industries for a company name").
		Handler(s.handleSuggestIndustry)

	s.mcpServer.Tool("proposer_usage").
		Description("Report aggregate AI call statistics for this workspace").
		Handler(s.handleUsage)
}

func (s *Server) handleInit(ctx context.Context, args struct{}) (string, error) {
	if err := s.workspace.Repo.Initialize(); err != nil {
		return "", mcpErr("Failed to initialize workspace. Check directory permissions.")
	}
	return "Proposer workspace initialized", nil
}

func (s *Server) handleSetRequest(ctx context.Context, args SetRequestArgs) (string, error) {
	if strings.TrimSpace(args.Requirements) == "" {
		return "", mcpErr("Requirements must not be empty.")
	}

	req, _ := s.workspace.Repo.LoadRequest()
	if req == nil {
		req = &proposal.ProjectRequest{}
	}
	req.ClientName = args.ClientName
	req.ProjectName = args.ProjectName
	req.Requirements = args.Requirements

	if err := s.workspace.Repo.SaveRequest(req); err != nil {
		return "", mcpErr("Failed to store the project request. Run proposer_init first.")
	}
	return fmt.Sprintf("Request stored for %s / %s", args.ClientName, args.ProjectName), nil
}

func (s *Server) handleTeamAdd(ctx context.Context, args TeamAddArgs) (string, error) {
	role := proposal.Role(args.Role)
	seniority := proposal.Seniority(strings.ToLower(args.Seniority))
	if !role.IsValid() {
		return "", mcpErr("Unknown role. Valid roles: " + joinRoles())
	}
	if !seniority.IsValid() {
		return "", mcpErr("Unknown seniority. Valid tiers: entry, junior, mid, senior.")
	}

	req, _ := s.workspace.Repo.LoadRequest()
	if req == nil {
		req = &proposal.ProjectRequest{}
	}
	member := proposal.NewTeamMember(role, seniority)
	req.Team = append(req.Team, member)

	if err := s.workspace.Repo.SaveRequest(req); err != nil {
		return "", mcpErr("Failed to store the team member. Run proposer_init first.")
	}
	return fmt.Sprintf("Added %s %s (%s)", seniority, role, member.ID), nil
}

func (s *Server) handleBreakdown(ctx context.Context, args struct{}) (any, error) {
	req, err := s.workspace.Repo.LoadRequest()
	if err != nil || req == nil {
		return nil, mcpErr("No project request found. Call proposer_set_request first.")
	}

	features, warnings := s.breakdownSvc.GenerateBreakdown(ctx, req.Requirements)
	if err := s.workspace.Repo.SaveBreakdown(features); err != nil {
		return nil, mcpErr("Failed to store the breakdown.")
	}
	s.recordUsage()

	return map[string]any{
		"features": features,
		"warnings": warnings,
	}, nil
}

func (s *Server) handleEstimate(ctx context.Context, args EstimateArgs) (any, error) {
	features, err := s.workspace.Repo.LoadBreakdown()
	if err != nil {
		return nil, mcpErr("Failed to load the breakdown. Call proposer_breakdown first.")
	}
	if len(features) == 0 {
		return nil, mcpErr("No breakdown stored. Call proposer_breakdown first.")
	}

	total := 0.0
	for _, f := range features {
		total += f.TotalHours()
	}

	if args.Seniority != "" {
		tier := proposal.Seniority(strings.ToLower(args.Seniority))
		if !tier.IsValid() {
			return nil, mcpErr("Unknown seniority. Valid tiers: entry, junior, mid, senior.")
		}
		return map[string]any{
			"totalHours":     total,
			"seniority":      tier,
			"estimatedWeeks": proposal.EstimateTimelineHours(total, tier),
		}, nil
	}

	weeks := map[string]int{}
	for _, tier := range []proposal.Seniority{proposal.SeniorityEntry, proposal.SeniorityJunior, proposal.SeniorityMid, proposal.SenioritySenior} {
		weeks[string(tier)] = proposal.EstimateTimelineHours(total, tier)
	}
	return map[string]any{
		"totalHours":     total,
		"estimatedWeeks": weeks,
	}, nil
}

func (s *Server) handleGenerate(ctx context.Context, args GenerateArgs) (any, error) {
	req, err := s.workspace.Repo.LoadRequest()
	if err != nil || req == nil {
		return nil, mcpErr("No project request found. Call proposer_set_request first.")
	}

	breakdown, _ := s.workspace.Repo.LoadBreakdown()
	doc, warnings, err := s.proposalSvc.GenerateProposal(ctx, req, application.GenerateOptions{
		Breakdown:     breakdown,
		TimelineWeeks: args.TimelineWeeks,
	})
	if err != nil {
		return nil, mcpErr("Proposal generation failed. Check the AI provider configuration and retry.")
	}

	if err := s.workspace.Repo.SaveProposal(doc); err != nil {
		return nil, mcpErr("Failed to store the generated proposal.")
	}
	s.recordUsage()

	return map[string]any{
		"proposal": doc,
		"warnings": warnings,
	}, nil
}

func (s *Server) handleEditSection(ctx context.Context, args EditSectionArgs) (any, error) {
	key := proposal.SectionKey(args.Section)
	if !key.IsValid() {
		return nil, mcpErr("Unknown section. Valid keys: " + strings.Join(sectionKeyStrings(), ", "))
	}

	doc, err := s.workspace.Repo.LoadProposal()
	if err != nil {
		return nil, mcpErr("No proposal stored. Call proposer_generate first.")
	}

	current, err := doc.Section(key)
	if err != nil {
		return nil, mcpErr("Failed to read the current section content.")
	}

	content, warnings, err := s.sectionSvc.EditSection(ctx, application.SectionEditRequest{
		Key:            key,
		CurrentContent: current,
		Instruction:    args.Instruction,
		Context: application.ProposalContext{
			Title:       doc.ProposalTitle,
			ClientName:  doc.ClientName,
			ProjectType: doc.ProjectType,
		},
	})
	if err != nil {
		return nil, mcpErr("Section edit failed. The model response could not be used; retry with a clearer instruction.")
	}

	if err := doc.ReplaceSection(key, content); err != nil {
		return nil, mcpErr("Failed to apply the edited section.")
	}
	if err := s.workspace.Repo.SaveProposal(doc); err != nil {
		return nil, mcpErr("Failed to store the updated proposal.")
	}
	s.recordUsage()

	return map[string]any{
		"section":  key,
		"content":  content,
		"warnings": warnings,
	}, nil
}

func (s *Server) handleGetProposal(ctx context.Context, args struct{}) (any, error) {
	doc, err := s.workspace.Repo.LoadProposal()
	if err != nil {
		return nil, mcpErr("No proposal stored. Call proposer_generate first.")
	}
	return doc, nil
}

func (s *Server) handleSuggestIndustry(ctx context.Context, args SuggestIndustryArgs) (any, error) {
	if strings.TrimSpace(args.CompanyName) == "" {
		return nil, mcpErr("Company name must not be empty.")
	}
	industries, err := s.industrySvc.SuggestIndustries(ctx, args.CompanyName)
	if err != nil {
		return nil, mcpErr("Industry suggestion failed. Check the AI provider configuration and retry.")
	}
	s.recordUsage()
	return industries, nil
}

func (s *Server) handleUsage(ctx context.Context, args struct{}) (any, error) {
	stats, err := s.usageSvc.Stats()
	if err != nil {
		return nil, mcpErr("Failed to load usage statistics.")
	}
	return stats, nil
}

func (s *Server) recordUsage() {
	if s.workspace.Repo.IsInitialized() {
		_ = s.usageSvc.RecordCall(s.providerID)
	}
}

func joinRoles() string {
	roles := proposal.ValidRoles()
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

func sectionKeyStrings() []string {
	keys := proposal.SectionKeys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

func (s *Server) Start() error {
	return s.StartStdio()
}

func (s *Server) StartStdio() error {
	return s.ServeStdio(context.Background())
}

func (s *Server) StartHTTP(addr string) error {
	return s.ServeHTTP(context.Background(), addr)
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}
