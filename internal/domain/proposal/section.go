package proposal

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
)

// SectionKey identifies one independently editable top-level section of a
// StructuredProposal. The set is closed; dispatch is on the typed key, never
// on a free-form string.
type SectionKey string

const (
	SectionExecutiveSummary     SectionKey = "executiveSummary"
	SectionRequirementsAnalysis SectionKey = "requirementsAnalysis"
	SectionFeatureBreakdown     SectionKey = "featureBreakdown"
	SectionProjectTimeline      SectionKey = "projectTimeline"
	SectionTeamAndResources     SectionKey = "teamAndResources"
)

// SectionKeys returns all section keys in document order.
func SectionKeys() []SectionKey {
	return []SectionKey{
		SectionExecutiveSummary,
		SectionRequirementsAnalysis,
		SectionFeatureBreakdown,
		SectionProjectTimeline,
		SectionTeamAndResources,
	}
}

// IsValid checks if the key is part of the closed section set.
func (k SectionKey) IsValid() bool {
	switch k {
	case SectionExecutiveSummary, SectionRequirementsAnalysis,
		SectionFeatureBreakdown, SectionProjectTimeline, SectionTeamAndResources:
		return true
	}
	return false
}

// Title renders the camelCase key as a human-readable heading,
// e.g. "executiveSummary" -> "Executive Summary".
func (k SectionKey) Title() string {
	var b strings.Builder
	for i, r := range string(k) {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// decodeSection parses raw JSON into the typed value for a section key.
func decodeSection(key SectionKey, raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	switch key {
	case SectionExecutiveSummary:
		var v ExecutiveSummary
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case SectionRequirementsAnalysis:
		var v RequirementsAnalysis
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case SectionFeatureBreakdown:
		var v FeatureBreakdown
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case SectionProjectTimeline:
		var v ProjectTimeline
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case SectionTeamAndResources:
		var v TeamAndResources
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, ErrUnknownSection
	}
}

// CanonicalizeSection parses raw section content and re-serializes it in the
// single canonical encoding, so incidental whitespace or key ordering from the
// model never leaks into the stored document. Canonicalizing already-canonical
// content is a no-op (round-trip law).
func CanonicalizeSection(key SectionKey, raw string) (string, error) {
	if !key.IsValid() {
		return "", ErrUnknownSection
	}
	v, err := decodeSection(key, []byte(raw))
	if err != nil {
		return "", &ParseError{Section: key, Snippet: Snippet(raw), Err: err}
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", &ParseError{Section: key, Snippet: Snippet(raw), Err: err}
	}
	return string(out), nil
}

// Section returns the canonical serialization of one section of the proposal.
func (p *StructuredProposal) Section(key SectionKey) (string, error) {
	var v any
	switch key {
	case SectionExecutiveSummary:
		v = p.ExecutiveSummary
	case SectionRequirementsAnalysis:
		v = p.RequirementsAnalysis
	case SectionFeatureBreakdown:
		v = p.FeatureBreakdown
	case SectionProjectTimeline:
		v = p.ProjectTimeline
	case SectionTeamAndResources:
		v = p.TeamAndResources
	default:
		return "", ErrUnknownSection
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ReplaceSection sets one section from canonical serialized content without
// touching its siblings. Content must already be well-formed for the key.
func (p *StructuredProposal) ReplaceSection(key SectionKey, content string) error {
	v, err := decodeSection(key, []byte(content))
	if err != nil {
		if err == ErrUnknownSection {
			return err
		}
		return &ParseError{Section: key, Snippet: Snippet(content), Err: err}
	}
	switch key {
	case SectionExecutiveSummary:
		p.ExecutiveSummary = v.(ExecutiveSummary)
	case SectionRequirementsAnalysis:
		p.RequirementsAnalysis = v.(RequirementsAnalysis)
	case SectionFeatureBreakdown:
		p.FeatureBreakdown = v.(FeatureBreakdown)
	case SectionProjectTimeline:
		p.ProjectTimeline = v.(ProjectTimeline)
	case SectionTeamAndResources:
		p.TeamAndResources = v.(TeamAndResources)
	}
	return nil
}
