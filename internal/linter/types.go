// Package linter contains the rule engine for collection quality analysis:
// a registry of lint rules, the engine that runs them, the scorer that
// grades the findings, and the fixer that applies suggested remedies.
package linter

import (
	"slices"

	"github.com/linterman/linterman/internal/collection"
)

// Severity classifies how strongly a finding affects collection quality.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Category groups rules by the concern they inspect.
type Category string

const (
	CategoryTesting       Category = "testing"
	CategoryStructure     Category = "structure"
	CategoryPerformance   Category = "performance"
	CategoryBestPractices Category = "best-practices"
	CategoryDocumentation Category = "documentation"
	CategorySecurity      Category = "security"
)

// Issue is a single finding. Line is reserved for source-mapped input
// formats and is always null for JSON documents.
type Issue struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Path     string   `json:"path"`
	Line     *int     `json:"line"`
	Fix      *Fix     `json:"fix"`
}

// Fix describes a concrete remedy for an issue. Type selects the action;
// the remaining fields carry its parameters and only the relevant ones
// are serialized.
type Fix struct {
	Type               string `json:"type"`
	SuggestedName      string `json:"suggested_name,omitempty"`
	TestCode           string `json:"test_code,omitempty"`
	SuggestedCode      string `json:"suggested_code,omitempty"`
	OldDescription     string `json:"old_description,omitempty"`
	NewDescription     string `json:"new_description,omitempty"`
	CurrentThreshold   int    `json:"current_threshold,omitempty"`
	SuggestedThreshold int    `json:"suggested_threshold,omitempty"`
	Field              string `json:"field,omitempty"`
	SuggestedVariable  string `json:"suggested_variable,omitempty"`
	Match              string `json:"match,omitempty"`
	Replacement        string `json:"replacement,omitempty"`
}

// Fix action types.
const (
	FixRenameRequest       = "rename_request"
	FixAddTest             = "add_test"
	FixAddResponseTimeTest = "add_response_time_test"
	FixAddSchemaValidation = "add_schema_validation"
	FixUpdateDescription   = "update_test_description"
	FixAdjustThreshold     = "adjust_threshold"
	FixUseEnvironmentVar   = "use_environment_variable"
	FixMaskSecret          = "mask_secret"
)

// Stats aggregates structural counts and per-severity issue totals.
// TotalTests counts individual pm.test assertions, not script blocks.
type Stats struct {
	TotalRequests int `json:"total_requests"`
	TotalTests    int `json:"total_tests"`
	TotalFolders  int `json:"total_folders"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Infos         int `json:"infos"`
}

// Result is the outcome of one lint pass.
type Result struct {
	Score  int     `json:"score"`
	Issues []Issue `json:"issues"`
	Stats  Stats   `json:"stats"`
}

// FixResult is the outcome of an auto-fix pass. Collection is a corrected
// copy; the input document is never mutated.
type FixResult struct {
	Collection   *collection.Collection `json:"collection"`
	Before       Result                 `json:"before"`
	After        Result                 `json:"after"`
	FixesApplied int                    `json:"fixes_applied"`
}

// Config controls which rules run. A nil Rules slice enables every rule;
// an empty non-nil slice disables all of them. Unknown ids are ignored.
type Config struct {
	LocalOnly bool     `json:"local_only" yaml:"local_only"`
	Rules     []string `json:"rules" yaml:"rules"`
	Fix       bool     `json:"fix" yaml:"fix"`
}

// DefaultConfig returns the configuration used when none is supplied.
// Analysis is local-only unless explicitly opened up.
func DefaultConfig() Config {
	return Config{LocalOnly: true}
}

// RuleEnabled reports whether the config selects the given rule id.
func (c Config) RuleEnabled(id string) bool {
	if c.Rules == nil {
		return true
	}
	return slices.Contains(c.Rules, id)
}

// RuleMetadata describes a rule for listings and filtering. Severity is
// the rule's default; individual findings may escalate but never drop
// below it.
type RuleMetadata struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	Severity        Severity `json:"severity"`
	Description     string   `json:"description"`
	Fixable         bool     `json:"fixable"`
	RequiresNetwork bool     `json:"requires_network"`
}

// Rule inspects a collection and reports issues. Check must treat the
// collection as read-only and must be safe for concurrent use, since one
// registry is shared by every engine.
type Rule interface {
	Metadata() RuleMetadata
	Check(c *collection.Collection, cfg Config) ([]Issue, error)
}
