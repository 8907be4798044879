package linter

import (
	log "github.com/sirupsen/logrus"

	"github.com/linterman/linterman/internal/collection"
)

// Engine runs registered rules over collections. It holds no mutable
// state, so one engine serves concurrent lint and fix calls as long as
// each call receives its own collection.
type Engine struct {
	registry *Registry
}

// NewEngine returns an engine over the given registry, or over the
// built-in rule set when reg is nil.
func NewEngine(reg *Registry) *Engine {
	if reg == nil {
		reg = Default()
	}
	return &Engine{registry: reg}
}

// Registry returns the engine's rule set.
func (e *Engine) Registry() *Registry { return e.registry }

// Lint runs every enabled rule over the collection and scores the
// findings. Issues arrive in rule registration order, then document
// pre-order within each rule. A failing rule aborts the run with a
// *RuleExecutionError; partial results are never reported.
func (e *Engine) Lint(c *collection.Collection, cfg Config) (*Result, error) {
	if len(c.Items()) == 0 {
		// Nothing to inspect, including for document-level rules.
		return &Result{Score: 100, Issues: make([]Issue, 0), Stats: Stats{}}, nil
	}

	issues := make([]Issue, 0)
	for _, rule := range e.registry.Rules() {
		meta := rule.Metadata()
		if !cfg.RuleEnabled(meta.ID) {
			continue
		}
		if cfg.LocalOnly && meta.RequiresNetwork {
			log.WithField("rule", meta.ID).Debug("skipping rule that requires network access")
			continue
		}
		found, err := rule.Check(c, cfg)
		if err != nil {
			return nil, &RuleExecutionError{RuleID: meta.ID, Err: err}
		}
		log.WithFields(log.Fields{"rule": meta.ID, "issues": len(found)}).Debug("rule completed")
		issues = append(issues, found...)
	}

	stats := CollectStats(c, issues)
	return &Result{Score: Score(issues, stats), Issues: issues, Stats: stats}, nil
}

// Fix lints the collection, applies every applicable fix to a copy, and
// lints the copy again. The input collection is never mutated. Fixes
// that cannot be applied safely are skipped and left out of the count.
func (e *Engine) Fix(c *collection.Collection, cfg Config) (*FixResult, error) {
	before, err := e.Lint(c, cfg)
	if err != nil {
		return nil, err
	}

	fixed, err := c.Clone()
	if err != nil {
		return nil, err
	}
	applied := applyFixes(fixed, before.Issues)

	after, err := e.Lint(fixed, cfg)
	if err != nil {
		return nil, err
	}
	return &FixResult{
		Collection:   fixed,
		Before:       *before,
		After:        *after,
		FixesApplied: applied,
	}, nil
}
