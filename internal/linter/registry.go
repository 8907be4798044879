package linter

import (
	"fmt"
	"sync"
)

// Registry holds rules keyed by id, preserving registration order. The
// engine reports issues grouped by that order, which keeps output stable
// across runs on unchanged input.
type Registry struct {
	order []Rule
	byID  map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Rule)}
}

// Register adds a rule. Duplicate ids are a startup configuration
// mistake, not a run-time condition, so registration fails immediately.
func (r *Registry) Register(rule Rule) error {
	id := rule.Metadata().ID
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("registering rule: duplicate id %q", id)
	}
	r.byID[id] = rule
	r.order = append(r.order, rule)
	return nil
}

// Get returns the rule registered under id.
func (r *Registry) Get(id string) (Rule, bool) {
	rule, ok := r.byID[id]
	return rule, ok
}

// MetadataFor returns the metadata of the rule registered under id.
func (r *Registry) MetadataFor(id string) (RuleMetadata, bool) {
	rule, ok := r.byID[id]
	if !ok {
		return RuleMetadata{}, false
	}
	return rule.Metadata(), true
}

// Rules returns every rule in registration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.order))
	copy(out, r.order)
	return out
}

// Metadata returns the metadata of every rule in registration order.
func (r *Registry) Metadata() []RuleMetadata {
	out := make([]RuleMetadata, 0, len(r.order))
	for _, rule := range r.order {
		out = append(out, rule.Metadata())
	}
	return out
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry holding the built-in rule set.
// The registration order below is the canonical reporting order.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, rule := range []Rule{
			statusTestRule{},
			descriptionURIRule{},
			responseTimeTestRule{},
			bodyContentRule{},
			schemaValidationRule{},
			namingConventionRule{},
			thresholdRule{},
			environmentVarsRule{},
			coverageRule{},
			overviewRule{},
			examplesRule{},
			completenessRule{},
			secretsRule{},
		} {
			if err := defaultRegistry.Register(rule); err != nil {
				panic(err)
			}
		}
	})
	return defaultRegistry
}
