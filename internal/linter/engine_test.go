package linter

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/linterman/linterman/internal/collection"
)

// networkPingRule stands in for a rule that probes the documented
// endpoints over the network.
type networkPingRule struct{}

func (networkPingRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:              "endpoint-reachability",
		Name:            "Endpoint reachability",
		Category:        CategoryBestPractices,
		Severity:        SeverityInfo,
		Description:     "Documented endpoints should answer.",
		RequiresNetwork: true,
	}
}

func (networkPingRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	return []Issue{{
		RuleID:   "endpoint-reachability",
		Severity: SeverityInfo,
		Message:  "Endpoint did not answer",
		Path:     "/",
	}}, nil
}

type failingRule struct{}

func (failingRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:       "always-fails",
		Name:     "Always fails",
		Category: CategoryTesting,
		Severity: SeverityError,
	}
}

func (failingRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	return []Issue{{RuleID: "always-fails"}}, errors.New("script engine unavailable")
}

func TestEngine_Lint_CleanCollectionScores100(t *testing.T) {
	col := buildDoc(t, goodOverview, cleanRequest("GET List pets"))

	res, err := NewEngine(nil).Lint(col, DefaultConfig())
	require.NoError(t, err)

	assert.Empty(t, res.Issues, "unexpected issues: %v", res.Issues)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, 1, res.Stats.TotalRequests)
	assert.Equal(t, 3, res.Stats.TotalTests)
}

func TestEngine_Lint_IssueOrdering(t *testing.T) {
	col := buildDoc(t, goodOverview,
		reqItem("Alpha", "GET", "{{base_url}}/a"),
		folderItem("Pets", "Pet calls.",
			reqItem("Beta", "GET", "{{base_url}}/b")),
	)

	// Selection order in the config must not matter: issues follow rule
	// registration order, then document pre-order within each rule.
	cfg := DefaultConfig()
	cfg.Rules = []string{namingRuleID, statusRuleID}

	res, err := NewEngine(nil).Lint(col, cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{statusRuleID, statusRuleID, namingRuleID, namingRuleID}, ruleIDs(res.Issues))
	assert.Equal(t, []string{"/item[0]", "/item[1]/item[0]", "/item[0]", "/item[1]/item[0]"}, issuePaths(res.Issues))
}

func TestEngine_Lint_RuleSelection(t *testing.T) {
	col := buildDoc(t, "short", reqItem("Alpha", "GET", "{{base_url}}/a"))
	engine := NewEngine(nil)

	t.Run("nil runs every rule", func(t *testing.T) {
		cfg := DefaultConfig()
		res, err := engine.Lint(col, cfg)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Issues)
	})

	t.Run("empty non-nil disables all", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Rules = []string{}
		res, err := engine.Lint(col, cfg)
		require.NoError(t, err)
		assert.Empty(t, res.Issues)
		assert.Equal(t, 100, res.Score)
		assert.Equal(t, 1, res.Stats.TotalRequests)
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Rules = []string{"not-a-rule", statusRuleID}
		res, err := engine.Lint(col, cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{statusRuleID}, ruleIDs(res.Issues))
	})
}

func TestEngine_Lint_LocalOnlySkipsNetworkRules(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(statusTestRule{}))
	require.NoError(t, reg.Register(networkPingRule{}))
	engine := NewEngine(reg)

	col := buildDoc(t, goodOverview, reqItem("GET Ping", "GET", "{{base_url}}/ping"))

	cfg := DefaultConfig()
	res, err := engine.Lint(col, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{statusRuleID}, ruleIDs(res.Issues))

	cfg.LocalOnly = false
	res, err = engine.Lint(col, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{statusRuleID, "endpoint-reachability"}, ruleIDs(res.Issues))

	// Explicitly selecting a network rule does not override the filter.
	cfg = Config{LocalOnly: true, Rules: []string{"endpoint-reachability"}}
	res, err = engine.Lint(col, cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Issues)
	assert.Equal(t, 100, res.Score)
}

func TestEngine_Lint_RuleFailureAbortsRun(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(statusTestRule{}))
	require.NoError(t, reg.Register(failingRule{}))

	col := buildDoc(t, goodOverview, reqItem("Alpha", "GET", "{{base_url}}/a"))

	res, err := NewEngine(reg).Lint(col, DefaultConfig())
	require.Error(t, err)
	assert.Nil(t, res, "a failing rule must not yield partial results")

	var ruleErr *RuleExecutionError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "always-fails", ruleErr.RuleID)
	assert.ErrorContains(t, err, `rule "always-fails" failed`)
}

func TestEngine_Lint_EmptyCollection(t *testing.T) {
	col := buildDoc(t, "completely undocumented")

	res, err := NewEngine(nil).Lint(col, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 100, res.Score)
	require.NotNil(t, res.Issues)
	assert.Empty(t, res.Issues)
	assert.Equal(t, Stats{}, res.Stats)
}

func TestEngine_Lint_UntestedRequest(t *testing.T) {
	col := buildDoc(t, goodOverview,
		reqItem("GET Ping", "GET", "{{base_url}}/ping",
			withDescription("Health probe."),
			withResponse("200 OK", "pong", 200)))

	res, err := NewEngine(nil).Lint(col, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{statusRuleID, responseTimeRuleID, schemaValidationRuleID, coverageRuleID}, ruleIDs(res.Issues))
	assert.True(t, hasMessage(res.Issues, `Request "GET Ping" does not test the HTTP status code`))
	// One error and three warnings over a single request.
	assert.Equal(t, 77, res.Score)
	assert.Equal(t, 1, res.Stats.Errors)
	assert.Equal(t, 3, res.Stats.Warnings)
}

func TestEngine_Lint_SecretsOnlySelection(t *testing.T) {
	col := buildDoc(t, "short",
		reqItem("GET Pets", "GET", "{{base_url}}/pets",
			withHeader("X-Auth", "api_key=0123456789abcdef0123456789abcdef")))

	cfg := DefaultConfig()
	cfg.Rules = []string{secretsRuleID}

	res, err := NewEngine(nil).Lint(col, cfg)
	require.NoError(t, err)

	require.Len(t, res.Issues, 1)
	issue := res.Issues[0]
	assert.Equal(t, secretsRuleID, issue.RuleID)
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Equal(t, "/item[0]/request", issue.Path)
	assert.Contains(t, issue.Message, "Hardcoded API Key detected")
	require.NotNil(t, issue.Fix)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", issue.Fix.Match)
	assert.Equal(t, "{{api_key}}", issue.Fix.Replacement)
}

func TestEngine_Lint_Deterministic(t *testing.T) {
	col := buildDoc(t, "short",
		reqItem("Alpha", "GET", "https://api.example.com/a"),
		folderItem("Pets", "",
			reqItem("Beta", "POST", "{{base_url}}/b")),
	)
	engine := NewEngine(nil)
	cfg := DefaultConfig()

	first, err := engine.Lint(col, cfg)
	require.NoError(t, err)
	second, err := engine.Lint(col, cfg)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("lint results differ between runs (-first +second):\n%s", diff)
	}

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestEngine_Lint_ConcurrentCalls(t *testing.T) {
	col := buildDoc(t, "short",
		reqItem("Alpha", "GET", "https://api.example.com/a"),
		reqItem("Beta", "POST", "{{base_url}}/b"))
	engine := NewEngine(nil)
	cfg := DefaultConfig()

	baseline, err := engine.Lint(col, cfg)
	require.NoError(t, err)

	results := make([]*Result, 8)
	var g errgroup.Group
	for i := range results {
		i := i
		g.Go(func() error {
			clone, err := col.Clone()
			if err != nil {
				return err
			}
			res, err := engine.Lint(clone, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i, res := range results {
		if diff := cmp.Diff(baseline, res); diff != "" {
			t.Errorf("concurrent lint %d diverged (-baseline +got):\n%s", i, diff)
		}
	}
}
