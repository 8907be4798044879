package linter

// Scoring weights. Penalties scale with the share of requests affected
// rather than the absolute issue count, so a 50-request collection with
// two errors scores better than a 2-request collection with two errors.
const (
	errorWeight   = 15.0
	warningWeight = 8.0
	infoWeight    = 3.0
	cleanBonus    = 5.0
)

// Score grades a lint result from 0 to 100. A collection with no issues
// scores 100. Identical inputs always produce identical scores.
func Score(issues []Issue, stats Stats) int {
	var errors, warnings, infos int
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		}
	}

	total := stats.TotalRequests
	if total < 1 {
		total = 1
	}
	ratio := func(count int) float64 {
		r := float64(count) / float64(total)
		if r > 1 {
			return 1
		}
		return r
	}

	score := 100.0 - ratio(errors)*errorWeight - ratio(warnings)*warningWeight - ratio(infos)*infoWeight
	if errors == 0 && warnings <= 2 {
		score += cleanBonus
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score)
}
