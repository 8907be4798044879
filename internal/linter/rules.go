package linter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/linterman/linterman/internal/collection"
)

// nameOrUnknown returns the item's name for messages, with the generic
// fallback used where position carries no meaning.
func nameOrUnknown(it *collection.Item) string {
	if name := it.Name(); name != "" {
		return name
	}
	return "unknown"
}

// nameOrPosition falls back to the item's 1-based position among its
// siblings, e.g. "Item-3".
func nameOrPosition(it *collection.Item) string {
	if name := it.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("Item-%d", it.Index()+1)
}

// anyMatch reports whether re matches any of the scripts.
func anyMatch(re *regexp.Regexp, scripts []string) bool {
	for _, script := range scripts {
		if re.MatchString(script) {
			return true
		}
	}
	return false
}

// anyNonEmpty reports whether any script has content.
func anyNonEmpty(scripts []string) bool {
	for _, script := range scripts {
		if strings.TrimSpace(script) != "" {
			return true
		}
	}
	return false
}
