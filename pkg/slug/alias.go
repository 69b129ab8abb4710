package slug

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultAliases lists known mis-transliterations found in supplier data.
// "CITRON" is what "CITROËN" degrades to when the diaeresis is dropped
// together with its base letter.
var DefaultAliases = map[string]string{
	"CITRON": "CITROEN",
}

// Aliases rewrites known bad spellings in free text before it is slugified.
// Replacements are whole-word and case-insensitive. The zero value performs
// no rewriting.
type Aliases struct {
	rules []aliasRule
}

type aliasRule struct {
	re          *regexp.Regexp
	replacement string
}

// NewAliases compiles the provided from -> to table.
func NewAliases(table map[string]string) Aliases {
	keys := make([]string, 0, len(table))
	for from := range table {
		if strings.TrimSpace(from) == "" {
			continue
		}
		keys = append(keys, from)
	}
	// longer words first so overlapping aliases resolve the same way every run
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	rules := make([]aliasRule, 0, len(keys))
	for _, from := range keys {
		rules = append(rules, aliasRule{
			re:          regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(strings.TrimSpace(from)) + `\b`),
			replacement: table[from],
		})
	}
	return Aliases{rules: rules}
}

// Apply returns value with every alias replaced.
func (a Aliases) Apply(value string) string {
	for _, rule := range a.rules {
		value = rule.re.ReplaceAllLiteralString(value, rule.replacement)
	}
	return value
}

// Len reports how many aliases are configured.
func (a Aliases) Len() int {
	return len(a.rules)
}
