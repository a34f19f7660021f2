package parser

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumnName trims a header cell and strips embedded whitespace.
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "\ufeff")
	name = whitespaceRe.ReplaceAllString(name, "")
	return strings.ToLower(name)
}

// IsNullToken reports whether a stringified cell stands for a missing value.
// These are the tokens a dataframe produces when nulls are cast to string.
func IsNullToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "nat", "none", "null", "<na>":
		return true
	}
	return false
}
