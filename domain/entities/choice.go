package entities

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeChoice trims surrounding whitespace and applies Unicode case folding.
// Two choices match when their normalized forms are equal.
func NormalizeChoice(choice string) string {
	return cases.Fold().String(strings.TrimSpace(choice))
}
