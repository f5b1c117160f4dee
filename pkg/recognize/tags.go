package recognize

import (
	"regexp"
	"strings"
)

// tagSpanPattern matches one amendment-tag span: a bracketed run like
// "[시행 2025.1.1.]" or an angle-bracketed run like
// "<개정 2024. 12. 31.>". Spans never nest.
var tagSpanPattern = regexp.MustCompile(`\[[^\[\]]*\]|<[^<>]*>`)

// doubleSpacePattern collapses the gaps left behind by excised spans.
var doubleSpacePattern = regexp.MustCompile(`[ \t]{2,}`)

// ExtractTags pulls every bracket and angle-bracket span out of text,
// returning the cleaned text and the raw spans in order of appearance.
// Structural splitting (paragraph and item boundaries) must only ever run
// on the cleaned text: the dates and numbers inside tags would otherwise
// produce false boundaries.
func ExtractTags(text string) (string, []string) {
	var tags []string
	clean := tagSpanPattern.ReplaceAllStringFunc(text, func(span string) string {
		tags = append(tags, span)
		return " "
	})
	clean = doubleSpacePattern.ReplaceAllString(clean, " ")
	return strings.TrimSpace(clean), tags
}
