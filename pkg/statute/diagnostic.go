package statute

import "fmt"

// DiagnosticCode identifies a degraded-but-tolerated extraction condition.
type DiagnosticCode string

const (
	// DiagMalformedNumbering marks a fragment that looks like a structural
	// marker but fails full decomposition.
	DiagMalformedNumbering DiagnosticCode = "malformed-numbering"

	// DiagContentMissing marks an article that never received body text.
	DiagContentMissing DiagnosticCode = "content-missing"

	// DiagDuplicateNumber marks a discarded occurrence of an article
	// number already present in the tree.
	DiagDuplicateNumber DiagnosticCode = "duplicate-number"

	// DiagOverflowOrdinal marks a paragraph ordinal past the circled-digit
	// glyph set.
	DiagOverflowOrdinal DiagnosticCode = "overflow-ordinal"

	// DiagUnrecognizedFragment marks a fragment no matcher classified.
	DiagUnrecognizedFragment DiagnosticCode = "unrecognized-fragment"
)

// Diagnostic records one tolerated condition against its source position.
type Diagnostic struct {
	Code        DiagnosticCode `json:"code" yaml:"code"`
	SourceOrder int            `json:"source_order" yaml:"source_order"`
	Detail      string         `json:"detail" yaml:"detail"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at node %d: %s", d.Code, d.SourceOrder, d.Detail)
}

// AddDiagnostic appends a diagnostic to the document.
func (doc *Document) AddDiagnostic(code DiagnosticCode, sourceOrder int, format string, args ...interface{}) {
	doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
		Code:        code,
		SourceOrder: sourceOrder,
		Detail:      fmt.Sprintf(format, args...),
	})
}

// HasDiagnostic reports whether any diagnostic with the given code was
// recorded.
func (doc *Document) HasDiagnostic(code DiagnosticCode) bool {
	for _, d := range doc.Diagnostics {
		if d.Code == code {
			return true
		}
	}
	return false
}
