// Package rawsource normalizes the three raw shapes a statute arrives in —
// a structural navigation index (label/ref pairs or a DOM fragment), the
// legislation service's nested XML attribute tree, and rendered full-page
// text — into one canonical ordered sequence of RawNode records.
//
// The "single group vs. list of groups" ambiguity of the attribute tree is
// resolved here, once; downstream stages only ever see flat ordered
// sequences.
package rawsource

import (
	"errors"
	"strings"
)

// ErrNilInput reports an absent input source. Distinct from an input that
// is present but yields no nodes, which adapts to an empty sequence.
var ErrNilInput = errors.New("nil input source")

// Shape identifies which raw form produced a node.
type Shape string

const (
	// ShapeIndex is the structural navigation index of a rendered page.
	ShapeIndex Shape = "index"

	// ShapeTree is the legislation service's XML attribute tree.
	ShapeTree Shape = "tree"

	// ShapeText is full-page rendered text.
	ShapeText Shape = "text"
)

// SourceHints records where a node came from. The recognizer uses the
// shape to bias its rule order; tree nodes additionally carry their source
// unit name and, for annex units, attachment file links.
type SourceHints struct {
	Shape Shape

	// OpaqueRef is the navigation reference of an index entry.
	OpaqueRef string

	// Unit is the source element name of a tree node (조문, 항, 호, ...).
	Unit string

	// Refs holds attachment file links carried by 별표 units.
	Refs []string
}

// RawNode is one canonical fragment of raw statute text, still
// unclassified.
type RawNode struct {
	RawText     string
	SourceOrder int
	Hints       SourceHints
}

// DocumentInfo is statute metadata recovered from the attribute tree's
// basic-information fields. Index and text shapes yield nil info.
type DocumentInfo struct {
	Title            string
	PromulgationDate string
	PromulgationNo   string
	EffectiveDate    string
	Authority        string
	RevisionType     string
	RevisionText     string
	RevisionReason   string
}

// Input is one of the three tagged raw shapes: IndexShape, TreeShape, or
// TextShape.
type Input interface {
	adapt() ([]RawNode, *DocumentInfo, error)
}

// Adapt converts a tagged input into the canonical node sequence. Empty or
// whitespace-only input yields an empty sequence and no error; deciding
// whether that constitutes a failed run is the caller's concern. A nil
// input is a caller bug and fails with ErrNilInput.
func Adapt(in Input) ([]RawNode, *DocumentInfo, error) {
	if in == nil {
		return nil, nil, ErrNilInput
	}
	return in.adapt()
}

// TextShape is the entire rendered page body, newline-delimited.
type TextShape string

func (t TextShape) adapt() ([]RawNode, *DocumentInfo, error) {
	var nodes []RawNode
	for _, line := range strings.Split(string(t), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		nodes = append(nodes, RawNode{
			RawText:     line,
			SourceOrder: len(nodes),
			Hints:       SourceHints{Shape: ShapeText},
		})
	}
	return nodes, nil, nil
}

// IndexEntry is one label/reference pair from a structural navigation
// index.
type IndexEntry struct {
	Label string
	Ref   string
}

// IndexShape is an ordered sequence of index entries.
type IndexShape []IndexEntry

func (entries IndexShape) adapt() ([]RawNode, *DocumentInfo, error) {
	var nodes []RawNode
	for _, entry := range entries {
		label := strings.TrimSpace(entry.Label)
		if label == "" {
			continue
		}
		nodes = append(nodes, RawNode{
			RawText:     label,
			SourceOrder: len(nodes),
			Hints:       SourceHints{Shape: ShapeIndex, OpaqueRef: entry.Ref},
		})
	}
	return nodes, nil, nil
}
