// Package pipeline wires the extraction stages into one synchronous run
// per document: raw source adaptation, numbering recognition, hierarchy
// building, optional content merging, and rendering. Each run is isolated;
// processing several documents in parallel just means independent Run
// calls sharing nothing.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/coolbeans/kolaw/pkg/hierarchy"
	"github.com/coolbeans/kolaw/pkg/merge"
	"github.com/coolbeans/kolaw/pkg/rawsource"
	"github.com/coolbeans/kolaw/pkg/recognize"
	"github.com/coolbeans/kolaw/pkg/render"
	"github.com/coolbeans/kolaw/pkg/statute"
)

// ErrEmptyInput is the only failing condition of a run: zero raw nodes
// produced from the input source. Every other degraded condition becomes
// a diagnostic on the document.
var ErrEmptyInput = errors.New("empty input: no raw nodes produced")

// Options carries per-run parameters explicitly. Nothing in this package
// reads process-wide state; session identity and output naming belong to
// the caller.
type Options struct {
	// Statute metadata. Explicit values here override whatever the raw
	// source reports.
	Title            string
	PromulgationDate string
	PromulgationNo   string
	EffectiveDate    string
	Authority        string
	RevisionType     string

	// ContentPass supplies separately obtained body text to merge onto an
	// index-pass tree. Leave empty when the input already carries bodies.
	ContentPass []merge.BodyEntry
}

// Result is one completed extraction.
type Result struct {
	// RunID uniquely identifies this extraction run in diagnostics and
	// output naming.
	RunID string

	Document *statute.Document

	// Markdown is the heading-structured text rendering.
	Markdown string
}

// RecordJSON returns the structured record as JSON.
func (r *Result) RecordJSON() ([]byte, error) {
	return render.RecordJSON(r.Document)
}

// RecordYAML returns the structured record as YAML.
func (r *Result) RecordYAML() ([]byte, error) {
	return render.RecordYAML(r.Document)
}

// Run executes one extraction over a complete raw payload.
func Run(in rawsource.Input, opts Options) (*Result, error) {
	nodes, info, err := rawsource.Adapt(in)
	if err != nil {
		return nil, fmt.Errorf("adapting raw source: %w", err)
	}
	if len(nodes) == 0 {
		return nil, ErrEmptyInput
	}

	recognizer := recognize.NewRecognizer()
	builder := hierarchy.NewBuilder()
	builder.AddAll(recognizer.ClassifyAll(nodes))
	doc := builder.Build()

	applyMetadata(doc, info, opts)

	if len(opts.ContentPass) > 0 {
		merge.Apply(doc, opts.ContentPass)
	}

	return &Result{
		RunID:    uuid.NewString(),
		Document: doc,
		Markdown: render.Markdown(doc),
	}, nil
}

// applyMetadata layers statute metadata onto the document: explicit
// options first, then attribute-tree fields, leaving whatever the
// recognizer already found as the fallback.
func applyMetadata(doc *statute.Document, info *rawsource.DocumentInfo, opts Options) {
	if info != nil {
		setIfEmpty(&doc.Title, info.Title)
		setIfEmpty(&doc.PromulgationDate, info.PromulgationDate)
		setIfEmpty(&doc.PromulgationNo, info.PromulgationNo)
		setIfEmpty(&doc.EffectiveDate, info.EffectiveDate)
		setIfEmpty(&doc.Authority, info.Authority)
		setIfEmpty(&doc.RevisionType, info.RevisionType)
		setIfEmpty(&doc.RevisionText, info.RevisionText)
		setIfEmpty(&doc.RevisionReason, info.RevisionReason)
	}

	override(&doc.Title, opts.Title)
	override(&doc.PromulgationDate, opts.PromulgationDate)
	override(&doc.PromulgationNo, opts.PromulgationNo)
	override(&doc.EffectiveDate, opts.EffectiveDate)
	override(&doc.Authority, opts.Authority)
	override(&doc.RevisionType, opts.RevisionType)
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
