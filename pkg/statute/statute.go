// Package statute defines the normalized hierarchical model for Korean
// statute documents: 장 (chapter), 절 (section), 관 (sub-section), 조
// (article), 항 (paragraph), 호 (item), 목 (sub-item), plus 부칙 (addenda)
// and 별표 (annex tables).
package statute

// RevisionType values as reported by the legislation service
// (제개정구분명). Carried through as metadata only.
const (
	RevisionEnactment = "제정"
	RevisionPartial   = "일부개정"
	RevisionFull      = "전부개정"
)

// Document is the root of one extracted statute.
type Document struct {
	// Title is the statute name, e.g. "법인세법".
	Title string `json:"title" yaml:"title"`

	// PromulgationDate is the 공포일자 (e.g. "2024. 12. 31.").
	PromulgationDate string `json:"promulgation_date,omitempty" yaml:"promulgation_date,omitempty"`

	// PromulgationNo is the 공포번호 (e.g. "법률 제20613호").
	PromulgationNo string `json:"promulgation_no,omitempty" yaml:"promulgation_no,omitempty"`

	// EffectiveDate is the 시행일자.
	EffectiveDate string `json:"effective_date,omitempty" yaml:"effective_date,omitempty"`

	// Authority is the competent ministry (소관부처).
	Authority string `json:"authority,omitempty" yaml:"authority,omitempty"`

	// RevisionType is the 제개정구분 (enactment, partial revision, ...).
	RevisionType string `json:"revision_type,omitempty" yaml:"revision_type,omitempty"`

	// AmendmentTags holds document-level bracket spans attached to the
	// title line, e.g. "[시행 2025. 7. 1.]".
	AmendmentTags []string `json:"amendment_tags" yaml:"amendment_tags"`

	// Children holds chapters and directly-attached articles in document
	// order. A statute with no chapter structure has only article children.
	Children []*DocumentChild `json:"children" yaml:"children"`

	// Addenda holds the 부칙 set, in document order.
	Addenda []*Addendum `json:"addenda" yaml:"addenda"`

	// Tables holds the 별표 annexes, in document order.
	Tables []*AnnexTable `json:"tables" yaml:"tables"`

	// RevisionText is the raw 개정문 content, carried opaquely.
	RevisionText string `json:"revision_text,omitempty" yaml:"revision_text,omitempty"`

	// RevisionReason is the raw 제개정이유 content, carried opaquely.
	RevisionReason string `json:"revision_reason,omitempty" yaml:"revision_reason,omitempty"`

	// TrailingText holds unrecognized fragments that arrived with no open
	// chapter or article context.
	TrailingText []string `json:"trailing_text,omitempty" yaml:"trailing_text,omitempty"`

	// Orphans holds content-pass bodies that matched no article.
	Orphans []*Orphan `json:"orphans,omitempty" yaml:"orphans,omitempty"`

	// Diagnostics records every degraded-but-tolerated condition met while
	// building this document. Never empty-vs-nil significant.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// DocumentChild holds exactly one of a Chapter or an Article, preserving
// the mixed document-order sequence.
type DocumentChild struct {
	Chapter *Chapter `json:"chapter,omitempty" yaml:"chapter,omitempty"`
	Article *Article `json:"article,omitempty" yaml:"article,omitempty"`
}

// Chapter is a 장.
type Chapter struct {
	Number int    `json:"number" yaml:"number"`
	Title  string `json:"title" yaml:"title"`

	// Children holds sections and directly-attached articles in order.
	Children []*ChapterChild `json:"children" yaml:"children"`

	// TrailingText holds unrecognized fragments attached while this
	// chapter was the deepest open context.
	TrailingText []string `json:"trailing_text,omitempty" yaml:"trailing_text,omitempty"`
}

// ChapterChild holds exactly one of a Section or an Article.
type ChapterChild struct {
	Section *Section `json:"section,omitempty" yaml:"section,omitempty"`
	Article *Article `json:"article,omitempty" yaml:"article,omitempty"`
}

// Section is a 절.
type Section struct {
	Number int    `json:"number" yaml:"number"`
	Title  string `json:"title" yaml:"title"`

	Children []*SectionChild `json:"children" yaml:"children"`

	TrailingText []string `json:"trailing_text,omitempty" yaml:"trailing_text,omitempty"`
}

// SectionChild holds exactly one of a SubSection or an Article.
type SectionChild struct {
	SubSection *SubSection `json:"subsection,omitempty" yaml:"subsection,omitempty"`
	Article    *Article    `json:"article,omitempty" yaml:"article,omitempty"`
}

// SubSection is a 관.
type SubSection struct {
	Number int    `json:"number" yaml:"number"`
	Title  string `json:"title" yaml:"title"`

	Articles []*Article `json:"articles" yaml:"articles"`

	TrailingText []string `json:"trailing_text,omitempty" yaml:"trailing_text,omitempty"`
}

// Article is a 조. An article numbered "제10조의2" has Number 10 and
// SubNumber 2; SubNumber is 0 when the 의N suffix is absent.
type Article struct {
	Number    int    `json:"number" yaml:"number"`
	SubNumber int    `json:"sub_number" yaml:"sub_number"`
	Title     string `json:"title" yaml:"title"`

	// FullText is the article body with amendment tags excised.
	FullText string `json:"full_text" yaml:"full_text"`

	Paragraphs []*Paragraph `json:"paragraphs" yaml:"paragraphs"`

	// AmendmentTags holds the raw bracket and angle-bracket spans excised
	// from the body, in extraction order.
	AmendmentTags []string `json:"amendment_tags" yaml:"amendment_tags"`

	// SourceOrder is the original scan position. Used only to break ties
	// between two occurrences of the same (Number, SubNumber).
	SourceOrder int `json:"source_order" yaml:"source_order"`

	// ContentMissing marks an index-pass article that never received body
	// text from a content pass.
	ContentMissing bool `json:"content_missing,omitempty" yaml:"content_missing,omitempty"`
}

// Key returns the article's numeric identity as "N" or "N의M".
func (a *Article) Key() string {
	return ArticleKey(a.Number, a.SubNumber)
}

// Paragraph is a 항, ordered by its circled-digit glyph rank. A single
// unnumbered paragraph has Ordinal 1. Ordinal 0 is a sentinel for the
// unnumbered lead sentence an article sometimes carries before its first
// glyph paragraph; at most one such lead precedes the ranked paragraphs.
type Paragraph struct {
	// Ordinal is the glyph rank (1-based), or 0 for the lead sentence.
	Ordinal int `json:"ordinal" yaml:"ordinal"`

	Text string `json:"text" yaml:"text"`

	// Items is always present, possibly empty.
	Items []*Item `json:"items" yaml:"items"`
}

// Item is a 호, numbered "N." within its paragraph.
type Item struct {
	Ordinal int    `json:"ordinal" yaml:"ordinal"`
	Text    string `json:"text" yaml:"text"`

	// SubItems is always present, possibly empty.
	SubItems []*SubItem `json:"sub_items" yaml:"sub_items"`
}

// SubItem is a 목, marked "가."-style (or further-dotted) one level below
// its item.
type SubItem struct {
	// Ordinal is the marker's rank in the 가나다 sequence, or the parsed
	// integer for dotted markers.
	Ordinal int `json:"ordinal" yaml:"ordinal"`

	// Marker is the verbatim marker including its trailing dot, e.g. "가.".
	Marker string `json:"marker" yaml:"marker"`

	Text string `json:"text" yaml:"text"`
}

// Addendum is one 부칙 entry.
type Addendum struct {
	PromulgationDate string `json:"promulgation_date" yaml:"promulgation_date"`
	PromulgationNo   string `json:"promulgation_no" yaml:"promulgation_no"`
	Text             string `json:"text" yaml:"text"`
}

// AnnexTable is one 별표 annex.
type AnnexTable struct {
	Number    int    `json:"number" yaml:"number"`
	SubNumber int    `json:"sub_number" yaml:"sub_number"`
	Category  string `json:"category,omitempty" yaml:"category,omitempty"`
	Title     string `json:"title" yaml:"title"`
	Content   string `json:"content" yaml:"content"`

	// AttachmentRefs holds external file links (HWP/PDF form files).
	AttachmentRefs []string `json:"attachment_refs,omitempty" yaml:"attachment_refs,omitempty"`
}

// Orphan is a content-pass body that matched no article by numeric key.
type Orphan struct {
	Key         string `json:"key" yaml:"key"`
	Text        string `json:"text" yaml:"text"`
	SourceOrder int    `json:"source_order" yaml:"source_order"`
}
