// Package hierarchy assembles classified statute fragments into the
// document tree. The builder holds a narrowing context stack (chapter,
// section, sub-section, article) and attaches each fragment under the
// deepest applicable open context, resolving duplicate article numbers
// incrementally as entries attach.
package hierarchy

import (
	"strings"

	"github.com/coolbeans/kolaw/pkg/recognize"
	"github.com/coolbeans/kolaw/pkg/statute"
)

type articleKey struct {
	number    int
	subNumber int
}

// Builder consumes classified nodes in source order and produces one
// Document. A Builder is scoped to a single extraction run and is not
// safe for concurrent use.
type Builder struct {
	doc *statute.Document

	chapter    *statute.Chapter
	section    *statute.Section
	subSection *statute.SubSection
	article    *statute.Article
	paragraph  *statute.Paragraph
	item       *statute.Item
	addendum   *statute.Addendum

	// articleImplicit marks that the open article's paragraphs were
	// created implicitly (no glyph seen yet), so a first glyph paragraph
	// demotes them to an unnumbered lead rather than wrapping.
	articleImplicit bool

	byKey map[articleKey]*statute.Article
}

// NewBuilder returns an empty builder. All document child sequences start
// non-nil so serialized output shape is uniform.
func NewBuilder() *Builder {
	return &Builder{
		doc: &statute.Document{
			AmendmentTags: []string{},
			Children:      []*statute.DocumentChild{},
			Addenda:       []*statute.Addendum{},
			Tables:        []*statute.AnnexTable{},
		},
		byKey: make(map[articleKey]*statute.Article),
	}
}

// AddAll feeds a classified sequence in order.
func (b *Builder) AddAll(nodes []recognize.Classified) {
	for _, node := range nodes {
		b.Add(node)
	}
}

// Add attaches one classified node to the tree.
func (b *Builder) Add(c recognize.Classified) {
	switch c.Kind {
	case recognize.KindDocTitle:
		if b.doc.Title == "" {
			b.doc.Title = c.Title
		}
		b.doc.AmendmentTags = append(b.doc.AmendmentTags, c.Tags...)

	case recognize.KindChapter:
		b.closeBelowChapter()
		b.chapter = &statute.Chapter{
			Number:   c.Number,
			Title:    c.Title,
			Children: []*statute.ChapterChild{},
		}
		b.doc.Children = append(b.doc.Children, &statute.DocumentChild{Chapter: b.chapter})

	case recognize.KindSection:
		b.closeBelowSection()
		b.section = &statute.Section{
			Number:   c.Number,
			Title:    c.Title,
			Children: []*statute.SectionChild{},
		}
		b.openChapter().Children = append(b.openChapter().Children, &statute.ChapterChild{Section: b.section})

	case recognize.KindSubSection:
		b.closeBelowSubSection()
		b.subSection = &statute.SubSection{
			Number:   c.Number,
			Title:    c.Title,
			Articles: []*statute.Article{},
		}
		b.openSection().Children = append(b.openSection().Children, &statute.SectionChild{SubSection: b.subSection})

	case recognize.KindArticle:
		b.addArticle(c)

	case recognize.KindParagraph:
		b.addParagraph(c)

	case recognize.KindItem:
		b.addItem(c)

	case recognize.KindSubItem:
		b.addSubItem(c)

	case recognize.KindAddendum:
		b.closeBelowChapter()
		b.chapter = nil
		b.addendum = &statute.Addendum{
			PromulgationDate: c.PromulgationDate,
			PromulgationNo:   c.PromulgationNo,
			Text:             c.Body,
		}
		b.doc.Addenda = append(b.doc.Addenda, b.addendum)

	case recognize.KindTable:
		b.doc.Tables = append(b.doc.Tables, &statute.AnnexTable{
			Number:         c.Number,
			SubNumber:      c.SubNumber,
			Category:       c.Category,
			Title:          c.Title,
			Content:        c.Body,
			AttachmentRefs: c.AttachmentRefs,
		})

	default:
		b.addUnrecognized(c)
	}
}

// Build finalizes the tree: article entries are sorted monotonically by
// (number, subNumber) within each parent, leaving chapter/section
// boundaries where the source put them.
func (b *Builder) Build() *statute.Document {
	sortDocumentArticles(b.doc)
	return b.doc
}

// --- context management ---

func (b *Builder) closeBelowChapter() {
	b.section = nil
	b.closeBelowSection()
}

func (b *Builder) closeBelowSection() {
	b.subSection = nil
	b.closeBelowSubSection()
}

func (b *Builder) closeBelowSubSection() {
	b.article = nil
	b.paragraph = nil
	b.item = nil
	b.addendum = nil
	b.articleImplicit = false
}

// openChapter returns the open chapter, creating an unnumbered one when a
// section arrives before any chapter.
func (b *Builder) openChapter() *statute.Chapter {
	if b.chapter == nil {
		b.chapter = &statute.Chapter{Children: []*statute.ChapterChild{}}
		b.doc.Children = append(b.doc.Children, &statute.DocumentChild{Chapter: b.chapter})
	}
	return b.chapter
}

// openSection returns the open section, creating an unnumbered one when a
// sub-section arrives before any section.
func (b *Builder) openSection() *statute.Section {
	if b.section == nil {
		b.section = &statute.Section{Children: []*statute.SectionChild{}}
		b.openChapter().Children = append(b.openChapter().Children, &statute.ChapterChild{Section: b.section})
	}
	return b.section
}

// --- articles ---

func (b *Builder) addArticle(c recognize.Classified) {
	key := articleKey{number: c.Number, subNumber: c.SubNumber}

	if existing, ok := b.byKey[key]; ok {
		b.resolveDuplicate(existing, c)
		return
	}

	article := &statute.Article{
		Number:        c.Number,
		SubNumber:     c.SubNumber,
		Title:         c.Title,
		FullText:      c.Body,
		Paragraphs:    []*statute.Paragraph{},
		AmendmentTags: append([]string{}, c.Tags...),
		SourceOrder:   c.SourceOrder,
	}
	if c.Body != "" {
		paragraphs, overflow := recognize.BuildParagraphs(c.Body)
		article.Paragraphs = paragraphs
		if overflow {
			b.doc.AddDiagnostic(statute.DiagOverflowOrdinal, c.SourceOrder,
				"article %s has more paragraphs than the circled-digit set", article.Key())
		}
	}

	b.attachArticle(article)
	b.openArticle(article, c.Body != "" && !hasGlyph(c.Body))
}

// attachArticle places an article under the deepest open chapter-level
// context, or at the document root when the statute has no chapter
// structure.
func (b *Builder) attachArticle(article *statute.Article) {
	b.byKey[articleKey{article.Number, article.SubNumber}] = article
	switch {
	case b.subSection != nil:
		b.subSection.Articles = append(b.subSection.Articles, article)
	case b.section != nil:
		b.section.Children = append(b.section.Children, &statute.SectionChild{Article: article})
	case b.chapter != nil:
		b.chapter.Children = append(b.chapter.Children, &statute.ChapterChild{Article: article})
	default:
		b.doc.Children = append(b.doc.Children, &statute.DocumentChild{Article: article})
	}
}

func (b *Builder) openArticle(article *statute.Article, implicit bool) {
	b.article = article
	b.addendum = nil
	b.articleImplicit = implicit
	b.paragraph = nil
	b.item = nil
	if n := len(article.Paragraphs); n > 0 {
		b.paragraph = article.Paragraphs[n-1]
		if in := len(b.paragraph.Items); in > 0 {
			b.item = b.paragraph.Items[in-1]
		}
	}
}

// resolveDuplicate applies the last-wins-if-nonempty rule in place: the
// occurrence with a non-empty body wins; when both are non-empty the later
// source order wins. The discarded occurrence is always recorded.
func (b *Builder) resolveDuplicate(existing *statute.Article, c recognize.Classified) {
	if c.Body == "" {
		b.doc.AddDiagnostic(statute.DiagDuplicateNumber, c.SourceOrder,
			"duplicate of article %s discarded (no body)", existing.Key())
		b.openArticle(existing, existing.FullText != "" && !hasGlyph(existing.FullText))
		return
	}

	if existing.FullText != "" {
		b.doc.AddDiagnostic(statute.DiagDuplicateNumber, c.SourceOrder,
			"article %s replaced by later occurrence (node %d over %d): %s",
			existing.Key(), c.SourceOrder, existing.SourceOrder, snippet(existing.FullText))
	} else {
		b.doc.AddDiagnostic(statute.DiagDuplicateNumber, existing.SourceOrder,
			"index-only occurrence of article %s superseded by body at node %d",
			existing.Key(), c.SourceOrder)
	}

	if c.Title != "" {
		existing.Title = c.Title
	}
	existing.FullText = c.Body
	existing.AmendmentTags = append(existing.AmendmentTags, c.Tags...)
	existing.SourceOrder = c.SourceOrder
	paragraphs, overflow := recognize.BuildParagraphs(c.Body)
	existing.Paragraphs = paragraphs
	if overflow {
		b.doc.AddDiagnostic(statute.DiagOverflowOrdinal, c.SourceOrder,
			"article %s has more paragraphs than the circled-digit set", existing.Key())
	}
	b.openArticle(existing, !hasGlyph(c.Body))
}

// --- paragraphs, items, sub-items ---

func (b *Builder) addParagraph(c recognize.Classified) {
	if b.addendum != nil {
		b.appendAddendumText(c.Raw)
		return
	}
	if b.article == nil {
		b.addTrailing(c.Raw)
		b.doc.AddDiagnostic(statute.DiagUnrecognizedFragment, c.SourceOrder,
			"paragraph marker with no open article")
		return
	}

	// An implicit paragraph built from a glyph-free body becomes the
	// unnumbered lead once real glyph paragraphs start arriving.
	if b.articleImplicit && c.Ordinal == 1 {
		for _, p := range b.article.Paragraphs {
			p.Ordinal = 0
		}
		b.articleImplicit = false
	}

	text := statute.GlyphForOrdinal(c.Ordinal) + " " + c.Body
	paragraphs, overflow := recognize.BuildParagraphs(text)

	last := maxOrdinal(b.article.Paragraphs)
	for _, p := range paragraphs {
		if p.Ordinal <= last {
			// Glyph set cycled; continue counting past the last ordinal.
			p.Ordinal = last + 1
			overflow = true
		}
		last = p.Ordinal
		b.article.Paragraphs = append(b.article.Paragraphs, p)
	}
	if overflow {
		b.doc.AddDiagnostic(statute.DiagOverflowOrdinal, c.SourceOrder,
			"article %s paragraph ordinals exceed the circled-digit set", b.article.Key())
	}

	b.article.AmendmentTags = append(b.article.AmendmentTags, c.Tags...)
	b.appendArticleText(c.Raw)
	if n := len(b.article.Paragraphs); n > 0 {
		b.paragraph = b.article.Paragraphs[n-1]
	}
	b.item = nil
}

func (b *Builder) addItem(c recognize.Classified) {
	if b.addendum != nil {
		b.appendAddendumText(c.Raw)
		return
	}
	if b.article == nil {
		b.addTrailing(c.Raw)
		b.doc.AddDiagnostic(statute.DiagUnrecognizedFragment, c.SourceOrder,
			"item marker with no open article")
		return
	}
	if b.paragraph == nil {
		// An item with no open paragraph implies a single unnumbered one.
		b.paragraph = &statute.Paragraph{Ordinal: 1, Items: []*statute.Item{}}
		b.article.Paragraphs = append(b.article.Paragraphs, b.paragraph)
		b.articleImplicit = true
	}

	item := recognize.BuildItem(c.Ordinal, c.Body)
	b.paragraph.Items = append(b.paragraph.Items, item)
	b.article.AmendmentTags = append(b.article.AmendmentTags, c.Tags...)
	b.appendArticleText(c.Raw)
	b.item = item
}

func (b *Builder) addSubItem(c recognize.Classified) {
	if b.addendum != nil {
		b.appendAddendumText(c.Raw)
		return
	}
	if b.item == nil {
		b.addUnrecognized(recognize.Classified{
			Kind:        recognize.KindUnrecognized,
			Body:        c.Raw,
			SourceOrder: c.SourceOrder,
			Raw:         c.Raw,
		})
		return
	}
	b.item.SubItems = append(b.item.SubItems, &statute.SubItem{
		Ordinal: c.Ordinal,
		Marker:  c.Marker,
		Text:    c.Body,
	})
	b.article.AmendmentTags = append(b.article.AmendmentTags, c.Tags...)
	b.appendArticleText(c.Raw)
}

// --- fallback ---

func (b *Builder) addUnrecognized(c recognize.Classified) {
	if c.Malformed {
		b.doc.AddDiagnostic(statute.DiagMalformedNumbering, c.SourceOrder,
			"structural marker failed decomposition: %s", snippet(c.Raw))
	} else {
		b.doc.AddDiagnostic(statute.DiagUnrecognizedFragment, c.SourceOrder,
			"kept as trailing text: %s", snippet(c.Raw))
	}

	switch {
	case b.addendum != nil:
		b.appendAddendumText(c.Raw)
	case b.article != nil:
		b.appendArticleText(c.Raw)
		if b.paragraph != nil {
			b.paragraph.Text = joinText(b.paragraph.Text, strings.TrimSpace(c.Raw))
		}
	default:
		b.addTrailing(c.Raw)
	}
}

func (b *Builder) addTrailing(text string) {
	text = strings.TrimSpace(text)
	switch {
	case b.subSection != nil:
		b.subSection.TrailingText = append(b.subSection.TrailingText, text)
	case b.section != nil:
		b.section.TrailingText = append(b.section.TrailingText, text)
	case b.chapter != nil:
		b.chapter.TrailingText = append(b.chapter.TrailingText, text)
	default:
		b.doc.TrailingText = append(b.doc.TrailingText, text)
	}
}

func (b *Builder) appendArticleText(raw string) {
	clean, _ := recognize.ExtractTags(raw)
	b.article.FullText = joinText(b.article.FullText, clean)
}

func (b *Builder) appendAddendumText(raw string) {
	b.addendum.Text = joinText(b.addendum.Text, strings.TrimSpace(raw))
}

func joinText(existing, addition string) string {
	if addition == "" {
		return existing
	}
	if existing == "" {
		return addition
	}
	return existing + "\n" + addition
}

func maxOrdinal(paragraphs []*statute.Paragraph) int {
	max := 0
	for _, p := range paragraphs {
		if p.Ordinal > max {
			max = p.Ordinal
		}
	}
	return max
}

func hasGlyph(text string) bool {
	for _, r := range text {
		if statute.IsParagraphGlyph(r) {
			return true
		}
	}
	return false
}

func snippet(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > 40 {
		return string(runes[:40]) + "..."
	}
	return text
}
