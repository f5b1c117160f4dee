// Package render serializes a finished statute tree into a markdown-style
// heading-structured text document and into a structured record mirroring
// the data model. Both outputs are pure functions of the tree; rendering
// the same tree twice yields byte-identical output.
package render

import (
	"fmt"
	"strings"

	"github.com/coolbeans/kolaw/pkg/statute"
)

// contentMissingMarker is what an index-only article renders as.
const contentMissingMarker = "*(내용 없음)*"

// Markdown renders the document as heading-structured text: title at the
// top heading, 장/절/관 at descending heading levels, and each article as
// a bold "제N조(제목)" block followed by its paragraphs and items.
func Markdown(doc *statute.Document) string {
	var sb strings.Builder

	if doc.Title != "" {
		fmt.Fprintf(&sb, "# %s\n", doc.Title)
	}
	writeDocumentHeader(&sb, doc)

	for _, child := range doc.Children {
		switch {
		case child.Chapter != nil:
			writeChapter(&sb, child.Chapter)
		case child.Article != nil:
			writeArticle(&sb, child.Article)
		}
	}

	for _, line := range doc.TrailingText {
		fmt.Fprintf(&sb, "\n%s\n", line)
	}

	if len(doc.Addenda) > 0 {
		sb.WriteString("\n## 부칙\n")
		for _, addendum := range doc.Addenda {
			writeAddendum(&sb, addendum)
		}
	}

	if len(doc.Tables) > 0 {
		sb.WriteString("\n## 별표\n")
		for _, table := range doc.Tables {
			writeTable(&sb, table)
		}
	}

	return sb.String()
}

// writeDocumentHeader emits the promulgation line under the title: the
// document-level amendment tags when present, otherwise a line rebuilt
// from the tree metadata.
func writeDocumentHeader(sb *strings.Builder, doc *statute.Document) {
	if len(doc.AmendmentTags) > 0 {
		parts := make([]string, 0, len(doc.AmendmentTags))
		for _, tag := range doc.AmendmentTags {
			parts = append(parts, "`"+tag+"`")
		}
		fmt.Fprintf(sb, "%s\n", strings.Join(parts, " "))
		return
	}

	var parts []string
	if doc.EffectiveDate != "" {
		parts = append(parts, fmt.Sprintf("`[시행 %s]`", doc.EffectiveDate))
	}
	if doc.PromulgationNo != "" || doc.PromulgationDate != "" {
		inner := strings.TrimSpace(strings.Join(nonEmpty(doc.PromulgationNo, doc.PromulgationDate, doc.RevisionType), ", "))
		if inner != "" {
			parts = append(parts, fmt.Sprintf("`[%s]`", inner))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(sb, "%s\n", strings.Join(parts, " "))
	}
}

func writeChapter(sb *strings.Builder, chapter *statute.Chapter) {
	fmt.Fprintf(sb, "\n## %s\n", headingLabel("장", chapter.Number, chapter.Title))
	for _, child := range chapter.Children {
		switch {
		case child.Section != nil:
			writeSection(sb, child.Section)
		case child.Article != nil:
			writeArticle(sb, child.Article)
		}
	}
	for _, line := range chapter.TrailingText {
		fmt.Fprintf(sb, "\n%s\n", line)
	}
}

func writeSection(sb *strings.Builder, section *statute.Section) {
	fmt.Fprintf(sb, "\n### %s\n", headingLabel("절", section.Number, section.Title))
	for _, child := range section.Children {
		switch {
		case child.SubSection != nil:
			writeSubSection(sb, child.SubSection)
		case child.Article != nil:
			writeArticle(sb, child.Article)
		}
	}
	for _, line := range section.TrailingText {
		fmt.Fprintf(sb, "\n%s\n", line)
	}
}

func writeSubSection(sb *strings.Builder, subSection *statute.SubSection) {
	fmt.Fprintf(sb, "\n#### %s\n", headingLabel("관", subSection.Number, subSection.Title))
	for _, article := range subSection.Articles {
		writeArticle(sb, article)
	}
	for _, line := range subSection.TrailingText {
		fmt.Fprintf(sb, "\n%s\n", line)
	}
}

// headingLabel rebuilds a unit heading; unnumbered units created to hold
// out-of-place children render with their title only.
func headingLabel(unit string, number int, title string) string {
	if number == 0 {
		if title == "" {
			return unit
		}
		return title
	}
	if title == "" {
		return fmt.Sprintf("제%d%s", number, unit)
	}
	return fmt.Sprintf("제%d%s %s", number, unit, title)
}

func writeArticle(sb *strings.Builder, article *statute.Article) {
	label := fmt.Sprintf("제%d조", article.Number)
	if article.SubNumber > 0 {
		label = fmt.Sprintf("제%d조의%d", article.Number, article.SubNumber)
	}
	if article.Title != "" {
		label += fmt.Sprintf("(%s)", article.Title)
	}

	fmt.Fprintf(sb, "\n**%s**", label)
	for _, tag := range article.AmendmentTags {
		fmt.Fprintf(sb, " `%s`", tag)
	}
	sb.WriteString("\n")

	if article.ContentMissing || (article.FullText == "" && len(article.Paragraphs) == 0) {
		fmt.Fprintf(sb, "%s\n", contentMissingMarker)
		return
	}

	for _, paragraph := range article.Paragraphs {
		writeParagraph(sb, paragraph)
	}
}

func writeParagraph(sb *strings.Builder, paragraph *statute.Paragraph) {
	switch {
	case paragraph.Ordinal == 0:
		if paragraph.Text != "" {
			fmt.Fprintf(sb, "%s\n", paragraph.Text)
		}
	case paragraph.Text != "":
		fmt.Fprintf(sb, "%s %s\n", statute.ParagraphLabel(paragraph.Ordinal), paragraph.Text)
	default:
		fmt.Fprintf(sb, "%s\n", statute.ParagraphLabel(paragraph.Ordinal))
	}

	for _, item := range paragraph.Items {
		fmt.Fprintf(sb, "  %d. %s\n", item.Ordinal, item.Text)
		for _, sub := range item.SubItems {
			fmt.Fprintf(sb, "    %s %s\n", sub.Marker, sub.Text)
		}
	}
}

func writeAddendum(sb *strings.Builder, addendum *statute.Addendum) {
	var heading []string
	if addendum.PromulgationNo != "" {
		heading = append(heading, addendum.PromulgationNo)
	}
	if addendum.PromulgationDate != "" {
		heading = append(heading, addendum.PromulgationDate)
	}
	if len(heading) > 0 {
		fmt.Fprintf(sb, "\n**부칙 <%s>**\n", strings.Join(heading, ", "))
	} else {
		sb.WriteString("\n**부칙**\n")
	}
	if addendum.Text != "" {
		fmt.Fprintf(sb, "%s\n", addendum.Text)
	}
}

func writeTable(sb *strings.Builder, table *statute.AnnexTable) {
	label := fmt.Sprintf("별표 %d", table.Number)
	if table.SubNumber > 0 {
		label = fmt.Sprintf("별표 %d의%d", table.Number, table.SubNumber)
	}
	fmt.Fprintf(sb, "\n**[%s] %s**", label, table.Title)
	if table.Category != "" {
		fmt.Fprintf(sb, " (%s)", table.Category)
	}
	sb.WriteString("\n")
	if table.Content != "" {
		fmt.Fprintf(sb, "%s\n", table.Content)
	}
	for _, ref := range table.AttachmentRefs {
		fmt.Fprintf(sb, "- 첨부: %s\n", ref)
	}
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
