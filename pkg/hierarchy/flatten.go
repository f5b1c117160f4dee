package hierarchy

import (
	"strings"

	"github.com/coolbeans/kolaw/pkg/recognize"
	"github.com/coolbeans/kolaw/pkg/statute"
)

// Flatten emits a finalized tree back as a classified node sequence in
// document order. Rebuilding from the flattened sequence reproduces an
// isomorphic tree, which the tests use as a stability check.
func Flatten(doc *statute.Document) []recognize.Classified {
	var nodes []recognize.Classified
	emit := func(c recognize.Classified) {
		c.SourceOrder = len(nodes)
		nodes = append(nodes, c)
	}

	if doc.Title != "" && len(doc.AmendmentTags) > 0 {
		emit(recognize.Classified{
			Kind:  recognize.KindDocTitle,
			Title: doc.Title,
			Tags:  append([]string{}, doc.AmendmentTags...),
		})
	}

	for _, child := range doc.Children {
		switch {
		case child.Article != nil:
			flattenArticle(child.Article, emit)
		case child.Chapter != nil:
			flattenChapter(child.Chapter, emit)
		}
	}

	for _, addendum := range doc.Addenda {
		emit(recognize.Classified{
			Kind:             recognize.KindAddendum,
			PromulgationNo:   addendum.PromulgationNo,
			PromulgationDate: addendum.PromulgationDate,
			Body:             addendum.Text,
		})
	}
	for _, table := range doc.Tables {
		emit(recognize.Classified{
			Kind:           recognize.KindTable,
			Number:         table.Number,
			SubNumber:      table.SubNumber,
			Category:       table.Category,
			Title:          table.Title,
			Body:           table.Content,
			AttachmentRefs: append([]string{}, table.AttachmentRefs...),
		})
	}
	return nodes
}

func flattenChapter(chapter *statute.Chapter, emit func(recognize.Classified)) {
	emit(recognize.Classified{Kind: recognize.KindChapter, Number: chapter.Number, Title: chapter.Title})
	for _, child := range chapter.Children {
		switch {
		case child.Article != nil:
			flattenArticle(child.Article, emit)
		case child.Section != nil:
			flattenSection(child.Section, emit)
		}
	}
}

func flattenSection(section *statute.Section, emit func(recognize.Classified)) {
	emit(recognize.Classified{Kind: recognize.KindSection, Number: section.Number, Title: section.Title})
	for _, child := range section.Children {
		switch {
		case child.Article != nil:
			flattenArticle(child.Article, emit)
		case child.SubSection != nil:
			emit(recognize.Classified{Kind: recognize.KindSubSection, Number: child.SubSection.Number, Title: child.SubSection.Title})
			for _, article := range child.SubSection.Articles {
				flattenArticle(article, emit)
			}
		}
	}
}

// flattenArticle emits the article header (with any unnumbered lead
// paragraph folded into its body and tags carried on the Tags field),
// then each glyph paragraph, item, and sub-item as its own node.
func flattenArticle(article *statute.Article, emit func(recognize.Classified)) {
	var body strings.Builder
	for _, p := range article.Paragraphs {
		if p.Ordinal == 0 {
			body.WriteString(p.Text)
		}
	}

	emit(recognize.Classified{
		Kind:      recognize.KindArticle,
		Number:    article.Number,
		SubNumber: article.SubNumber,
		Title:     article.Title,
		Body:      body.String(),
		Tags:      append([]string{}, article.AmendmentTags...),
	})

	for _, p := range article.Paragraphs {
		if p.Ordinal > 0 {
			emit(recognize.Classified{
				Kind:    recognize.KindParagraph,
				Ordinal: p.Ordinal,
				Body:    p.Text,
			})
		}
		for _, item := range p.Items {
			emit(recognize.Classified{
				Kind:    recognize.KindItem,
				Ordinal: item.Ordinal,
				Body:    item.Text,
			})
			for _, sub := range item.SubItems {
				emit(recognize.Classified{
					Kind:    recognize.KindSubItem,
					Ordinal: sub.Ordinal,
					Marker:  sub.Marker,
					Body:    sub.Text,
				})
			}
		}
	}
}
