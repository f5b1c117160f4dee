package hierarchy

import (
	"sort"

	"github.com/coolbeans/kolaw/pkg/statute"
)

// sortDocumentArticles makes article ordering monotonic by
// (number, subNumber) within every parent, with source order breaking
// ties. Non-article siblings (chapter and section boundaries) keep their
// positions; only the article entries are reordered among themselves.
func sortDocumentArticles(doc *statute.Document) {
	var articles []*statute.Article
	var slots []int
	for i, child := range doc.Children {
		if child.Article != nil {
			articles = append(articles, child.Article)
			slots = append(slots, i)
		}
	}
	sortArticles(articles)
	for i, slot := range slots {
		doc.Children[slot].Article = articles[i]
	}

	for _, child := range doc.Children {
		if child.Chapter != nil {
			sortChapterArticles(child.Chapter)
		}
	}
}

func sortChapterArticles(chapter *statute.Chapter) {
	var articles []*statute.Article
	var slots []int
	for i, child := range chapter.Children {
		if child.Article != nil {
			articles = append(articles, child.Article)
			slots = append(slots, i)
		}
	}
	sortArticles(articles)
	for i, slot := range slots {
		chapter.Children[slot].Article = articles[i]
	}

	for _, child := range chapter.Children {
		if child.Section != nil {
			sortSectionArticles(child.Section)
		}
	}
}

func sortSectionArticles(section *statute.Section) {
	var articles []*statute.Article
	var slots []int
	for i, child := range section.Children {
		if child.Article != nil {
			articles = append(articles, child.Article)
			slots = append(slots, i)
		}
	}
	sortArticles(articles)
	for i, slot := range slots {
		section.Children[slot].Article = articles[i]
	}

	for _, child := range section.Children {
		if child.SubSection != nil {
			sortArticles(child.SubSection.Articles)
		}
	}
}

func sortArticles(articles []*statute.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		if a.SubNumber != b.SubNumber {
			return a.SubNumber < b.SubNumber
		}
		return a.SourceOrder < b.SourceOrder
	})
}
