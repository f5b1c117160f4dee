package statute

// Articles returns every article in the document in document order,
// regardless of nesting depth.
func (doc *Document) Articles() []*Article {
	var articles []*Article
	doc.WalkArticles(func(a *Article) {
		articles = append(articles, a)
	})
	return articles
}

// WalkArticles visits every article in document order.
func (doc *Document) WalkArticles(visit func(*Article)) {
	for _, child := range doc.Children {
		switch {
		case child.Article != nil:
			visit(child.Article)
		case child.Chapter != nil:
			child.Chapter.walkArticles(visit)
		}
	}
}

func (c *Chapter) walkArticles(visit func(*Article)) {
	for _, child := range c.Children {
		switch {
		case child.Article != nil:
			visit(child.Article)
		case child.Section != nil:
			child.Section.walkArticles(visit)
		}
	}
}

func (s *Section) walkArticles(visit func(*Article)) {
	for _, child := range s.Children {
		switch {
		case child.Article != nil:
			visit(child.Article)
		case child.SubSection != nil:
			for _, a := range child.SubSection.Articles {
				visit(a)
			}
		}
	}
}

// Statistics summarizes entity counts for one document.
type Statistics struct {
	Chapters    int `json:"chapters"`
	Sections    int `json:"sections"`
	SubSections int `json:"subsections"`
	Articles    int `json:"articles"`
	Paragraphs  int `json:"paragraphs"`
	Items       int `json:"items"`
	Addenda     int `json:"addenda"`
	Tables      int `json:"tables"`
	Orphans     int `json:"orphans"`
	Diagnostics int `json:"diagnostics"`
}

// Statistics counts the document's entities per hierarchy level.
func (doc *Document) Statistics() Statistics {
	stats := Statistics{
		Addenda:     len(doc.Addenda),
		Tables:      len(doc.Tables),
		Orphans:     len(doc.Orphans),
		Diagnostics: len(doc.Diagnostics),
	}
	for _, child := range doc.Children {
		if child.Chapter == nil {
			continue
		}
		stats.Chapters++
		for _, cc := range child.Chapter.Children {
			if cc.Section == nil {
				continue
			}
			stats.Sections++
			for _, sc := range cc.Section.Children {
				if sc.SubSection != nil {
					stats.SubSections++
				}
			}
		}
	}
	doc.WalkArticles(func(a *Article) {
		stats.Articles++
		stats.Paragraphs += len(a.Paragraphs)
		for _, p := range a.Paragraphs {
			stats.Items += len(p.Items)
		}
	})
	return stats
}
