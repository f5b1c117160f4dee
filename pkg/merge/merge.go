// Package merge reconciles an index-pass document (titles and numbers, no
// bodies) with separately obtained body text keyed loosely by article
// number. Matching is strictly numeric — titles are never fuzzy-matched —
// but tolerates trimmed whitespace and full-width digits in the keys.
package merge

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/coolbeans/kolaw/pkg/recognize"
	"github.com/coolbeans/kolaw/pkg/statute"
)

// BodyEntry is one content-pass body keyed by its raw article number.
type BodyEntry struct {
	// Key is the raw article number: "10", "10의2", "10-2", "제10조의2",
	// or the service's six-digit 조번호 code ("001002").
	Key string

	Text        string
	SourceOrder int
}

var (
	keyPattern  = regexp.MustCompile(`^(\d+)(?:[의\-](\d+))?$`)
	codePattern = regexp.MustCompile(`^0\d{3}\d{2}$`)
)

// NormalizeKey decomposes a raw article key into (number, subNumber).
// Full-width digits are folded to half-width and 제/조 framing stripped
// before parsing.
func NormalizeKey(raw string) (int, int, bool) {
	key := width.Narrow.String(strings.TrimSpace(raw))
	key = strings.TrimPrefix(key, "제")
	key = strings.Replace(key, "조", "", 1)
	key = strings.TrimSpace(key)

	// Six-digit 조번호 codes carry the article number in the first four
	// digits and the branch number in the last two (e.g. 001002 → 10의2).
	// A leading zero distinguishes the code form from a plain number.
	if codePattern.MatchString(key) {
		number, _ := strconv.Atoi(key[:4])
		subNumber, _ := strconv.Atoi(key[4:])
		return number, subNumber, true
	}

	groups := keyPattern.FindStringSubmatch(key)
	if groups == nil {
		return 0, 0, false
	}
	number, _ := strconv.Atoi(groups[1])
	subNumber := 0
	if groups[2] != "" {
		subNumber, _ = strconv.Atoi(groups[2])
	}
	return number, subNumber, true
}

// Apply merges content-pass bodies into the document. Matched articles
// get their body set and re-split into paragraphs and items; unmatched
// bodies are retained as orphans on the document; articles still empty
// afterwards are marked content-missing. Apply mutates the document and
// must run at most once per extraction.
func Apply(doc *statute.Document, entries []BodyEntry) {
	byKey := make(map[string]*statute.Article)
	doc.WalkArticles(func(a *statute.Article) {
		byKey[a.Key()] = a
	})

	for _, entry := range entries {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}

		number, subNumber, ok := NormalizeKey(entry.Key)
		if !ok {
			doc.Orphans = append(doc.Orphans, &statute.Orphan{
				Key:         entry.Key,
				Text:        text,
				SourceOrder: entry.SourceOrder,
			})
			continue
		}

		article, found := byKey[statute.ArticleKey(number, subNumber)]
		if !found {
			doc.Orphans = append(doc.Orphans, &statute.Orphan{
				Key:         statute.ArticleKey(number, subNumber),
				Text:        text,
				SourceOrder: entry.SourceOrder,
			})
			continue
		}

		setBody(doc, article, text, entry.SourceOrder)
	}

	doc.WalkArticles(func(a *statute.Article) {
		if a.FullText == "" {
			a.ContentMissing = true
			doc.AddDiagnostic(statute.DiagContentMissing, a.SourceOrder,
				"article %s has no body after content merge", a.Key())
		}
	})
}

// setBody installs a merged body on an article, re-running the paragraph
// and item matchers since body-only passes rarely see paragraph markers
// without the title line.
func setBody(doc *statute.Document, article *statute.Article, text string, sourceOrder int) {
	// The body often repeats the "제N조(제목)" line; strip it so it does
	// not duplicate into the paragraph text.
	if groups := headerPattern.FindStringSubmatch(text); groups != nil {
		text = strings.TrimSpace(groups[1])
	}

	clean, tags := recognize.ExtractTags(text)
	if article.FullText != "" {
		doc.AddDiagnostic(statute.DiagDuplicateNumber, sourceOrder,
			"article %s body supplied twice; later content pass wins", article.Key())
	}

	article.FullText = clean
	article.ContentMissing = false
	article.AmendmentTags = append(article.AmendmentTags, tags...)
	paragraphs, overflow := recognize.BuildParagraphs(clean)
	article.Paragraphs = paragraphs
	if overflow {
		doc.AddDiagnostic(statute.DiagOverflowOrdinal, sourceOrder,
			"article %s has more paragraphs than the circled-digit set", article.Key())
	}
}

var headerPattern = regexp.MustCompile(`(?s)^제\s*\d+\s*조(?:의\d+)?\s*\([^)]*\)\s*(.*)$`)

// FromDocument flattens another extraction's articles into body entries,
// letting a body-only pass arrive as a parsed tree instead of a flat
// list.
func FromDocument(doc *statute.Document) []BodyEntry {
	var entries []BodyEntry
	doc.WalkArticles(func(a *statute.Article) {
		entries = append(entries, BodyEntry{
			Key:         a.Key(),
			Text:        a.FullText,
			SourceOrder: a.SourceOrder,
		})
	})
	return entries
}
