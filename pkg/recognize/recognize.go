// Package recognize classifies raw statute fragments into structural
// kinds. A prioritized list of matchers is tried per fragment, first match
// wins; amendment-tag excision runs as a post-step on every matched body
// before any paragraph or item splitting.
package recognize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/coolbeans/kolaw/pkg/rawsource"
	"github.com/coolbeans/kolaw/pkg/statute"
)

// Kind is the structural classification of one raw fragment.
type Kind string

const (
	KindChapter      Kind = "chapter"      // 장
	KindSection      Kind = "section"      // 절
	KindSubSection   Kind = "subsection"   // 관
	KindArticle      Kind = "article"      // 조
	KindParagraph    Kind = "paragraph"    // 항
	KindItem         Kind = "item"         // 호
	KindSubItem      Kind = "subitem"      // 목
	KindAddendum     Kind = "addendum"     // 부칙
	KindTable        Kind = "table"        // 별표
	KindDocTitle     Kind = "doc-title"    // statute title line with 시행 brackets
	KindUnrecognized Kind = "unrecognized" // fallback, kept verbatim
)

// Classified is the tagged-union result of classifying one fragment. The
// populated fields depend on Kind; Raw always carries the verbatim input.
type Classified struct {
	Kind Kind

	// Number and SubNumber identify chapters, sections, sub-sections,
	// articles (제N조의M), and tables.
	Number    int
	SubNumber int

	// Ordinal is the paragraph glyph rank, item number, or sub-item rank.
	Ordinal int

	// Marker is the verbatim sub-item marker, e.g. "가.".
	Marker string

	// Title is the parenthesized article title, unit heading, or document
	// title.
	Title string

	// Body is the residual body text with amendment tags excised.
	Body string

	// Tags holds the amendment-tag spans excised from the body.
	Tags []string

	// PromulgationDate and PromulgationNo are set for addenda.
	PromulgationDate string
	PromulgationNo   string

	// Category is the 별표구분 of a table.
	Category string

	// AttachmentRefs holds annex form-file links carried through hints.
	AttachmentRefs []string

	// Malformed marks a fragment that resembled a structural marker but
	// failed full decomposition. Such fragments classify as unrecognized
	// and the condition is recorded by the builder.
	Malformed bool

	SourceOrder int
	Raw         string
}

// Matcher classifies fragment text into one structural kind.
type Matcher interface {
	Match(text string) (Classified, bool)
}

// Recognizer applies an ordered matcher list per fragment, biased by the
// fragment's source hints.
type Recognizer struct {
	ordered []Matcher

	// byUnit maps tree-shape unit names to the matcher tried first.
	byUnit map[string]Matcher
}

// NewRecognizer builds the default matcher set in priority order.
func NewRecognizer() *Recognizer {
	chapter := headingMatcher{kind: KindChapter, pattern: chapterPattern}
	section := headingMatcher{kind: KindSection, pattern: sectionPattern}
	subsection := headingMatcher{kind: KindSubSection, pattern: subSectionPattern}
	article := articleMatcher{}
	paragraph := paragraphMatcher{}
	item := itemMatcher{}
	subItem := subItemMatcher{}
	addendum := addendumMatcher{}
	table := tableMatcher{}
	title := docTitleMatcher{}

	return &Recognizer{
		ordered: []Matcher{
			chapter, section, subsection,
			article, paragraph, item, subItem,
			addendum, table, title,
		},
		byUnit: map[string]Matcher{
			"조문": article,
			"항":  paragraph,
			"호":  item,
			"목":  subItem,
			"부칙": addendum,
			"별표": table,
		},
	}
}

// Classify runs the matcher list over one raw node. Unmatched fragments
// come back as KindUnrecognized with the text kept verbatim.
func (r *Recognizer) Classify(node rawsource.RawNode) Classified {
	text := strings.TrimSpace(node.RawText)

	try := func(m Matcher) (Classified, bool) {
		c, ok := m.Match(text)
		if !ok {
			return Classified{}, false
		}
		c.SourceOrder = node.SourceOrder
		c.Raw = node.RawText
		if len(node.Hints.Refs) > 0 {
			c.AttachmentRefs = append(c.AttachmentRefs, node.Hints.Refs...)
		}
		clean, tags := ExtractTags(c.Body)
		c.Body = clean
		c.Tags = append(c.Tags, tags...)
		return c, true
	}

	// A tree-shape unit name pins the expected matcher; try it first.
	if preferred, ok := r.byUnit[node.Hints.Unit]; ok {
		if c, ok := try(preferred); ok {
			return c
		}
	}
	for _, m := range r.ordered {
		if c, ok := try(m); ok {
			return c
		}
	}

	return Classified{
		Kind:        KindUnrecognized,
		Body:        text,
		Malformed:   malformedArticlePattern.MatchString(text),
		SourceOrder: node.SourceOrder,
		Raw:         node.RawText,
	}
}

// ClassifyAll classifies a node sequence in source order.
func (r *Recognizer) ClassifyAll(nodes []rawsource.RawNode) []Classified {
	classified := make([]Classified, 0, len(nodes))
	for _, node := range nodes {
		classified = append(classified, r.Classify(node))
	}
	return classified
}

var (
	chapterPattern    = regexp.MustCompile(`^제\s*(\d+)\s*장\s*(.*)$`)
	sectionPattern    = regexp.MustCompile(`^제\s*(\d+)\s*절\s*(.*)$`)
	subSectionPattern = regexp.MustCompile(`^제\s*(\d+)\s*관\s*(.*)$`)

	// articlePattern captures "제N조" / "제N조의M", the parenthesized
	// title, and the body. Bodies may span lines.
	articlePattern = regexp.MustCompile(`(?s)^제\s*(\d+)\s*조(?:의(\d+))?\s*\(([^)]*)\)\s*(.*)$`)

	// articleBarePattern matches index labels with no parenthesized
	// title: "제2조 납세의무" or a bare "제2조".
	articleBarePattern = regexp.MustCompile(`^제\s*(\d+)\s*조(?:의(\d+))?(?:\s+(.*))?$`)

	// malformedArticlePattern spots an article marker whose title
	// parenthesis never closes.
	malformedArticlePattern = regexp.MustCompile(`^제\s*\d+\s*조(?:의\d+)?\s*\([^)]*$`)

	itemPattern    = regexp.MustCompile(`(?s)^(\d{1,3})\.\s*(.*)$`)
	subItemPattern = regexp.MustCompile(`(?s)^([가나다라마바사아자차카타파하])\.\s*(.*)$`)

	// addendumPairPattern finds the promulgation number and date of a
	// 부칙 heading, e.g. "<제20613호, 2024. 12. 31.>".
	addendumPairPattern = regexp.MustCompile(`제\s*(\d+)\s*호\s*[,，]\s*([0-9.\s]+[0-9.])`)

	tablePattern = regexp.MustCompile(`(?s)^별표\s*(\d+)(?:의(\d+))?\s*(.*)$`)

	docTitlePattern = regexp.MustCompile(`^([^\[\]<>]+?)\s*(\[시행[^\]]*\].*)$`)
)

// headingMatcher handles 장, 절, and 관 headings, which share one grammar.
type headingMatcher struct {
	kind    Kind
	pattern *regexp.Regexp
}

func (m headingMatcher) Match(text string) (Classified, bool) {
	groups := m.pattern.FindStringSubmatch(text)
	if groups == nil {
		return Classified{}, false
	}
	number, _ := strconv.Atoi(groups[1])
	return Classified{
		Kind:   m.kind,
		Number: number,
		Title:  strings.TrimSpace(groups[2]),
	}, true
}

type articleMatcher struct{}

func (articleMatcher) Match(text string) (Classified, bool) {
	if groups := articlePattern.FindStringSubmatch(text); groups != nil {
		number, _ := strconv.Atoi(groups[1])
		subNumber := 0
		if groups[2] != "" {
			subNumber, _ = strconv.Atoi(groups[2])
		}
		return Classified{
			Kind:      KindArticle,
			Number:    number,
			SubNumber: subNumber,
			Title:     strings.TrimSpace(groups[3]),
			Body:      strings.TrimSpace(groups[4]),
		}, true
	}

	// Index labels drop the parentheses and may truncate the title.
	groups := articleBarePattern.FindStringSubmatch(text)
	if groups == nil {
		return Classified{}, false
	}
	number, _ := strconv.Atoi(groups[1])
	subNumber := 0
	if groups[2] != "" {
		subNumber, _ = strconv.Atoi(groups[2])
	}
	title := strings.TrimSpace(strings.ReplaceAll(groups[3], "...", ""))
	return Classified{
		Kind:      KindArticle,
		Number:    number,
		SubNumber: subNumber,
		Title:     title,
	}, true
}

type paragraphMatcher struct{}

func (paragraphMatcher) Match(text string) (Classified, bool) {
	runes := []rune(text)
	if len(runes) == 0 {
		return Classified{}, false
	}
	ordinal := statute.OrdinalForGlyph(runes[0])
	if ordinal == 0 {
		return Classified{}, false
	}
	return Classified{
		Kind:    KindParagraph,
		Ordinal: ordinal,
		Body:    strings.TrimSpace(string(runes[1:])),
	}, true
}

type itemMatcher struct{}

func (itemMatcher) Match(text string) (Classified, bool) {
	groups := itemPattern.FindStringSubmatch(text)
	if groups == nil {
		return Classified{}, false
	}
	ordinal, _ := strconv.Atoi(groups[1])
	return Classified{
		Kind:    KindItem,
		Ordinal: ordinal,
		Body:    strings.TrimSpace(groups[2]),
	}, true
}

type subItemMatcher struct{}

func (subItemMatcher) Match(text string) (Classified, bool) {
	groups := subItemPattern.FindStringSubmatch(text)
	if groups == nil {
		return Classified{}, false
	}
	return Classified{
		Kind:    KindSubItem,
		Ordinal: parseHangulOrdinal(groups[1]),
		Marker:  groups[1] + ".",
		Body:    strings.TrimSpace(groups[2]),
	}, true
}

type addendumMatcher struct{}

func (addendumMatcher) Match(text string) (Classified, bool) {
	if !strings.HasPrefix(text, "부칙") {
		return Classified{}, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(text, "부칙"))
	pair := addendumPairPattern.FindStringSubmatchIndex(rest)
	if pair == nil {
		return Classified{}, false
	}
	number := rest[pair[2]:pair[3]]
	date := strings.TrimSpace(rest[pair[4]:pair[5]])

	// Drop the heading span (everything through the promulgation pair,
	// including its surrounding bracket if any) from the body.
	body := rest[pair[1]:]
	body = strings.TrimLeft(body, ">)］〉 \t")
	return Classified{
		Kind:             KindAddendum,
		PromulgationNo:   "제" + number + "호",
		PromulgationDate: date,
		Body:             strings.TrimSpace(body),
	}, true
}

type tableMatcher struct{}

// annexCategories are the 별표구분 values the service reports.
var annexCategories = map[string]bool{
	"별표": true, "서식": true, "별지": true, "부록": true,
}

func (tableMatcher) Match(text string) (Classified, bool) {
	groups := tablePattern.FindStringSubmatch(text)
	if groups == nil {
		return Classified{}, false
	}
	number, _ := strconv.Atoi(groups[1])
	subNumber := 0
	if groups[2] != "" {
		subNumber, _ = strconv.Atoi(groups[2])
	}

	rest := strings.TrimSpace(groups[3])
	title := rest
	body := ""
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		title = strings.TrimSpace(rest[:idx])
		body = strings.TrimSpace(rest[idx+1:])
	}

	category := ""
	if fields := strings.Fields(title); len(fields) > 1 && annexCategories[fields[0]] {
		category = fields[0]
		title = strings.TrimSpace(strings.TrimPrefix(title, fields[0]))
	}

	return Classified{
		Kind:      KindTable,
		Number:    number,
		SubNumber: subNumber,
		Category:  category,
		Title:     title,
		Body:      body,
	}, true
}

// docTitleMatcher recognizes the statute title line of a rendered page:
// the name followed by 시행/공포 bracket spans.
type docTitleMatcher struct{}

func (docTitleMatcher) Match(text string) (Classified, bool) {
	groups := docTitlePattern.FindStringSubmatch(text)
	if groups == nil {
		return Classified{}, false
	}
	return Classified{
		Kind:  KindDocTitle,
		Title: strings.TrimSpace(groups[1]),
		Body:  groups[2],
	}, true
}
