package recognize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/coolbeans/kolaw/pkg/statute"
)

// itemMarkerPattern finds candidate 호 markers: "N." at a line start or
// after whitespace, with or without a space after the dot, matching the
// standalone item matcher. Candidates only become boundaries when they
// form an incremental sequence starting at 1 (see markerPositions), which
// keeps stray numbers in running text from splitting anything.
var itemMarkerPattern = regexp.MustCompile(`(^|[\s\n])(\d{1,3})\.`)

// subItemMarkerPattern finds candidate 목 markers: one 가나다-sequence
// letter followed by a period.
var subItemMarkerPattern = regexp.MustCompile(`(^|[\s\n])([가나다라마바사아자차카타파하])\.`)

// BuildParagraphs converts cleaned article body text into its paragraph
// tree. Bodies with no circled-digit glyph yield a single implicit
// paragraph; a non-empty lead sentence before the first glyph is kept as
// an unnumbered paragraph with ordinal 0 so glyph ordinals stay aligned
// with their ranks. The returned overflow flag reports any ordinal past
// the glyph set. All child sequences are non-nil.
func BuildParagraphs(body string) ([]*statute.Paragraph, bool) {
	body = strings.TrimSpace(body)
	if body == "" {
		return []*statute.Paragraph{}, false
	}

	spans, lead := splitOnGlyphs(body)
	paragraphs := make([]*statute.Paragraph, 0, len(spans)+1)

	if len(spans) == 0 {
		paragraphs = append(paragraphs, newParagraph(1, body))
		return paragraphs, false
	}

	if lead != "" {
		paragraphs = append(paragraphs, newParagraph(0, lead))
	}

	overflow := false
	prev := 0
	for _, span := range spans {
		ordinal := span.ordinal
		if ordinal <= prev {
			// Glyph set exhausted upstream and restarted; continue the
			// count past the last seen ordinal.
			ordinal = prev + 1
			overflow = true
		}
		if ordinal > statute.MaxGlyphOrdinal {
			overflow = true
		}
		paragraphs = append(paragraphs, newParagraph(ordinal, span.text))
		prev = ordinal
	}
	return paragraphs, overflow
}

func newParagraph(ordinal int, text string) *statute.Paragraph {
	lead, items := SplitItems(text)
	return &statute.Paragraph{
		Ordinal: ordinal,
		Text:    strings.TrimSpace(lead),
		Items:   items,
	}
}

// BuildItem converts one 호 body into an Item with its 목 sub-items split
// out.
func BuildItem(ordinal int, body string) *statute.Item {
	lead, subItems := splitSubItems(body)
	return &statute.Item{Ordinal: ordinal, Text: lead, SubItems: subItems}
}

type glyphSpan struct {
	ordinal int
	text    string
}

// splitOnGlyphs cuts body text at every circled-digit glyph, returning
// the glyph spans and any text preceding the first glyph.
func splitOnGlyphs(body string) ([]glyphSpan, string) {
	var spans []glyphSpan
	var lead string

	runes := []rune(body)
	start := -1
	ordinal := 0
	for i := 0; i < len(runes); i++ {
		rank := statute.OrdinalForGlyph(runes[i])
		if rank == 0 {
			continue
		}
		if start < 0 {
			lead = strings.TrimSpace(string(runes[:i]))
		} else {
			spans = append(spans, glyphSpan{ordinal: ordinal, text: strings.TrimSpace(string(runes[start+1 : i]))})
		}
		start = i
		ordinal = rank
	}
	if start >= 0 {
		spans = append(spans, glyphSpan{ordinal: ordinal, text: strings.TrimSpace(string(runes[start+1:]))})
	}
	return spans, lead
}

// SplitItems splits paragraph text into its leading sentence and its 호
// items, each with 목 sub-items populated. Items are only split when the
// candidate "N." markers form a 1, 2, 3... sequence.
func SplitItems(text string) (string, []*statute.Item) {
	positions := markerPositions(text, itemMarkerPattern, parseArabicOrdinal)
	if positions == nil {
		return text, []*statute.Item{}
	}

	lead := strings.TrimSpace(text[:positions[0].start])
	items := make([]*statute.Item, 0, len(positions))
	for i, pos := range positions {
		end := len(text)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		itemText := strings.TrimSpace(text[pos.body:end])
		subLead, subItems := splitSubItems(itemText)
		items = append(items, &statute.Item{
			Ordinal:  pos.ordinal,
			Text:     subLead,
			SubItems: subItems,
		})
	}
	return lead, items
}

// splitSubItems splits item text on 가나다 markers. Like item splitting,
// the markers must start at 가 and follow the sequence.
func splitSubItems(text string) (string, []*statute.SubItem) {
	positions := markerPositions(text, subItemMarkerPattern, parseHangulOrdinal)
	if positions == nil {
		return strings.TrimSpace(text), []*statute.SubItem{}
	}

	lead := strings.TrimSpace(text[:positions[0].start])
	subItems := make([]*statute.SubItem, 0, len(positions))
	for i, pos := range positions {
		end := len(text)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		subItems = append(subItems, &statute.SubItem{
			Ordinal: pos.ordinal,
			Marker:  pos.marker + ".",
			Text:    strings.TrimSpace(text[pos.body:end]),
		})
	}
	return lead, subItems
}

type markerPos struct {
	start   int // byte offset of the marker itself
	body    int // byte offset just past the marker
	ordinal int
	marker  string
}

// markerPositions locates marker candidates and validates that they form
// an incremental sequence starting at 1. Returns nil when the text should
// not be split.
func markerPositions(text string, pattern *regexp.Regexp, parse func(string) int) []markerPos {
	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var positions []markerPos
	for _, m := range matches {
		// A digit right after the dot is a decimal ("2.5"), not a marker.
		if m[1] < len(text) && text[m[1]] >= '0' && text[m[1]] <= '9' {
			continue
		}
		marker := text[m[4]:m[5]]
		ordinal := parse(marker)
		if ordinal != len(positions)+1 {
			if len(positions) == 0 {
				continue // keep scanning for a "1." start
			}
			break // sequence broken; stop rather than mis-split
		}
		positions = append(positions, markerPos{
			start:   m[4],
			body:    m[1],
			ordinal: ordinal,
			marker:  marker,
		})
	}
	if len(positions) == 0 {
		return nil
	}
	return positions
}

func parseArabicOrdinal(marker string) int {
	n, err := strconv.Atoi(marker)
	if err != nil {
		return 0
	}
	return n
}

func parseHangulOrdinal(marker string) int {
	runes := []rune(marker)
	if len(runes) != 1 {
		return 0
	}
	return statute.OrdinalForSubItemMarker(runes[0])
}
