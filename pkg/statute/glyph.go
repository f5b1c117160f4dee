package statute

import "fmt"

// paragraphGlyphs is the fixed circled-digit sequence used for 항 ordinals.
// The glyphs carry no numeric text; a paragraph's ordinal is the glyph's
// rank in this sequence.
var paragraphGlyphs = []rune{
	'①', '②', '③', '④', '⑤', '⑥', '⑦', '⑧', '⑨', '⑩',
	'⑪', '⑫', '⑬', '⑭', '⑮', '⑯', '⑰', '⑱', '⑲', '⑳',
}

// MaxGlyphOrdinal is the highest paragraph ordinal with a dedicated glyph.
const MaxGlyphOrdinal = 20

// GlyphForOrdinal returns the circled-digit glyph for a 1-based paragraph
// ordinal, or "" when the ordinal is out of glyph range.
func GlyphForOrdinal(ordinal int) string {
	if ordinal < 1 || ordinal > len(paragraphGlyphs) {
		return ""
	}
	return string(paragraphGlyphs[ordinal-1])
}

// OrdinalForGlyph returns the 1-based rank of a circled-digit glyph, or 0
// if the rune is not in the sequence.
func OrdinalForGlyph(r rune) int {
	for i, g := range paragraphGlyphs {
		if g == r {
			return i + 1
		}
	}
	return 0
}

// IsParagraphGlyph reports whether the rune is a circled-digit 항 marker.
func IsParagraphGlyph(r rune) bool {
	return OrdinalForGlyph(r) != 0
}

// ParagraphLabel returns the rendering prefix for a paragraph ordinal: the
// circled glyph when one exists, otherwise a parenthesized number so that
// overflow ordinals stay unambiguous.
func ParagraphLabel(ordinal int) string {
	if g := GlyphForOrdinal(ordinal); g != "" {
		return g
	}
	return fmt.Sprintf("(%d)", ordinal)
}

// subItemMarkers is the 가나다 sequence used for 목 markers.
var subItemMarkers = []rune{
	'가', '나', '다', '라', '마', '바', '사', '아', '자', '차', '카', '타', '파', '하',
}

// OrdinalForSubItemMarker returns the 1-based rank of a 가나다 marker rune,
// or 0 if the rune is not in the sequence.
func OrdinalForSubItemMarker(r rune) int {
	for i, m := range subItemMarkers {
		if m == r {
			return i + 1
		}
	}
	return 0
}

// ArticleKey formats an article identity as "N" or "N의M".
func ArticleKey(number, subNumber int) string {
	if subNumber > 0 {
		return fmt.Sprintf("%d의%d", number, subNumber)
	}
	return fmt.Sprintf("%d", number)
}
