package statute

import "testing"

func TestGlyphForOrdinal(t *testing.T) {
	tests := []struct {
		ordinal int
		want    string
	}{
		{1, "①"},
		{2, "②"},
		{10, "⑩"},
		{20, "⑳"},
		{0, ""},
		{21, ""},
		{-3, ""},
	}
	for _, tt := range tests {
		if got := GlyphForOrdinal(tt.ordinal); got != tt.want {
			t.Errorf("GlyphForOrdinal(%d) = %q, want %q", tt.ordinal, got, tt.want)
		}
	}
}

func TestOrdinalForGlyph(t *testing.T) {
	if got := OrdinalForGlyph('①'); got != 1 {
		t.Errorf("OrdinalForGlyph(①) = %d, want 1", got)
	}
	if got := OrdinalForGlyph('⑳'); got != 20 {
		t.Errorf("OrdinalForGlyph(⑳) = %d, want 20", got)
	}
	if got := OrdinalForGlyph('가'); got != 0 {
		t.Errorf("OrdinalForGlyph(가) = %d, want 0", got)
	}
}

func TestParagraphLabelOverflow(t *testing.T) {
	if got := ParagraphLabel(3); got != "③" {
		t.Errorf("ParagraphLabel(3) = %q, want ③", got)
	}
	// Past the glyph set the label falls back to a parenthesized number.
	if got := ParagraphLabel(21); got != "(21)" {
		t.Errorf("ParagraphLabel(21) = %q, want (21)", got)
	}
}

func TestOrdinalForSubItemMarker(t *testing.T) {
	if got := OrdinalForSubItemMarker('가'); got != 1 {
		t.Errorf("OrdinalForSubItemMarker(가) = %d, want 1", got)
	}
	if got := OrdinalForSubItemMarker('다'); got != 3 {
		t.Errorf("OrdinalForSubItemMarker(다) = %d, want 3", got)
	}
	if got := OrdinalForSubItemMarker('z'); got != 0 {
		t.Errorf("OrdinalForSubItemMarker(z) = %d, want 0", got)
	}
}

func TestArticleKey(t *testing.T) {
	if got := ArticleKey(10, 0); got != "10" {
		t.Errorf("ArticleKey(10, 0) = %q, want 10", got)
	}
	if got := ArticleKey(10, 2); got != "10의2" {
		t.Errorf("ArticleKey(10, 2) = %q, want 10의2", got)
	}
}
