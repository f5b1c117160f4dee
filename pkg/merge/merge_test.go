package merge

import (
	"strings"
	"testing"

	"github.com/coolbeans/kolaw/pkg/hierarchy"
	"github.com/coolbeans/kolaw/pkg/rawsource"
	"github.com/coolbeans/kolaw/pkg/recognize"
	"github.com/coolbeans/kolaw/pkg/statute"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		raw       string
		number    int
		subNumber int
		ok        bool
	}{
		{"10", 10, 0, true},
		{"10의2", 10, 2, true},
		{"10-2", 10, 2, true},
		{"제10조", 10, 0, true},
		{"제10조의2", 10, 2, true},
		{" 7 ", 7, 0, true},
		{"１０", 10, 0, true},       // full-width digits
		{"１０의２", 10, 2, true},
		{"001002", 10, 2, true},   // six-digit service code
		{"000100", 1, 0, true},
		{"부칙", 0, 0, false},
		{"", 0, 0, false},
		{"10의", 0, 0, false},
	}

	for _, tc := range tests {
		number, subNumber, ok := NormalizeKey(tc.raw)
		if ok != tc.ok || number != tc.number || subNumber != tc.subNumber {
			t.Errorf("NormalizeKey(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tc.raw, number, subNumber, ok, tc.number, tc.subNumber, tc.ok)
		}
	}
}

// indexDocument builds a titles-only tree the way an index pass produces
// one.
func indexDocument(t *testing.T, lines ...string) *statute.Document {
	t.Helper()
	nodes, _, err := rawsource.Adapt(rawsource.TextShape(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}
	builder := hierarchy.NewBuilder()
	builder.AddAll(recognize.NewRecognizer().ClassifyAll(nodes))
	return builder.Build()
}

func TestApplyFillsIndexArticles(t *testing.T) {
	doc := indexDocument(t,
		"제1조 목적",
		"제2조 정의",
		"제10조의2 가산세 특례",
	)

	Apply(doc, []BodyEntry{
		{Key: "1", Text: "이 법은 과세 요건을 정함을 목적으로 한다.", SourceOrder: 0},
		{Key: "제2조", Text: "제2조(정의) ①용어의 뜻은 다음과 같다. ②생략", SourceOrder: 1},
		{Key: "001002", Text: "가산세는 따로 정한다.", SourceOrder: 2},
	})

	articles := doc.Articles()
	if len(articles) != 3 {
		t.Fatalf("got %d articles, want 3", len(articles))
	}

	if articles[0].FullText != "이 법은 과세 요건을 정함을 목적으로 한다." {
		t.Errorf("article 1 body = %q", articles[0].FullText)
	}

	// The repeated header line must not leak into the paragraph text.
	defs := articles[1]
	if strings.Contains(defs.FullText, "제2조") {
		t.Errorf("header not stripped: %q", defs.FullText)
	}
	if len(defs.Paragraphs) != 2 || defs.Paragraphs[0].Text != "용어의 뜻은 다음과 같다." {
		t.Errorf("article 2 paragraphs: %+v", defs.Paragraphs)
	}

	if articles[2].FullText != "가산세는 따로 정한다." {
		t.Errorf("coded key missed article 10의2: %q", articles[2].FullText)
	}

	if len(doc.Orphans) != 0 {
		t.Errorf("orphans = %+v", doc.Orphans)
	}
	if doc.HasDiagnostic(statute.DiagContentMissing) {
		t.Error("no article should be content-missing")
	}
}

func TestApplyRecordsOrphans(t *testing.T) {
	doc := indexDocument(t, "제1조 목적")

	Apply(doc, []BodyEntry{
		{Key: "1", Text: "본문이다.", SourceOrder: 0},
		{Key: "99", Text: "대응하는 조문이 없다.", SourceOrder: 1},
		{Key: "부칙", Text: "키가 숫자가 아니다.", SourceOrder: 2},
	})

	if len(doc.Orphans) != 2 {
		t.Fatalf("got %d orphans, want 2", len(doc.Orphans))
	}
	if doc.Orphans[0].Key != "99" {
		t.Errorf("first orphan key = %q", doc.Orphans[0].Key)
	}
	if doc.Orphans[1].Key != "부칙" {
		t.Errorf("unparseable key must be kept verbatim: %q", doc.Orphans[1].Key)
	}
}

func TestApplyMarksContentMissing(t *testing.T) {
	doc := indexDocument(t,
		"제1조 목적",
		"제2조 정의",
	)

	Apply(doc, []BodyEntry{
		{Key: "1", Text: "본문이다.", SourceOrder: 0},
	})

	articles := doc.Articles()
	if articles[0].ContentMissing {
		t.Error("filled article marked content-missing")
	}
	if !articles[1].ContentMissing {
		t.Error("empty article not marked content-missing")
	}
	if !doc.HasDiagnostic(statute.DiagContentMissing) {
		t.Error("expected content-missing diagnostic")
	}
}

func TestApplySecondBodyWins(t *testing.T) {
	doc := indexDocument(t, "제1조 목적")

	Apply(doc, []BodyEntry{
		{Key: "1", Text: "구 본문이다.", SourceOrder: 0},
		{Key: "1", Text: "신 본문이다.", SourceOrder: 1},
	})

	if got := doc.Articles()[0].FullText; got != "신 본문이다." {
		t.Errorf("full text = %q, want the later entry", got)
	}
	if !doc.HasDiagnostic(statute.DiagDuplicateNumber) {
		t.Error("expected duplicate-number diagnostic for the double supply")
	}
}

func TestApplyExtractsAmendmentTags(t *testing.T) {
	doc := indexDocument(t, "제1조 목적")

	Apply(doc, []BodyEntry{
		{Key: "1", Text: "과세 요건을 정한다. [전문개정 2024. 12. 31.]", SourceOrder: 0},
	})

	article := doc.Articles()[0]
	if strings.Contains(article.FullText, "[") {
		t.Errorf("tag left in body: %q", article.FullText)
	}
	if len(article.AmendmentTags) != 1 || article.AmendmentTags[0] != "[전문개정 2024. 12. 31.]" {
		t.Errorf("amendment tags = %v", article.AmendmentTags)
	}
}

func TestFromDocument(t *testing.T) {
	doc := indexDocument(t,
		"제1조(목적) 과세 요건을 정한다.",
		"제10조의2(특례) 특례를 정한다.",
	)

	entries := FromDocument(doc)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Key != "1" || entries[0].Text != "과세 요건을 정한다." {
		t.Errorf("first entry: %+v", entries[0])
	}
	if entries[1].Key != "10의2" {
		t.Errorf("second entry key = %q", entries[1].Key)
	}

	// Entries produced from one tree must merge cleanly into another.
	index := indexDocument(t,
		"제1조 목적",
		"제10조의2 특례",
	)
	Apply(index, entries)
	if index.Articles()[1].FullText != "특례를 정한다." {
		t.Errorf("merged body = %q", index.Articles()[1].FullText)
	}
}
