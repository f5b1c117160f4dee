package render

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/kolaw/pkg/statute"
)

func sampleDocument() *statute.Document {
	return &statute.Document{
		Title:         "소득세법",
		AmendmentTags: []string{"[시행 2025. 7. 1.]", "[법률 제20613호, 2024. 12. 31., 일부개정]"},
		Children: []*statute.DocumentChild{
			{Chapter: &statute.Chapter{
				Number: 1,
				Title:  "총칙",
				Children: []*statute.ChapterChild{
					{Article: &statute.Article{
						Number:   1,
						Title:    "목적",
						FullText: "이 법은 과세 요건을 정함을 목적으로 한다.",
						Paragraphs: []*statute.Paragraph{
							{Ordinal: 1, Text: "이 법은 과세 요건을 정함을 목적으로 한다.", Items: []*statute.Item{}},
						},
					}},
					{Article: &statute.Article{
						Number:    10,
						SubNumber: 2,
						Title:     "특례",
						FullText:  "본문",
						Paragraphs: []*statute.Paragraph{
							{Ordinal: 0, Text: "다음 각 호와 같다.", Items: []*statute.Item{
								{Ordinal: 1, Text: "거주자", SubItems: []*statute.SubItem{
									{Ordinal: 1, Marker: "가.", Text: "국내에 주소를 둔 자"},
								}},
							}},
							{Ordinal: 1, Text: "소득에 과세한다.", Items: []*statute.Item{}},
						},
					}},
				},
			}},
		},
		Addenda: []*statute.Addendum{
			{PromulgationNo: "제20613호", PromulgationDate: "2024. 12. 31.", Text: "이 법은 공포한 날부터 시행한다."},
		},
		Tables: []*statute.AnnexTable{
			{Number: 1, SubNumber: 2, Category: "서식", Title: "과세표준 신고서",
				AttachmentRefs: []string{"/flDownload.do?flSeq=1"}},
		},
	}
}

func TestMarkdownLayout(t *testing.T) {
	out := Markdown(sampleDocument())

	wantLines := []string{
		"# 소득세법",
		"`[시행 2025. 7. 1.]` `[법률 제20613호, 2024. 12. 31., 일부개정]`",
		"## 제1장 총칙",
		"**제1조(목적)**",
		"① 이 법은 과세 요건을 정함을 목적으로 한다.",
		"**제10조의2(특례)**",
		"다음 각 호와 같다.",
		"  1. 거주자",
		"    가. 국내에 주소를 둔 자",
		"① 소득에 과세한다.",
		"## 부칙",
		"**부칙 <제20613호, 2024. 12. 31.>**",
		"이 법은 공포한 날부터 시행한다.",
		"## 별표",
		"**[별표 1의2] 과세표준 신고서** (서식)",
		"- 첨부: /flDownload.do?flSeq=1",
	}

	pos := 0
	for _, want := range wantLines {
		idx := strings.Index(out[pos:], want)
		if idx < 0 {
			t.Fatalf("line %q missing (or out of order) in:\n%s", want, out)
		}
		pos += idx + len(want)
	}
}

func TestMarkdownDeterministic(t *testing.T) {
	doc := sampleDocument()
	if Markdown(doc) != Markdown(doc) {
		t.Error("rendering the same tree twice must be byte-identical")
	}
}

func TestMarkdownContentMissing(t *testing.T) {
	doc := &statute.Document{
		Children: []*statute.DocumentChild{
			{Article: &statute.Article{Number: 3, Title: "납부", ContentMissing: true}},
		},
	}

	out := Markdown(doc)
	if !strings.Contains(out, "**제3조(납부)**") {
		t.Errorf("missing article heading:\n%s", out)
	}
	if !strings.Contains(out, "*(내용 없음)*") {
		t.Errorf("missing content marker:\n%s", out)
	}
}

func TestMarkdownOverflowOrdinalLabel(t *testing.T) {
	doc := &statute.Document{
		Children: []*statute.DocumentChild{
			{Article: &statute.Article{
				Number:   5,
				FullText: "본문",
				Paragraphs: []*statute.Paragraph{
					{Ordinal: 21, Text: "스물한 번째 항", Items: []*statute.Item{}},
				},
			}},
		},
	}

	out := Markdown(doc)
	if !strings.Contains(out, "(21) 스물한 번째 항") {
		t.Errorf("ordinal past the glyph set must fall back to (N):\n%s", out)
	}
}

func TestMarkdownMetadataHeaderWithoutTags(t *testing.T) {
	doc := &statute.Document{
		Title:            "소득세법",
		EffectiveDate:    "2025. 7. 1.",
		PromulgationNo:   "법률 제20613호",
		PromulgationDate: "2024. 12. 31.",
		RevisionType:     "일부개정",
	}

	out := Markdown(doc)
	if !strings.Contains(out, "`[시행 2025. 7. 1.]`") {
		t.Errorf("effective date line missing:\n%s", out)
	}
	if !strings.Contains(out, "`[법률 제20613호, 2024. 12. 31., 일부개정]`") {
		t.Errorf("promulgation line missing:\n%s", out)
	}
}

func TestRecordJSON(t *testing.T) {
	data, err := RecordJSON(sampleDocument())
	if err != nil {
		t.Fatalf("RecordJSON: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("record must end with a newline")
	}

	var decoded statute.Document
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if decoded.Title != "소득세법" {
		t.Errorf("title = %q", decoded.Title)
	}
	if len(decoded.Children) != 1 || decoded.Children[0].Chapter == nil {
		t.Fatalf("children shape lost: %+v", decoded.Children)
	}
	article := decoded.Children[0].Chapter.Children[1].Article
	if article == nil || article.Key() != "10의2" {
		t.Fatalf("nested article lost: %+v", article)
	}
}

func TestRecordYAML(t *testing.T) {
	data, err := RecordYAML(sampleDocument())
	if err != nil {
		t.Fatalf("RecordYAML: %v", err)
	}

	var decoded statute.Document
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if len(decoded.Addenda) != 1 || decoded.Addenda[0].PromulgationNo != "제20613호" {
		t.Errorf("addenda lost: %+v", decoded.Addenda)
	}
}
