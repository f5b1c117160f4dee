package rawsource

import (
	"errors"
	"strings"
	"testing"
)

func TestAdaptTextShape(t *testing.T) {
	nodes, info, err := Adapt(TextShape("제1장 총칙\n\n제1조(목적) 이 법은 과세의 원칙을 정한다.\n  \n① 제일 항\n"))
	if err != nil {
		t.Fatalf("Adapt failed: %v", err)
	}
	if info != nil {
		t.Errorf("text shape should yield no document info, got %+v", info)
	}
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3 (blank lines dropped)", len(nodes))
	}
	for i, node := range nodes {
		if node.SourceOrder != i {
			t.Errorf("node %d has SourceOrder %d", i, node.SourceOrder)
		}
		if node.Hints.Shape != ShapeText {
			t.Errorf("node %d shape = %q, want %q", i, node.Hints.Shape, ShapeText)
		}
	}
	if nodes[1].RawText != "제1조(목적) 이 법은 과세의 원칙을 정한다." {
		t.Errorf("unexpected node text: %q", nodes[1].RawText)
	}
}

func TestAdaptEmptyInputs(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"empty text", TextShape("")},
		{"whitespace text", TextShape("  \n\t\n")},
		{"empty index", IndexShape{}},
		{"blank index labels", IndexShape{{Label: "  "}, {Label: "\t"}}},
		{"empty tree", TreeShape(nil)},
		{"whitespace tree", TreeShape("   \n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, _, err := Adapt(tt.in)
			if err != nil {
				t.Fatalf("Adapt failed: %v", err)
			}
			if len(nodes) != 0 {
				t.Errorf("got %d nodes, want 0", len(nodes))
			}
		})
	}
}

func TestAdaptNilInput(t *testing.T) {
	_, _, err := Adapt(nil)
	if !errors.Is(err, ErrNilInput) {
		t.Errorf("err = %v, want ErrNilInput", err)
	}
}

func TestAdaptIndexShape(t *testing.T) {
	nodes, _, err := Adapt(IndexShape{
		{Label: "제1조(목적)", Ref: "0001"},
		{Label: "제2조(정의)", Ref: "0002"},
	})
	if err != nil {
		t.Fatalf("Adapt failed: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0].Hints.Shape != ShapeIndex || nodes[0].Hints.OpaqueRef != "0001" {
		t.Errorf("unexpected hints: %+v", nodes[0].Hints)
	}
}

func TestParseIndexFragment(t *testing.T) {
	fragment := `<select id="lsJoMove">
		<option value="">조문선택</option>
		<option value="000100">제1조(목적)</option>
		<option value="001002">제10조의2(특례)</option>
	</select>
	<div class="left_menu">
		<a href="#jo11">제11조(기타)</a>
	</div>`

	entries, err := ParseIndexFragment(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("ParseIndexFragment failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	if entries[1].Label != "제1조(목적)" || entries[1].Ref != "000100" {
		t.Errorf("unexpected entry: %+v", entries[1])
	}
	if entries[3].Label != "제11조(기타)" || entries[3].Ref != "#jo11" {
		t.Errorf("unexpected anchor entry: %+v", entries[3])
	}
}

func TestParseIndexFragmentCollapsesWhitespace(t *testing.T) {
	entries, err := ParseIndexFragment(strings.NewReader(
		"<option value=\"1\">  제1조\n\t(목적)  </option>"))
	if err != nil {
		t.Fatalf("ParseIndexFragment failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Label != "제1조 (목적)" {
		t.Errorf("label = %q, want whitespace collapsed", entries[0].Label)
	}
}
