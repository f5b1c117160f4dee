package rawsource

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// TreeShape is the legislation service's XML payload: a nested attribute
// tree whose unit groups (조문, 항, 호, 목, 부칙, 별표) may each appear as a
// single group or as a list of groups.
type TreeShape []byte

// Compiled unit selectors. Both the bare and the -단위 suffixed element
// names occur across service versions; selecting the union normalizes the
// one-group and many-group forms into a single ordered list.
var (
	articleUnitExpr  = xpath.MustCompile("//조문단위|//조문")
	addendumUnitExpr = xpath.MustCompile("//부칙단위|//부칙")
	tableUnitExpr    = xpath.MustCompile("//별표단위|//별표")
)

func (t TreeShape) adapt() ([]RawNode, *DocumentInfo, error) {
	if len(bytes.TrimSpace(t)) == 0 {
		return nil, nil, nil
	}
	root, err := xmlquery.Parse(bytes.NewReader(t))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing attribute tree: %w", err)
	}

	info := treeDocumentInfo(root)
	var nodes []RawNode

	appendNode := func(text, unit string, refs []string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		nodes = append(nodes, RawNode{
			RawText:     text,
			SourceOrder: len(nodes),
			Hints:       SourceHints{Shape: ShapeTree, Unit: unit, Refs: refs},
		})
	}

	for _, article := range xmlquery.QuerySelectorAll(root, articleUnitExpr) {
		appendNode(articleText(article), "조문", nil)
		for _, para := range xmlquery.Find(article, "항단위|항") {
			appendNode(childText(para, "항내용"), "항", nil)
			for _, item := range xmlquery.Find(para, "호단위|호") {
				appendNode(childText(item, "호내용"), "호", nil)
				for _, sub := range xmlquery.Find(item, "목단위|목") {
					appendNode(childText(sub, "목내용"), "목", nil)
				}
			}
		}
	}

	for _, addendum := range xmlquery.QuerySelectorAll(root, addendumUnitExpr) {
		appendNode(addendumText(addendum), "부칙", nil)
	}

	for _, table := range xmlquery.QuerySelectorAll(root, tableUnitExpr) {
		text, refs := tableText(table)
		appendNode(text, "별표", refs)
	}

	return nodes, info, nil
}

// articleText prefers the 조문내용 body, which normally already begins with
// the "제N조(제목)" line; when it does not, the line is reconstructed from
// the unit's number, branch number, and title fields.
func articleText(unit *xmlquery.Node) string {
	content := strings.TrimSpace(childText(unit, "조문내용"))
	if strings.HasPrefix(content, "제") {
		return content
	}

	number := strings.TrimSpace(childText(unit, "조문번호"))
	if number == "" {
		return content
	}
	var sb strings.Builder
	sb.WriteString("제")
	sb.WriteString(number)
	sb.WriteString("조")
	if branch := strings.TrimSpace(childText(unit, "조문가지번호")); branch != "" && branch != "0" {
		sb.WriteString("의")
		sb.WriteString(branch)
	}
	if title := strings.TrimSpace(childText(unit, "조문제목")); title != "" {
		sb.WriteString("(")
		sb.WriteString(title)
		sb.WriteString(")")
	}
	if content != "" {
		sb.WriteString(" ")
		sb.WriteString(content)
	}
	return sb.String()
}

func addendumText(unit *xmlquery.Node) string {
	content := strings.TrimSpace(childText(unit, "부칙내용"))
	date := strings.TrimSpace(childText(unit, "부칙공포일자"))
	number := strings.Trim(strings.TrimSpace(childText(unit, "부칙공포번호")), "제호")

	var sb strings.Builder
	sb.WriteString("부칙")
	if number != "" || date != "" {
		sb.WriteString(" <제")
		sb.WriteString(number)
		sb.WriteString("호, ")
		sb.WriteString(date)
		sb.WriteString(">")
	}
	if content != "" {
		content = strings.TrimSpace(strings.TrimPrefix(content, "부칙"))
		sb.WriteString(" ")
		sb.WriteString(content)
	}
	return sb.String()
}

func tableText(unit *xmlquery.Node) (string, []string) {
	var sb strings.Builder
	sb.WriteString("별표")
	if number := strings.TrimSpace(childText(unit, "별표번호")); number != "" {
		sb.WriteString(" ")
		sb.WriteString(number)
		if branch := strings.TrimSpace(childText(unit, "별표가지번호")); branch != "" && branch != "0" {
			sb.WriteString("의")
			sb.WriteString(branch)
		}
	}
	if category := strings.TrimSpace(childText(unit, "별표구분")); category != "" {
		sb.WriteString(" ")
		sb.WriteString(category)
	}
	if title := strings.TrimSpace(childText(unit, "별표제목")); title != "" {
		sb.WriteString(" ")
		sb.WriteString(title)
	}
	if content := strings.TrimSpace(childText(unit, "별표내용")); content != "" {
		sb.WriteString("\n")
		sb.WriteString(content)
	}

	var refs []string
	for _, name := range []string{"별표서식파일링크", "별표서식PDF파일링크"} {
		if ref := strings.TrimSpace(childText(unit, name)); ref != "" {
			refs = append(refs, ref)
		}
	}
	return sb.String(), refs
}

// treeDocumentInfo recovers statute metadata from the tree's
// basic-information fields. Field names vary slightly across service
// versions (with and without underscores); the first non-empty form wins.
func treeDocumentInfo(root *xmlquery.Node) *DocumentInfo {
	info := &DocumentInfo{
		Title:            firstChildText(root, "법령명_한글", "법령명한글"),
		PromulgationDate: firstChildText(root, "공포일자"),
		PromulgationNo:   firstChildText(root, "공포번호"),
		EffectiveDate:    firstChildText(root, "시행일자"),
		Authority:        firstChildText(root, "소관부처명", "소관부처"),
		RevisionType:     firstChildText(root, "제개정구분명", "제개정구분"),
		RevisionText:     firstChildText(root, "개정문내용"),
		RevisionReason:   firstChildText(root, "제개정이유내용"),
	}
	if *info == (DocumentInfo{}) {
		return nil
	}
	return info
}

// childText returns the inner text of the first direct child with the
// given name, or "".
func childText(n *xmlquery.Node, name string) string {
	if child := xmlquery.FindOne(n, name); child != nil {
		return child.InnerText()
	}
	return ""
}

// firstChildText returns the first non-empty inner text among descendants
// with any of the given names.
func firstChildText(root *xmlquery.Node, names ...string) string {
	for _, name := range names {
		if n := xmlquery.FindOne(root, "//"+name); n != nil {
			if text := strings.TrimSpace(n.InnerText()); text != "" {
				return text
			}
		}
	}
	return ""
}
