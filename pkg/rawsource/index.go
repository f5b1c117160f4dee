package rawsource

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseIndexFragment extracts index entries from a DOM fragment of the
// rendered statute page: the article jump list (<option> elements) and the
// left-menu article links (<a> elements). Entries keep document order.
func ParseIndexFragment(r io.Reader) (IndexShape, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing index fragment: %w", err)
	}

	var entries IndexShape
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "option":
				label := nodeText(n)
				if strings.TrimSpace(label) != "" {
					entries = append(entries, IndexEntry{
						Label: label,
						Ref:   attrValue(n, "value"),
					})
				}
				return
			case "a":
				label := nodeText(n)
				if strings.TrimSpace(label) != "" {
					entries = append(entries, IndexEntry{
						Label: label,
						Ref:   attrValue(n, "href"),
					})
				}
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return entries, nil
}

// nodeText returns the concatenated text content of a node's subtree with
// runs of whitespace collapsed.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func attrValue(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}
