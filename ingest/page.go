package ingest

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Filter metadata convention of the act pages: a meta element whose
// data-pagefind-filter attribute names the filter category, with the value
// taken from the content attribute:
//
//	<meta data-pagefind-filter="ano[content]" content="2018">
//
// Without the [content] suffix the value is the element's text, which only
// makes sense on non-void elements.
const filterAttr = "data-pagefind-filter"

// ActPage is the parsed content of one per-act HTML page.
type ActPage struct {
	Slug       string
	Title      string
	Body       string
	Categories map[string][]string
}

// ParseActPage parses a single act page. The title comes from the first h1,
// falling back to the head title; the body is the text of the main element,
// falling back to the whole body.
func ParseActPage(r io.Reader, slug string) (*ActPage, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing act page %q: %w", slug, err)
	}

	page := &ActPage{
		Slug:       slug,
		Categories: make(map[string][]string),
	}

	if h1 := findElement(root, "h1"); h1 != nil {
		page.Title = collapseSpace(nodeText(h1))
	}
	if page.Title == "" {
		if title := findElement(root, "title"); title != nil {
			page.Title = collapseSpace(nodeText(title))
		}
	}
	if page.Title == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingTitle, slug)
	}

	content := findElement(root, "main")
	if content == nil {
		content = findElement(root, "body")
	}
	if content != nil {
		page.Body = collapseSpace(nodeText(content))
	}

	collectFilters(root, page.Categories)

	return page, nil
}

// collectFilters walks the document for elements carrying the filter
// attribute and records category values.
func collectFilters(n *html.Node, categories map[string][]string) {
	if n.Type == html.ElementNode {
		if spec := nodeAttr(n, filterAttr); spec != "" {
			category, value := resolveFilter(n, spec)
			if category != "" && value != "" {
				categories[category] = append(categories[category], value)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectFilters(c, categories)
	}
}

// resolveFilter splits a filter spec like "ano[content]" into the category
// name and the value it selects on the carrying element.
func resolveFilter(n *html.Node, spec string) (category, value string) {
	category = spec
	if open := strings.IndexByte(spec, '['); open >= 0 {
		end := strings.IndexByte(spec, ']')
		if end < open {
			return "", ""
		}
		category = spec[:open]
		attr := spec[open+1 : end]
		return strings.TrimSpace(category), strings.TrimSpace(nodeAttr(n, attr))
	}
	return strings.TrimSpace(category), collapseSpace(nodeText(n))
}

func nodeAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// nodeText gathers the text of n's subtree. Element boundaries become
// spaces so text from adjacent siblings cannot fuse into one word;
// collapseSpace folds the extra runs back down.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
			if c.Type == html.ElementNode {
				sb.WriteByte(' ')
			}
		}
	}
	walk(n)
	return sb.String()
}

func findElement(n *html.Node, tag string) *html.Node {
	var result *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if result != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == tag {
			result = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return result
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
