package catalog

import (
	"io"
	"path"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/agc2020/consulta/core"
)

// CSS classes of the catalog page contract. An act line is an
// <article class="ato-line"> whose title lives in an <h4 class="ato-title">;
// badge anchors inside the title carry a class with the "badge-" prefix and
// are not the main link.
const (
	classGroup       = "orgao-section"
	classSubGroup    = "ato-group"
	classLine        = "ato-line"
	classTitle       = "ato-title"
	classSummary     = "ato-ementa"
	classSource      = "ato-source"
	badgeClassPrefix = "badge-"
)

var (
	// "nº 123/2020", "no 4.657/1942" and similar number/year markers.
	yearMarkerRe = regexp.MustCompile(`[\d.]+\s*/\s*((?:19|20)\d{2})\b`)
	// "(2019)" or "[2019]".
	yearEnclosedRe = regexp.MustCompile(`[(\[]\s*((?:19|20)\d{2})\s*[)\]]`)
	// Any bare four-digit token starting with 19 or 20.
	yearBareRe = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
)

type typeLabel struct {
	folded  string
	actType core.ActType
}

// foldedTypeLabels pairs each classifiable act type with its folded label,
// preserving the most-specific-first order of core.ActTypesBySpecificity.
var foldedTypeLabels = func() []typeLabel {
	labels := make([]typeLabel, len(core.ActTypesBySpecificity))
	for i, t := range core.ActTypesBySpecificity {
		labels[i] = typeLabel{folded: Fold(string(t)), actType: t}
	}
	return labels
}()

// Extract parses the catalog HTML and returns the page tree plus one record
// per act line, in document order. It is meant to run exactly once per
// catalog load; records are immutable afterwards.
func Extract(r io.Reader) (*Page, []core.Ato, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, nil, err
	}

	page := &Page{}
	var records []core.Ato

	var walk func(n *html.Node, group *Group, sub *SubGroup)
	walk = func(n *html.Node, group *Group, sub *SubGroup) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "section" && hasClass(n, classGroup):
				group = &Group{Heading: headingText(n, "h2")}
				page.Groups = append(page.Groups, group)
				sub = nil
			case hasClass(n, classSubGroup):
				if group != nil {
					sub = &SubGroup{Heading: headingText(n, "h3")}
					group.SubGroups = append(group.SubGroups, sub)
				}
			case n.Data == "article" && hasClass(n, classLine):
				line := &Line{StableIndex: len(page.Lines), Group: group, SubGroup: sub}
				page.Lines = append(page.Lines, line)
				if group != nil {
					group.Lines = append(group.Lines, line)
				}
				if sub != nil {
					sub.Lines = append(sub.Lines, line)
				}
				records = append(records, extractLine(n, line, group))
				return // act lines do not nest
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, group, sub)
		}
	}
	walk(root, nil, nil)

	return page, records, nil
}

// extractLine derives one record from an act-line element. Missing
// sub-elements yield empty fields rather than errors.
func extractLine(n *html.Node, line *Line, group *Group) core.Ato {
	ato := core.Ato{StableIndex: line.StableIndex, Type: core.ActTypeOutro}

	if title := findByClass(n, classTitle); title != nil {
		if a := mainTitleAnchor(title); a != nil {
			ato.Title = collapseSpace(nodeText(a))
			ato.Slug = slugFromHref(nodeAttr(a, "href"))
		} else {
			ato.Title = collapseSpace(nodeText(title))
		}
	}

	if summary := findByClass(n, classSummary); summary != nil {
		ato.Summary = collapseSpace(nodeText(summary))
	}

	if source := findByClass(n, classSource); source != nil {
		if a := findElement(source, "a"); a != nil {
			ato.SourceURL = strings.TrimSpace(nodeAttr(a, "href"))
		}
	}

	if group != nil {
		ato.IssuingBody = CanonicalBody(group.Heading)
	}

	if ato.Title != "" {
		ato.Type = ClassifyType(ato.Title)
		ato.Year = ExtractYear(ato.Title)
	}

	return ato
}

// ClassifyType maps a title to its act type by testing the known labels,
// most specific first, against the folded title. No match yields "Outro".
func ClassifyType(title string) core.ActType {
	folded := Fold(title)
	for _, l := range foldedTypeLabels {
		if strings.Contains(folded, l.folded) {
			return l.actType
		}
	}
	return core.ActTypeOutro
}

// ExtractYear pulls the act year from a title. It prefers the year after a
// number/year marker ("nº 123/2020"), then an enclosed year ("(2019)"), and
// falls back to the first bare 19xx/20xx token. Returns "" when none apply.
func ExtractYear(title string) string {
	if m := yearMarkerRe.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	if m := yearEnclosedRe.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	if m := yearBareRe.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	return ""
}

// mainTitleAnchor returns the first anchor inside the title element that is
// not a badge link.
func mainTitleAnchor(title *html.Node) *html.Node {
	for _, a := range findElements(title, "a") {
		if !hasClassPrefix(a, badgeClassPrefix) {
			return a
		}
	}
	return nil
}

// slugFromHref derives the act slug from a catalog href such as
// "lei-13709-2018.html" or "/consulta/lei-13709-2018.html".
func slugFromHref(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base := path.Base(href)
	if !strings.HasSuffix(base, ".html") {
		return ""
	}
	return strings.TrimSuffix(base, ".html")
}

// headingText returns the text of the first heading of the given tag under n.
func headingText(n *html.Node, tag string) string {
	if h := findElement(n, tag); h != nil {
		return collapseSpace(nodeText(h))
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
