// internal/listing/listing.go
package listing

import (
	"bytes"
	"html/template"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"folio/internal/catalog"
	"folio/internal/site"
)

var (
	levelAttrRegex = regexp.MustCompile(`:level="(\d+)"`)
	indexAttrRegex = regexp.MustCompile(`(?:^|\s)index(?:\s|=|$)`)
	parentRegex    = regexp.MustCompile(`/(?:[^/]+/?)$`)
)

// listTemplate is kept free of blank lines: its output is embedded in
// markdown as a single HTML block.
var listTemplate = template.Must(template.New("catalog").Parse(
	`{{define "entries"}}<ul class="catalog-list">{{range .}}<li class="catalog-item">` +
		`{{if .Number}}<span class="catalog-index">{{.Number}}.</span> {{end}}` +
		`{{if .Icon}}<span class="icon" data-icon="{{.Icon}}"></span>{{end}}` +
		`<a href="{{.Href}}">{{.Title}}</a>` +
		`{{if .Children}}{{template "entries" .Children}}{{end}}</li>{{end}}</ul>{{end}}` +
		`<div class="catalog">{{if .}}{{template "entries" .}}{{end}}</div>`,
))

// Tag is a catalog component found in a page body.
type Tag struct {
	Level int
	Index bool
	Icon  bool
}

// Entry is one listed page.
type Entry struct {
	Path     string
	Href     string
	Title    string
	Icon     string
	Number   string
	Children []*Entry

	order    float64
	hasOrder bool
}

func tagRegex(component string) *regexp.Regexp {
	name := regexp.QuoteMeta(component)
	return regexp.MustCompile(`(?s)<` + name + `((?:\s+[^\s>]+)*)\s*>(.*?)</` + name + `>`)
}

// Parse finds the first catalog component tag in body.
func Parse(body, component string) (Tag, bool) {
	m := tagRegex(component).FindStringSubmatch(body)
	if m == nil {
		return Tag{}, false
	}
	return parseTag(m[1], m[2]), true
}

func parseTag(attrs, inner string) Tag {
	tag := Tag{Level: catalog.DefaultLevel}
	if m := levelAttrRegex.FindStringSubmatch(attrs); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 3 {
			tag.Level = n
		}
	}
	tag.Index = indexAttrRegex.MatchString(attrs)
	tag.Icon = strings.Contains(inner, "#icon")
	return tag
}

// Expand replaces every catalog component tag in the body of page with a
// rendered listing of the pages beneath it.
func Expand(body string, pages []*site.Page, page *site.Page, component string, keys catalog.Keys) (string, error) {
	re := tagRegex(component)
	if !re.MatchString(body) {
		return body, nil
	}
	root := page.Path
	if !page.IsDir() {
		root = parentRegex.ReplaceAllString(root, "/")
	}
	baseHref := site.BaseHref(page.Path)

	var renderErr error
	out := re.ReplaceAllStringFunc(body, func(match string) string {
		m := re.FindStringSubmatch(match)
		tag := parseTag(m[1], m[2])
		entries := Build(pages, page.PathLocale, root, tag, keys)
		html, err := Render(entries, baseHref)
		if err != nil {
			renderErr = err
			return match
		}
		return html
	})
	if renderErr != nil {
		return "", renderErr
	}
	return out, nil
}

// Build collects the pages below root within one locale, nested up to
// tag.Level directory levels. Pages whose index meta is 0 are left out.
func Build(pages []*site.Page, locale, root string, tag Tag, keys catalog.Keys) []*Entry {
	type candidate struct {
		page  *site.Page
		depth int
	}
	var candidates []candidate
	for _, p := range pages {
		if p.PathLocale != locale || p.Path == root || !strings.HasPrefix(p.Path, root) {
			continue
		}
		if hidden(p, keys) {
			continue
		}
		rel := strings.TrimSuffix(strings.TrimPrefix(p.Path, root), "/")
		depth := strings.Count(rel, "/") + 1
		if depth > tag.Level {
			continue
		}
		candidates = append(candidates, candidate{page: p, depth: depth})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].depth < candidates[j].depth
	})

	byPath := make(map[string]*Entry, len(candidates))
	var top []*Entry
	for _, c := range candidates {
		e := newEntry(c.page, tag, keys)
		byPath[c.page.Path] = e

		attached := false
		for anc := parentRegex.ReplaceAllString(c.page.Path, "/"); anc != root && strings.HasPrefix(anc, root); anc = parentRegex.ReplaceAllString(anc, "/") {
			if parent, ok := byPath[anc]; ok {
				parent.Children = append(parent.Children, e)
				attached = true
				break
			}
		}
		if !attached {
			top = append(top, e)
		}
	}

	sortEntries(top)
	if tag.Index {
		number(top, "")
	}
	return top
}

// Render turns entries into the catalog HTML. Hrefs are made relative using
// baseHref.
func Render(entries []*Entry, baseHref string) (string, error) {
	setHrefs(entries, baseHref)
	var buf bytes.Buffer
	if err := listTemplate.Execute(&buf, entries); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func newEntry(p *site.Page, tag Tag, keys catalog.Keys) *Entry {
	e := &Entry{Path: p.Path}
	if title, ok := p.RouteMeta[keys.Title].(string); ok && title != "" {
		e.Title = title
	} else if p.Title != "" {
		e.Title = p.Title
	} else {
		e.Title = catalog.TitleFromFilename(lastSegment(p.Path))
	}
	if tag.Icon {
		e.Icon, _ = p.RouteMeta[keys.Icon].(string)
	}
	e.order, e.hasOrder = numeric(p.RouteMeta[keys.Order])
	return e
}

func hidden(p *site.Page, keys catalog.Keys) bool {
	v, ok := numeric(p.RouteMeta[keys.Index])
	return ok && v == 0
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func lastSegment(p string) string {
	p = strings.TrimSuffix(p, "/")
	return p[strings.LastIndex(p, "/")+1:]
}

// sortEntries orders entries with an explicit order first, ascending, then
// the rest by path.
func sortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.hasOrder != b.hasOrder {
			return a.hasOrder
		}
		if a.hasOrder && a.order != b.order {
			return a.order < b.order
		}
		return a.Path < b.Path
	})
	for _, e := range entries {
		sortEntries(e.Children)
	}
}

func number(entries []*Entry, prefix string) {
	for i, e := range entries {
		e.Number = prefix + strconv.Itoa(i+1)
		number(e.Children, e.Number+".")
	}
}

func setHrefs(entries []*Entry, baseHref string) {
	for _, e := range entries {
		e.Href = baseHref + site.OutputFile(e.Path)
		setHrefs(e.Children, baseHref)
	}
}
