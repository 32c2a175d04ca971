// internal/site/page.go
package site

import (
	"path"
	"strings"
)

// Page is a routable content unit. Pages loaded from disk carry a SourceFile;
// synthetic pages (catalogs) do not.
type Page struct {
	Path        string // e.g. "/guide/intro.html" or "/guide/"
	PathLocale  string // locale root, e.g. "/" or "/zh/"
	Title       string
	Lang        string
	Draft       bool
	Original    bool
	Frontmatter map[string]any
	Content     string
	RouteMeta   map[string]any
	SourceFile  string
}

// Options describes a page to be created by a Factory.
type Options struct {
	Frontmatter map[string]any
	Content     string
	Path        string
}

// IsDir reports whether the page is a directory index.
func (p *Page) IsDir() bool {
	return strings.HasSuffix(p.Path, "/")
}

// URLPath maps a content-relative file such as "guide/intro.md" to its page
// path. README and index files stand for their directory.
func URLPath(rel string) string {
	rel = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(rel, "\\", "/")), "/")
	dir, file := path.Split(rel)
	ext := path.Ext(file)
	name := strings.TrimSuffix(file, ext)
	switch strings.ToLower(name) {
	case "readme", "index":
		return "/" + dir
	}
	return "/" + dir + name + ".html"
}

// OutputFile maps a page path to the file it is written to, relative to the
// output directory and using forward slashes.
func OutputFile(pagePath string) string {
	p := strings.TrimPrefix(pagePath, "/")
	if p == "" || strings.HasSuffix(p, "/") {
		return p + "index.html"
	}
	return p
}

// BaseHref returns the relative prefix leading from a page back to the site
// root, so that "/posts/a/b.html" and "/posts/a/" both get "../../".
func BaseHref(pagePath string) string {
	out := OutputFile(pagePath)
	depth := strings.Count(out, "/")
	return strings.Repeat("../", depth)
}

func stringField(fm map[string]any, key string) string {
	if v, ok := fm[key].(string); ok {
		return v
	}
	return ""
}

func boolField(fm map[string]any, key string) bool {
	v, _ := fm[key].(bool)
	return v
}
