// internal/catalog/generate.go
package catalog

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"folio/internal/site"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var lastSegmentRegex = regexp.MustCompile(`/(?:[^/]+/?)$`)

// parent strips the last segment of a page path: "/a/b/c.html" and "/a/b/"
// both become "/a/".
func parent(p string) string {
	return lastSegmentRegex.ReplaceAllString(p, "/")
}

// Discover walks every page path up to its locale root and returns, in sorted
// order, the directories that need a generated catalog page. Returned paths
// are percent-decoded and are compared against existing pages in that form.
// The locale root itself is never returned.
func Discover(app *site.App, opts Options) []string {
	existing := make(map[string]struct{}, len(app.Pages))
	for _, page := range app.Pages {
		existing[page.Path] = struct{}{}
		existing[decodeURI(page.Path)] = struct{}{}
	}
	pending := map[string]struct{}{}

	for _, page := range app.Pages {
		current := page.Path
		for current != page.PathLocale {
			next := parent(current)
			if next == current || next == page.PathLocale || !strings.HasPrefix(next, page.PathLocale) {
				break
			}
			current = next
			decoded := decodeURI(current)

			if _, seen := pending[decoded]; seen {
				continue
			}
			if opts.excluded(current) || opts.excluded(decoded) {
				continue
			}
			if _, ok := existing[decoded]; ok {
				continue
			}
			if app.Debug && app.Logger != nil {
				app.Logger.Info("Generating catalog", zap.String("path", decoded))
			}
			pending[decoded] = struct{}{}
		}
	}

	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Generate creates a catalog page for every directory returned by Discover
// and appends them to the app. Pages are created concurrently; if any
// creation fails nothing is appended.
func Generate(ctx context.Context, app *site.App, opts Options) ([]*site.Page, error) {
	paths := Discover(app, opts)
	if len(paths) == 0 {
		return nil, nil
	}
	content := Content(opts)
	created := make([]*site.Page, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			fm := map[string]any{"title": TitleFromFilename(basename(p))}
			for k, v := range opts.frontmatter(p) {
				fm[k] = v
			}
			page, err := app.CreatePage(gctx, site.Options{
				Frontmatter: fm,
				Content:     content,
				Path:        p,
			})
			if err != nil {
				return fmt.Errorf("failed to create catalog page %s: %w", p, err)
			}
			created[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	app.Pages = append(app.Pages, created...)
	return created, nil
}

// uriReserved lists the characters decodeURI keeps escaped.
const uriReserved = ";/?:@&=+$,#"

// decodeURI undoes percent-escaping except for reserved characters, so
// "/caf%C3%A9/" becomes "/café/" while "/a%2Fb/" stays one segment. The
// input is returned unchanged when it holds a malformed escape or the
// result is not valid UTF-8.
func decodeURI(p string) string {
	if !strings.Contains(p, "%") {
		return p
	}
	var b strings.Builder
	b.Grow(len(p))
	for i := 0; i < len(p); i++ {
		if p[i] != '%' {
			b.WriteByte(p[i])
			continue
		}
		if i+2 >= len(p) {
			return p
		}
		v, err := strconv.ParseUint(p[i+1:i+3], 16, 8)
		if err != nil {
			return p
		}
		if v < utf8.RuneSelf && strings.IndexByte(uriReserved, byte(v)) >= 0 {
			b.WriteString(p[i : i+3])
		} else {
			b.WriteByte(byte(v))
		}
		i += 2
	}
	out := b.String()
	if !utf8.ValidString(out) {
		return p
	}
	return out
}

// Content renders the body shared by every generated catalog page.
func Content(opts Options) string {
	component := opts.component()
	var b strings.Builder
	b.WriteString("<" + component)
	if level := opts.level(); level == 1 || level == 2 {
		fmt.Fprintf(&b, ` :level="%d"`, level)
	}
	if opts.Index {
		b.WriteString(" index")
	}
	b.WriteString(">")
	if opts.IconComponent != "" {
		b.WriteString("\n  <template #icon=\"{ icon }\">\n")
		fmt.Fprintf(&b, "    <%s :icon=\"icon\" />\n", opts.IconComponent)
		b.WriteString("  </template>\n")
	}
	b.WriteString("</" + component + ">\n")
	return b.String()
}
