// internal/builder/goldmark_extensions.go
package builder

import (
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// mdLinkTransformer rewrites relative links to markdown sources so they
// point at the rendered pages.
type mdLinkTransformer struct{}

func newMDLinkTransformer() parser.ASTTransformer {
	return &mdLinkTransformer{}
}

func (t *mdLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		link.Destination = []byte(rewriteLink(string(link.Destination)))
		return ast.WalkContinue, nil
	})
}

// rewriteLink maps "guide/intro.md#setup" to "guide/intro.html#setup" and
// "guide/README.md" to "guide/index.html". Absolute URLs are left alone.
func rewriteLink(dest string) string {
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return dest
	}
	target, fragment, hasFragment := strings.Cut(dest, "#")
	if !strings.HasSuffix(target, ".md") {
		return dest
	}

	dir, file := path.Split(target)
	switch strings.ToLower(strings.TrimSuffix(file, ".md")) {
	case "readme", "index":
		target = dir + "index.html"
	default:
		target = strings.TrimSuffix(target, ".md") + ".html"
	}
	if hasFragment {
		return target + "#" + fragment
	}
	return target
}
