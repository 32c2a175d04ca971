// internal/builder/render.go
package builder

import (
	"bytes"
	"fmt"

	"folio/internal/catalog"
	"folio/internal/listing"
	"folio/internal/site"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var (
	markdownRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(newMDLinkTransformer(), 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	htmlSanitizer = newSanitizer()
)

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// catalog listings and the origin badge are styled by class
	p.AllowAttrs("class").Globally()
	p.AllowDataAttributes()
	return p
}

// processContent expands catalog components, renders the markdown body and
// sanitizes the result unless unsafe output was requested.
func processContent(app *site.App, page *site.Page, component string, keys catalog.Keys, opts BuildOptions) (string, error) {
	body, err := listing.Expand(page.Content, app.Pages, page, component, keys)
	if err != nil {
		return "", fmt.Errorf("failed to render catalog: %w", err)
	}

	var htmlBuffer bytes.Buffer
	if err := markdownRenderer.Convert([]byte(body), &htmlBuffer); err != nil {
		return "", fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}

	if !opts.Unsafe {
		return string(htmlSanitizer.SanitizeBytes(htmlBuffer.Bytes())), nil
	}
	return htmlBuffer.String(), nil
}
