// internal/builder/models.go
package builder

import (
	"html/template"

	"folio/internal/config"
)

// PageData is the struct passed to templates. Front matter is available
// through `.Params`.
type PageData struct {
	Content     template.HTML
	Title       string
	Path        string
	BaseHref    string
	Author      string
	Description string
	Lang        string
	Original    bool
	Catalog     bool // generated directory listing
	Site        config.SiteConfig
	Params      map[string]any
}
