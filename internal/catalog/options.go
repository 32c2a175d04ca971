// internal/catalog/options.go
package catalog

import (
	"regexp"

	"folio/internal/site"
)

// Default route meta keys written by InjectInformation.
const (
	DefaultTitleKey = "title"
	DefaultIconKey  = "i"
	DefaultIndexKey = "I"
	DefaultOrderKey = "O"

	DefaultComponent = "AutoCatalog"
	DefaultLevel     = 3
)

// Options configures both the catalog generator and the metadata annotator.
// Every getter is optional; a nil getter leaves its field out.
type Options struct {
	Component     string
	IconComponent string
	Level         int
	Index         bool
	Exclude       []*regexp.Regexp
	Frontmatter   func(path string) map[string]any

	TitleGetter func(*site.Page) string
	IconGetter  func(*site.Page) string
	ShouldIndex func(*site.Page) *bool
	OrderGetter func(*site.Page) (float64, bool)

	TitleKey string
	IconKey  string
	IndexKey string
	OrderKey string
}

// Keys holds the resolved route meta keys.
type Keys struct {
	Title string
	Icon  string
	Index string
	Order string
}

// Keys returns the configured route meta keys with defaults filled in.
func (o Options) Keys() Keys {
	k := Keys{
		Title: o.TitleKey,
		Icon:  o.IconKey,
		Index: o.IndexKey,
		Order: o.OrderKey,
	}
	if k.Title == "" {
		k.Title = DefaultTitleKey
	}
	if k.Icon == "" {
		k.Icon = DefaultIconKey
	}
	if k.Index == "" {
		k.Index = DefaultIndexKey
	}
	if k.Order == "" {
		k.Order = DefaultOrderKey
	}
	return k
}

func (o Options) component() string {
	if o.Component == "" {
		return DefaultComponent
	}
	return o.Component
}

func (o Options) level() int {
	if o.Level == 0 {
		return DefaultLevel
	}
	return o.Level
}

func (o Options) excluded(p string) bool {
	for _, re := range o.Exclude {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

func (o Options) frontmatter(p string) map[string]any {
	if o.Frontmatter == nil {
		return nil
	}
	return o.Frontmatter(p)
}
