// internal/site/app.go
package site

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Locale holds per-locale settings keyed by its root path.
type Locale struct {
	Lang string `yaml:"lang"`
}

// Locales maps locale roots ("/", "/zh/") to their settings.
type Locales map[string]Locale

// Resolve returns the longest locale root that prefixes p. "/" is the
// fallback even when it is not configured.
func (l Locales) Resolve(p string) string {
	best := "/"
	for root := range l {
		if strings.HasPrefix(p, root) && len(root) > len(best) {
			best = root
		}
	}
	return best
}

// Lang returns the language of the locale root, "en" when unknown.
func (l Locales) Lang(root string) string {
	if loc, ok := l[root]; ok && loc.Lang != "" {
		return loc.Lang
	}
	return "en"
}

// Roots returns the configured locale roots in sorted order.
func (l Locales) Roots() []string {
	roots := make([]string, 0, len(l))
	for root := range l {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots
}

// Factory constructs new pages for the host.
type Factory interface {
	CreatePage(ctx context.Context, opts Options) (*Page, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(ctx context.Context, opts Options) (*Page, error)

func (f FactoryFunc) CreatePage(ctx context.Context, opts Options) (*Page, error) {
	return f(ctx, opts)
}

// App owns the page collection that plugins read and extend.
type App struct {
	Pages   []*Page
	Locales Locales
	Debug   bool
	Logger  *zap.Logger
	Factory Factory
}

// NewApp creates an empty application. A nil logger is replaced with a no-op
// logger and a nil factory with the default one.
func NewApp(locales Locales, factory Factory, logger *zap.Logger, debug bool) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if locales == nil {
		locales = Locales{"/": {Lang: "en"}}
	}
	app := &App{
		Locales: locales,
		Debug:   debug,
		Logger:  logger,
		Factory: factory,
	}
	if app.Factory == nil {
		app.Factory = DefaultFactory(locales)
	}
	return app
}

// CreatePage builds a page through the configured factory. The page is not
// added to the collection.
func (a *App) CreatePage(ctx context.Context, opts Options) (*Page, error) {
	f := a.Factory
	if f == nil {
		f = DefaultFactory(a.Locales)
	}
	return f.CreatePage(ctx, opts)
}

// HasPage reports whether a page with exactly this path exists.
func (a *App) HasPage(p string) bool {
	for _, page := range a.Pages {
		if page.Path == p {
			return true
		}
	}
	return false
}

// DefaultFactory creates pages straight from their options without touching
// the filesystem.
func DefaultFactory(locales Locales) Factory {
	return FactoryFunc(func(ctx context.Context, opts Options) (*Page, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return NewPage(locales, opts), nil
	})
}

// NewPage fills in the derived fields of a page from its options.
func NewPage(locales Locales, opts Options) *Page {
	fm := opts.Frontmatter
	if fm == nil {
		fm = map[string]any{}
	}
	root := locales.Resolve(opts.Path)
	lang := stringField(fm, "lang")
	if lang == "" {
		lang = locales.Lang(root)
	}
	return &Page{
		Path:        opts.Path,
		PathLocale:  root,
		Title:       stringField(fm, "title"),
		Lang:        lang,
		Draft:       boolField(fm, "draft"),
		Original:    boolField(fm, "original"),
		Frontmatter: fm,
		Content:     opts.Content,
		RouteMeta:   map[string]any{},
	}
}
