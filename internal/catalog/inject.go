// internal/catalog/inject.go
package catalog

import "folio/internal/site"

// InjectInformation writes title, icon, index and order route meta for every
// page so the catalog component can list them. It does nothing unless a
// component is configured.
func InjectInformation(app *site.App, opts Options) {
	if opts.Component == "" {
		return
	}
	keys := opts.Keys()
	titleGetter := opts.TitleGetter
	if titleGetter == nil {
		titleGetter = func(p *site.Page) string { return p.Title }
	}

	for _, page := range app.Pages {
		data := map[string]any{}

		if title := titleGetter(page); title != "" {
			data[keys.Title] = title
		}
		if opts.IconGetter != nil {
			if icon := opts.IconGetter(page); icon != "" {
				data[keys.Icon] = icon
			}
		}
		if opts.ShouldIndex != nil {
			if index := opts.ShouldIndex(page); index != nil {
				if *index {
					data[keys.Index] = 1
				} else {
					data[keys.Index] = 0
				}
			}
		}
		if opts.OrderGetter != nil {
			if order, ok := opts.OrderGetter(page); ok {
				data[keys.Order] = order
			}
		}

		if page.RouteMeta == nil {
			page.RouteMeta = make(map[string]any, len(data))
		}
		for k, v := range data {
			page.RouteMeta[k] = v
		}
	}
}
