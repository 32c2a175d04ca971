// internal/builder/builder.go
package builder

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"folio/internal/badge"
	"folio/internal/catalog"
	"folio/internal/config"
	"folio/internal/site"

	"go.uber.org/zap"
)

type BuildOptions struct {
	CleanDestination bool
	Unsafe           bool
	Debug            bool
	Logger           *zap.Logger
}

func (o BuildOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// BuildSite loads the content tree, adds catalog pages for directories that
// have no index, annotates route meta, renders every page and copies static
// assets. It returns the number of pages written.
func BuildSite(ctx context.Context, outputDir, contentDir, staticDir string, cfg config.SiteConfig, tmpl *template.Template, opts BuildOptions) (int, error) {
	log := opts.logger()
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, err
	}

	if opts.CleanDestination {
		log.Debug("Cleaning destination directory", zap.String("dir", outputDir))
		entries, err := os.ReadDir(outputDir)
		if err != nil {
			return 0, err
		}
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(outputDir, entry.Name())); err != nil {
				return 0, err
			}
		}
	}

	app, err := PrepareSite(ctx, contentDir, cfg, opts)
	if err != nil {
		return 0, err
	}

	catalogOpts := cfg.Catalog.CatalogOptions()
	keys := catalogOpts.Keys()
	component := cfg.Catalog.Component
	if component == "" {
		component = catalog.DefaultComponent
	}

	pagesGenerated := 0
	for _, page := range app.Pages {
		htmlOut, err := processContent(app, page, component, keys, opts)
		if err != nil {
			return 0, fmt.Errorf("failed to process content for %s: %w", page.Path, err)
		}

		outputPath := filepath.Join(outputDir, filepath.FromSlash(site.OutputFile(page.Path)))
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return 0, err
		}

		description, _ := page.Frontmatter["description"].(string)
		if description == "" {
			description = cfg.Description
		}
		author, _ := page.Frontmatter["author"].(string)
		if author == "" {
			author = cfg.Author
		}

		pageData := PageData{
			Content:     template.HTML(htmlOut),
			Title:       page.Title,
			Path:        page.Path,
			BaseHref:    site.BaseHref(page.Path),
			Author:      author,
			Description: description,
			Lang:        page.Lang,
			Original:    page.Original,
			Catalog:     page.SourceFile == "",
			Site:        cfg,
			Params:      page.Frontmatter,
		}

		if err := renderPage(tmpl, outputPath, pageData); err != nil {
			return 0, fmt.Errorf("failed to render page %s: %w", page.Path, err)
		}
		pagesGenerated++
	}

	if err := copyStaticAssets(staticDir, outputDir); err != nil {
		return 0, err
	}
	return pagesGenerated, nil
}

// PrepareSite loads the pages and runs the catalog plugins over them without
// rendering anything.
func PrepareSite(ctx context.Context, contentDir string, cfg config.SiteConfig, opts BuildOptions) (*site.App, error) {
	log := opts.logger()
	app, err := LoadPages(contentDir, cfg, log, opts.Debug)
	if err != nil {
		return nil, err
	}

	catalogOpts := cfg.Catalog.CatalogOptions()
	created, err := catalog.Generate(ctx, app, catalogOpts)
	if err != nil {
		return nil, fmt.Errorf("catalog generation failed: %w", err)
	}
	log.Debug("Catalog pages generated", zap.Int("count", len(created)))

	catalog.InjectInformation(app, catalogOpts)
	return app, nil
}

// copyStaticAssets copies files from the static directory to the output directory.
func copyStaticAssets(staticDir, outputDir string) error {
	allowedExts := map[string]bool{
		".css": true, ".js": true, ".txt": true, ".svg": true, ".ico": true,
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
		".woff": true, ".woff2": true,
	}
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		return nil
	}
	return filepath.Walk(staticDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !allowedExts[filepath.Ext(info.Name())] {
			return nil
		}

		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(outputDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		dst, err := os.Create(dest)
		if err != nil {
			return err
		}
		defer dst.Close()
		_, err = io.Copy(dst, src)
		return err
	})
}

// renderPage executes the "main" template and writes the output to a file.
func renderPage(tmpl *template.Template, outPath string, data PageData) error {
	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	return tmpl.ExecuteTemplate(outFile, "main", data)
}

// LoadTemplates parses the layout and partials of a theme directory.
func LoadTemplates(templateDir, templateName string) (*template.Template, error) {
	path := filepath.Join(templateDir, templateName)
	return template.New("layout.html").Funcs(badge.Funcs()).ParseFiles(
		filepath.Join(path, "layout.html"),
		filepath.Join(path, "header.html"),
		filepath.Join(path, "footer.html"),
	)
}
