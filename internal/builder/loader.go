// internal/builder/loader.go
package builder

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"folio/internal/config"
	"folio/internal/site"

	"github.com/adrg/frontmatter"
	"go.uber.org/zap"
)

// LoadPages reads every markdown or html file under contentDir into a new
// app. Drafts are dropped unless they are exception pages.
func LoadPages(contentDir string, cfg config.SiteConfig, logger *zap.Logger, debug bool) (*site.App, error) {
	app := site.NewApp(cfg.Locales, nil, logger, debug)

	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(d.Name())
		if ext != ".html" && ext != ".md" {
			return nil
		}

		contentBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}
		if !utf8.Valid(contentBytes) {
			return fmt.Errorf("content file is not valid UTF-8: %s", path)
		}

		fm := map[string]any{}
		body, err := frontmatter.Parse(bytes.NewReader(contentBytes), &fm)
		if err != nil {
			return fmt.Errorf("failed to parse front matter in %s: %w", path, err)
		}

		relPath, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		page := site.NewPage(app.Locales, site.Options{
			Frontmatter: fm,
			Content:     string(body),
			Path:        site.URLPath(filepath.ToSlash(relPath)),
		})
		page.SourceFile = path

		if page.Draft && !isExceptionPage(strings.TrimSuffix(filepath.ToSlash(relPath), ext)) {
			app.Logger.Debug("Skipping draft", zap.String("file", path))
			return nil
		}
		if app.HasPage(page.Path) {
			return fmt.Errorf("%s: page path %s is already taken", path, page.Path)
		}
		app.Pages = append(app.Pages, page)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(app.Pages, func(i, j int) bool {
		return app.Pages[i].Path < app.Pages[j].Path
	})
	return app, nil
}

// isExceptionPage checks for pages that should not be considered drafts.
func isExceptionPage(slug string) bool {
	switch strings.ToLower(slug) {
	case "index", "readme", "about", "404":
		return true
	}
	return false
}
