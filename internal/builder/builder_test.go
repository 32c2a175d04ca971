package builder

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLayout = `{{ define "main" }}<html lang="{{ .Lang }}"><head><title>{{ .Title }}</title></head><body>{{ template "header" . }}{{ if .Catalog }}<p>catalog</p>{{ end }}{{ originalMark .Original .Lang }}<main>{{ .Content }}</main>{{ template "footer" . }}</body></html>{{ end }}`

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func setupSite(t *testing.T) (string, config.SiteConfig) {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"templates/simple/layout.html":   testLayout,
		"templates/simple/header.html":   `{{ define "header" }}<header>{{ .Site.Title }}</header>{{ end }}`,
		"templates/simple/footer.html":   `{{ define "footer" }}<footer><a href="{{ .BaseHref }}index.html">home</a></footer>{{ end }}`,
		"static/css/style.css":           "body{}",
		"static/notes.bin":               "skip",
		"content/README.md":              "---\ntitle: Home\n---\n\nSee [setup](guide/basics/setup.md#install) and [guide](guide/README.md).\n",
		"content/guide/basics/setup.md":  "---\ntitle: Setup\nicon: gear\norder: 2\noriginal: true\n---\n\n# Setup\n",
		"content/guide/basics/usage.md":  "---\ntitle: Usage\norder: 1\n---\n\nUse it.\n",
		"content/guide/basics/secret.md": "---\ntitle: Secret\nindex: false\n---\n\nHidden.\n",
		"content/guide/wip.md":           "---\ntitle: WIP\ndraft: true\n---\n\nLater.\n",
		"content/private/notes/a.md":     "---\ntitle: A\n---\n",
		"content/zh/guide/intro.md":      "---\ntitle: 介绍\noriginal: true\n---\n\n你好\n",
	})

	cfg, err := config.Parse([]byte(`title: Test Site
author: Tester
template: simple
locales:
  "/": {lang: en}
  "/zh/": {lang: zh}
catalog:
  component: AutoCatalog
  iconComponent: Icon
  exclude: ["^/private/"]
`))
	require.NoError(t, err)
	return root, cfg
}

func TestBuildSite(t *testing.T) {
	root, cfg := setupSite(t)
	out := filepath.Join(root, "public")
	require.NoError(t, os.MkdirAll(out, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "stale.html"), []byte("old"), 0644))

	tmpl, err := LoadTemplates(filepath.Join(root, "templates"), cfg.Template)
	require.NoError(t, err)

	count, err := BuildSite(context.Background(), out, filepath.Join(root, "content"), filepath.Join(root, "static"), cfg, tmpl, BuildOptions{CleanDestination: true})
	require.NoError(t, err)
	// 6 real pages without the draft, plus /guide/, /guide/basics/, /zh/guide/
	assert.Equal(t, 9, count)

	assert.NoFileExists(t, filepath.Join(out, "stale.html"))
	assert.FileExists(t, filepath.Join(out, "css", "style.css"))
	assert.NoFileExists(t, filepath.Join(out, "notes.bin"))
	assert.NoFileExists(t, filepath.Join(out, "guide", "wip.html"))
	assert.NoFileExists(t, filepath.Join(out, "private", "index.html"))

	home := readFile(t, out, "index.html")
	assert.Contains(t, home, `href="guide/basics/setup.html#install"`)
	assert.Contains(t, home, `href="guide/index.html"`)

	basics := readFile(t, out, "guide/basics/index.html")
	assert.Contains(t, basics, "<title>Basics</title>")
	assert.Contains(t, basics, "<p>catalog</p>")
	assert.Contains(t, basics, `class="catalog"`)
	assert.Contains(t, basics, ">Usage</a>")
	assert.Contains(t, basics, ">Setup</a>")
	assert.Contains(t, basics, `data-icon="gear"`)
	assert.NotContains(t, basics, "Secret")
	assert.Less(t, strings.Index(basics, ">Usage</a>"), strings.Index(basics, ">Setup</a>"))

	guide := readFile(t, out, "guide/index.html")
	assert.Contains(t, guide, ">Basics</a>")
	assert.Contains(t, guide, `href="../guide/basics/index.html"`)

	setup := readFile(t, out, "guide/basics/setup.html")
	assert.Contains(t, setup, `<span class="origin">Original</span>`)
	assert.Contains(t, setup, `href="../../index.html"`)

	zh := readFile(t, out, "zh/guide/intro.html")
	assert.Contains(t, zh, `<span class="origin">原创</span>`)
	assert.FileExists(t, filepath.Join(out, "zh", "guide", "index.html"))
	assert.NoFileExists(t, filepath.Join(out, "zh", "index.html"))
}

func TestPrepareSiteAnnotatesRouteMeta(t *testing.T) {
	root, cfg := setupSite(t)
	app, err := PrepareSite(context.Background(), filepath.Join(root, "content"), cfg, BuildOptions{})
	require.NoError(t, err)

	meta := map[string]map[string]any{}
	for _, p := range app.Pages {
		meta[p.Path] = p.RouteMeta
	}
	assert.Equal(t, map[string]any{"title": "Setup", "i": "gear", "O": float64(2)}, meta["/guide/basics/setup.html"])
	assert.Equal(t, map[string]any{"title": "Secret", "I": 0}, meta["/guide/basics/secret.html"])
	assert.Equal(t, map[string]any{"title": "Basics"}, meta["/guide/basics/"])
}

func TestLoadPagesRejectsDuplicatePaths(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a/README.md": "one",
		"a/index.md":  "two",
	})
	cfg, err := config.Parse([]byte("title: x\n"))
	require.NoError(t, err)
	_, err = LoadPages(root, cfg, nil, false)
	assert.ErrorContains(t, err, "already taken")
}

func TestRewriteLink(t *testing.T) {
	assert.Equal(t, "a/b.html", rewriteLink("a/b.md"))
	assert.Equal(t, "a/index.html#x", rewriteLink("a/README.md#x"))
	assert.Equal(t, "../index.html", rewriteLink("../index.md"))
	assert.Equal(t, "https://example.com/x.md", rewriteLink("https://example.com/x.md"))
	assert.Equal(t, "#top", rewriteLink("#top"))
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}
