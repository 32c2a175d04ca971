package config

import (
	"os"
	"path/filepath"
	"testing"

	"folio/internal/site"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `title: Docs
author: Someone
template: simple
locales:
  "/":
    lang: en
  "/zh/":
    lang: zh
catalog:
  component: AutoCatalog
  iconComponent: HopeIcon
  level: 2
  index: true
  exclude:
    - ^/drafts/
  frontmatter:
    - match: ^/zh/
      values:
        title: 目录
    - match: .*
      values:
        sidebar: false
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "Docs", cfg.Title)
	assert.Equal(t, "zh", cfg.Locales.Lang("/zh/"))

	opts := cfg.Catalog.CatalogOptions()
	assert.Equal(t, "AutoCatalog", opts.Component)
	assert.Equal(t, "HopeIcon", opts.IconComponent)
	assert.Equal(t, 2, opts.Level)
	assert.True(t, opts.Index)
	require.Len(t, opts.Exclude, 1)
	assert.True(t, opts.Exclude[0].MatchString("/drafts/a/"))

	assert.Equal(t, map[string]any{"title": "目录"}, opts.Frontmatter("/zh/guide/"))
	assert.Equal(t, map[string]any{"sidebar": false}, opts.Frontmatter("/guide/"))
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse([]byte("title: x\n"))
	require.NoError(t, err)
	assert.Equal(t, site.Locales{"/": {Lang: "en"}}, cfg.Locales)
	opts := cfg.Catalog.CatalogOptions()
	assert.Empty(t, opts.Component)
	assert.Empty(t, opts.Exclude)
	assert.Empty(t, opts.Frontmatter("/a/"))
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse([]byte("catalog:\n  exclude: ['(']\n"))
	assert.ErrorContains(t, err, "invalid catalog exclude pattern")

	_, err = Parse([]byte("locales:\n  zh:\n    lang: zh\n"))
	assert.ErrorContains(t, err, "must start and end with /")
}

func TestGettersReadFrontmatter(t *testing.T) {
	opts := CatalogConfig{}.CatalogOptions()
	p := &site.Page{Frontmatter: map[string]any{"icon": "book", "index": false, "order": 3}}
	assert.Equal(t, "book", opts.IconGetter(p))
	require.NotNil(t, opts.ShouldIndex(p))
	assert.False(t, *opts.ShouldIndex(p))
	order, ok := opts.OrderGetter(p)
	assert.True(t, ok)
	assert.Equal(t, float64(3), order)

	empty := &site.Page{Frontmatter: map[string]any{"order": "first"}}
	assert.Empty(t, opts.IconGetter(empty))
	assert.Nil(t, opts.ShouldIndex(empty))
	_, ok = opts.OrderGetter(empty)
	assert.False(t, ok)
}

func TestLoadSiteConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0644))

	cfg, err := LoadSiteConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Someone", cfg.Author)

	_, err = LoadSiteConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
