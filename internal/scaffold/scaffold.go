// internal/scaffold/scaffold.go
package scaffold

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"folio/internal/config"
)

var slugRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// CreateNewSite writes a starter site into name. The sample content has no
// directory indexes so the first build shows generated catalogs.
func CreateNewSite(name string, out io.Writer) error {
	if _, err := os.Stat(filepath.Join(name, "site.yaml")); err == nil {
		return fmt.Errorf("%s already contains a site.yaml", name)
	}
	fmt.Fprintln(out, "Scaffolding new site in:", name)

	dirs := []string{"content", "static/css", "templates/simple", "archetypes"}
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(name, dir), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		"site.yaml":                               siteYamlContent,
		"static/css/style.css":                    staticCssContent,
		"templates/simple/layout.html":            templateLayoutHtmlContent,
		"templates/simple/header.html":            templateHeaderHtmlContent,
		"templates/simple/footer.html":            templateFooterHtmlContent,
		"archetypes/default.md":                   archetypeDefaultMdContent,
		"content/README.md":                       contentHomeContent,
		"content/guide/basics/getting-started.md": contentGettingStartedContent,
		"content/guide/basics/configuration.md":   contentConfigurationContent,
		"content/zh/README.md":                    contentZhHomeContent,
		"content/zh/guide/intro.md":               contentZhIntroContent,
	}
	for path, content := range files {
		full := filepath.Join(name, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
	}
	fmt.Fprintln(out, "Site scaffolded. You can now:")
	fmt.Fprintln(out, "  cd", name)
	fmt.Fprintln(out, "  folio serve")
	return nil
}

// Slug turns a title into a file name: "Hello, World" becomes "hello-world".
func Slug(title string) string {
	return strings.Trim(slugRegex.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

// CreateNewContent renders the default archetype into content/<kind>/<slug>.md
// and returns the path it wrote.
func CreateNewContent(kind, title, configPath string) (string, error) {
	slug := Slug(title)
	if slug == "" {
		return "", fmt.Errorf("title %q does not produce a usable file name", title)
	}
	site, err := config.LoadSiteConfig(configPath)
	if err != nil {
		return "", err
	}
	root := filepath.Dir(configPath)

	path := filepath.Join(root, "content", filepath.FromSlash(kind), slug+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	archetypePath := filepath.Join(root, "archetypes", "default.md")
	tmplBytes, err := os.ReadFile(archetypePath)
	if err != nil {
		return "", fmt.Errorf("could not read archetype file %s: %w", archetypePath, err)
	}
	tmpl, err := template.New("archetype").Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse archetype file %s: %w", archetypePath, err)
	}

	data := struct {
		Title  string
		Author string
	}{
		Title:  title,
		Author: site.Author,
	}
	var output bytes.Buffer
	if err := tmpl.Execute(&output, data); err != nil {
		return "", fmt.Errorf("failed to execute archetype template: %w", err)
	}
	if err := os.WriteFile(path, output.Bytes(), 0644); err != nil {
		return "", err
	}
	return path, nil
}

const siteYamlContent = `title: My Notes
author: Your Name
baseurl: /
description: A new site powered by folio.
template: simple
locales:
  "/":
    lang: en
  "/zh/":
    lang: zh
catalog:
  component: AutoCatalog
  iconComponent: Icon
  level: 3
  index: false
  exclude: []
  frontmatter:
    - match: ^/zh/
      values:
        description: 目录
`

const archetypeDefaultMdContent = `---
title: "{{.Title}}"
author: "{{.Author}}"
description:
icon:
order:
original: true
draft: true
---

Write something meaningful here.
`

const contentHomeContent = `---
title: Home
---

Welcome. Browse the [guide](guide/README.md).
`

const contentGettingStartedContent = `---
title: Getting Started
icon: rocket
order: 1
original: true
---

Install folio and run ` + "`folio serve`" + `.
`

const contentConfigurationContent = `---
title: Configuration
icon: gear
order: 2
---

Everything lives in ` + "`site.yaml`" + `.
`

const contentZhHomeContent = `---
title: 首页
---

欢迎。
`

const contentZhIntroContent = `---
title: 介绍
original: true
---

这是一个示例页面。
`

const staticCssContent = `body {
  font-family: sans-serif;
  max-width: 700px;
  margin: 2em auto;
  padding: 0 1em;
  line-height: 1.6;
  color: #222;
  background: #fdfdfd;
}
header { display: flex; justify-content: space-between; margin-bottom: 2em; color: #777; }
main { margin-bottom: 3em; }
footer { text-align: center; font-size: 0.9em; color: #555; }
.origin { font-size: 0.75em; border: 1px solid #3eaf7c; color: #3eaf7c; border-radius: 3px; padding: 0 0.4em; margin-left: 0.5em; }
.catalog-list { list-style: none; padding-left: 1em; }
.catalog-item { margin: 0.25em 0; }
.catalog-index { color: #999; margin-right: 0.25em; }
.icon::before { content: "\2022"; margin-right: 0.4em; color: #3eaf7c; }
`

const templateLayoutHtmlContent = `{{ define "main" }}
<!DOCTYPE html>
<html lang="{{ .Lang }}">
<head>
  <meta charset="utf-8">
  <title>{{ .Title }} | {{ .Site.Title }}</title>
  <link rel="stylesheet" href="{{ .BaseHref }}css/style.css">
  <meta name="description" content="{{ .Description }}">
</head>
<body>
  {{ template "header" . }}
  <main>
    <h1>{{ .Title }}{{ originalMark .Original .Lang }}</h1>
    {{ .Content }}
  </main>
  {{ template "footer" . }}
</body>
</html>
{{ end }}`

const templateHeaderHtmlContent = `{{ define "header" }}
<header>
  <div class="site-name">{{ .Site.Title }}</div>
  {{ if .Author }}<div class="site-author">{{ .Author }}</div>{{ end }}
</header>
{{ end }}`

const templateFooterHtmlContent = `{{ define "footer" }}
<footer>
  <nav>
    <a href="{{ .BaseHref }}index.html">home</a>
  </nav>
  <div class="copyright">
    &copy; {{ .Site.Title }}
  </div>
</footer>
{{ end }}`
