// internal/catalog/title.go
package catalog

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	separatorRegex = regexp.MustCompile(`[-_\s]+`)
	basenameRegex  = regexp.MustCompile(`/([^/]+)/?$`)
	knownExts      = []string{".md", ".html", ".htm"}
)

// TitleFromFilename turns a file or directory name into a readable title:
// "getting-started.md" becomes "Getting Started".
func TitleFromFilename(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range knownExts {
		if strings.HasSuffix(lower, ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}
	name = strings.TrimSpace(separatorRegex.ReplaceAllString(name, " "))
	// a Caser holds state, so each call gets its own
	return cases.Title(language.Und, cases.NoLower).String(name)
}

// basename returns the last segment of a page path, or "" when there is none.
func basename(p string) string {
	m := basenameRegex.FindStringSubmatch(p)
	if m == nil {
		return ""
	}
	return m[1]
}
