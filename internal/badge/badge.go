// internal/badge/badge.go
package badge

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localesFS embed.FS

var (
	loadOnce sync.Once
	loadErr  error
	bundle   *catalogBundle
)

type catalogBundle struct {
	tags    []language.Tag
	dict    map[language.Tag]map[string]string
	matcher language.Matcher
}

// fallback is the first tag handed to the matcher and wins when nothing else does.
var fallback = language.English

func load() (*catalogBundle, error) {
	loadOnce.Do(func() {
		files, err := localesFS.ReadDir("locales")
		if err != nil {
			loadErr = err
			return
		}
		b := &catalogBundle{
			tags: []language.Tag{fallback},
			dict: map[language.Tag]map[string]string{},
		}
		for _, file := range files {
			name := file.Name()
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			tag, err := language.Parse(strings.TrimSuffix(name, ".json"))
			if err != nil {
				loadErr = fmt.Errorf("bad locale file name %s: %w", name, err)
				return
			}
			raw, err := localesFS.ReadFile("locales/" + name)
			if err != nil {
				loadErr = err
				return
			}
			var m map[string]string
			if err := json.Unmarshal(raw, &m); err != nil {
				loadErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			b.dict[tag] = m
			if tag != fallback {
				b.tags = append(b.tags, tag)
			}
		}
		b.matcher = language.NewMatcher(b.tags)
		bundle = b
	})
	return bundle, loadErr
}

// T returns the translation of key for lang, falling back to English and
// finally to the key itself.
func T(lang, key string) string {
	b, err := load()
	if err != nil {
		return key
	}
	want, err := language.Parse(lang)
	if err != nil {
		want = fallback
	}
	_, idx, _ := b.matcher.Match(want)
	if v, ok := b.dict[b.tags[idx]][key]; ok {
		return v
	}
	if v, ok := b.dict[fallback][key]; ok {
		return v
	}
	return key
}

// OriginalMark renders the "original content" label, or nothing when the
// page is not original.
func OriginalMark(original bool, lang string) template.HTML {
	if !original {
		return ""
	}
	return template.HTML(`<span class="origin">` + template.HTMLEscapeString(T(lang, "origin")) + `</span>`)
}

// Funcs exposes the badge to page templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"originalMark": OriginalMark,
	}
}
