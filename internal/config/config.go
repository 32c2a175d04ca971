// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"regexp"

	"folio/internal/catalog"
	"folio/internal/site"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds the configuration from the site.yaml file.
type SiteConfig struct {
	Title       string        `yaml:"title"`
	Author      string        `yaml:"author"`
	BaseURL     string        `yaml:"baseurl"`
	Description string        `yaml:"description"`
	Template    string        `yaml:"template"`
	Locales     site.Locales  `yaml:"locales"`
	Catalog     CatalogConfig `yaml:"catalog"`
}

// CatalogConfig configures catalog generation and route meta injection.
type CatalogConfig struct {
	Component     string            `yaml:"component"`
	IconComponent string            `yaml:"iconComponent"`
	Level         int               `yaml:"level"`
	Index         bool              `yaml:"index"`
	Exclude       []string          `yaml:"exclude"`
	Frontmatter   []FrontmatterRule `yaml:"frontmatter"`
	TitleKey      string            `yaml:"titleKey"`
	IconKey       string            `yaml:"iconKey"`
	IndexKey      string            `yaml:"indexKey"`
	OrderKey      string            `yaml:"orderKey"`

	exclude     []*regexp.Regexp
	frontmatter []*regexp.Regexp
}

// FrontmatterRule sets front matter on generated catalog pages whose path
// matches Match. The first matching rule wins.
type FrontmatterRule struct {
	Match  string         `yaml:"match"`
	Values map[string]any `yaml:"values"`
}

// LoadSiteConfig reads and validates site.yaml.
func LoadSiteConfig(path string) (SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("could not read config file at %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a site config and compiles its patterns.
func Parse(data []byte) (SiteConfig, error) {
	cfg := SiteConfig{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, err
	}
	if len(cfg.Locales) == 0 {
		cfg.Locales = site.Locales{"/": {Lang: "en"}}
	}
	for root := range cfg.Locales {
		if len(root) == 0 || root[0] != '/' || root[len(root)-1] != '/' {
			return SiteConfig{}, fmt.Errorf("locale root %q must start and end with /", root)
		}
	}
	if err := cfg.Catalog.compile(); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

func (c *CatalogConfig) compile() error {
	c.exclude = c.exclude[:0]
	for _, pattern := range c.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid catalog exclude pattern %q: %w", pattern, err)
		}
		c.exclude = append(c.exclude, re)
	}
	c.frontmatter = c.frontmatter[:0]
	for _, rule := range c.Frontmatter {
		re, err := regexp.Compile(rule.Match)
		if err != nil {
			return fmt.Errorf("invalid catalog frontmatter pattern %q: %w", rule.Match, err)
		}
		c.frontmatter = append(c.frontmatter, re)
	}
	return nil
}

// CatalogOptions builds plugin options whose getters read page front matter:
// "icon" (string), "index" (bool) and "order" (number).
func (c CatalogConfig) CatalogOptions() catalog.Options {
	return catalog.Options{
		Component:     c.Component,
		IconComponent: c.IconComponent,
		Level:         c.Level,
		Index:         c.Index,
		Exclude:       c.exclude,
		Frontmatter:   c.frontmatterFor,
		IconGetter: func(p *site.Page) string {
			icon, _ := p.Frontmatter["icon"].(string)
			return icon
		},
		ShouldIndex: func(p *site.Page) *bool {
			if v, ok := p.Frontmatter["index"].(bool); ok {
				return &v
			}
			return nil
		},
		OrderGetter: func(p *site.Page) (float64, bool) {
			switch v := p.Frontmatter["order"].(type) {
			case int:
				return float64(v), true
			case int64:
				return float64(v), true
			case uint64:
				return float64(v), true
			case float64:
				return v, true
			}
			return 0, false
		},
		TitleKey: c.TitleKey,
		IconKey:  c.IconKey,
		IndexKey: c.IndexKey,
		OrderKey: c.OrderKey,
	}
}

func (c CatalogConfig) frontmatterFor(path string) map[string]any {
	for i, re := range c.frontmatter {
		if re.MatchString(path) {
			values := make(map[string]any, len(c.Frontmatter[i].Values))
			for k, v := range c.Frontmatter[i].Values {
				values[k] = v
			}
			return values
		}
	}
	return map[string]any{}
}
