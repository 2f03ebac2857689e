// Package yaml provides the YAML-backed site configuration registry.
// Configurations are parsed once at process start; every entry is
// validated and defaulted at load time so consumers never see a
// partially-specified site.
package yaml

import (
	_ "embed"
	"os"
	"sort"
	"time"

	"github.com/vsalmi/tapio"
	"gopkg.in/yaml.v3"
)

//go:embed sites.yaml
var defaultConfig []byte

// Compile-time interface verification.
var _ tapio.SiteRegistry = (*Registry)(nil)

// Registry implements tapio.SiteRegistry over a YAML configuration file.
type Registry struct {
	sites map[string]*tapio.Site
	keys  []string
}

// file mirrors the on-disk configuration layout: a mapping keyed by site key.
type file struct {
	Sites map[string]*siteConfig `yaml:"sites"`
}

// siteConfig is the raw YAML shape of one site. Optional fields are
// pointers so that "omitted" can be told apart from zero values when
// applying defaults.
type siteConfig struct {
	BaseURL          string          `yaml:"base_url"`
	Description      string          `yaml:"description"`
	TitleSelector    string          `yaml:"title_selector"`
	ContentSelectors []string        `yaml:"content_selectors"`
	FallbackToBody   *bool           `yaml:"fallback_to_body"`
	RenderJS         bool            `yaml:"render_js"`
	Markdown         *markdownConfig `yaml:"markdown"`
	Crawl            *crawlConfig    `yaml:"crawl"`
}

type markdownConfig struct {
	IgnoreLinks  bool `yaml:"ignore_links"`
	IgnoreImages bool `yaml:"ignore_images"`
	IgnoreTables bool `yaml:"ignore_tables"`
	WrapWidth    int  `yaml:"wrap_width"`
}

type crawlConfig struct {
	Depth         *int     `yaml:"depth"`
	MaxConcurrent *int     `yaml:"max_concurrent"`
	DelaySeconds  *float64 `yaml:"delay_seconds"`
}

// NewRegistry parses a registry from raw YAML configuration data.
// It fails with EINVALID if any site is malformed, naming the offending
// site key, or if two site keys derive the same storage directory.
func NewRegistry(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, tapio.Errorf(tapio.EINVALID, "invalid site configuration YAML: %v", err)
	}
	if len(f.Sites) == 0 {
		return nil, tapio.Errorf(tapio.EINVALID, "site configuration defines no sites")
	}

	sites := make(map[string]*tapio.Site, len(f.Sites))
	keys := make([]string, 0, len(f.Sites))
	dirs := make(map[string]string)

	for key, raw := range f.Sites {
		if raw == nil {
			return nil, tapio.Errorf(tapio.EINVALID, "site %q: empty configuration", key)
		}

		site := resolve(key, raw)
		if err := site.Validate(); err != nil {
			return nil, err
		}

		dir, err := site.BaseDir()
		if err != nil {
			return nil, err
		}
		if other, ok := dirs[dir]; ok {
			return nil, tapio.Errorf(tapio.EINVALID,
				"sites %q and %q both derive storage directory %q", other, key, dir)
		}
		dirs[dir] = key

		sites[key] = site
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &Registry{sites: sites, keys: keys}, nil
}

// NewRegistryFromFile loads a registry from the given path.
// An empty path loads the embedded default configuration.
func NewRegistryFromFile(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(defaultConfig)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tapio.Errorf(tapio.EINVALID, "reading site configuration %s: %v", path, err)
	}
	return NewRegistry(data)
}

// resolve fills in documented defaults for every omitted optional field.
func resolve(key string, raw *siteConfig) *tapio.Site {
	site := &tapio.Site{
		Key:              key,
		BaseURL:          raw.BaseURL,
		Description:      raw.Description,
		TitleSelector:    raw.TitleSelector,
		ContentSelectors: raw.ContentSelectors,
		FallbackToBody:   true,
		RenderJS:         raw.RenderJS,
		Crawl: tapio.CrawlOptions{
			Depth:         tapio.DefaultCrawlDepth,
			MaxConcurrent: tapio.DefaultMaxConcurrent,
			RequestDelay:  tapio.DefaultRequestDelay,
		},
	}

	if site.TitleSelector == "" {
		site.TitleSelector = tapio.DefaultTitleSelector
	}
	if raw.FallbackToBody != nil {
		site.FallbackToBody = *raw.FallbackToBody
	}
	if raw.Markdown != nil {
		site.Markdown = tapio.MarkdownOptions{
			IgnoreLinks:  raw.Markdown.IgnoreLinks,
			IgnoreImages: raw.Markdown.IgnoreImages,
			IgnoreTables: raw.Markdown.IgnoreTables,
			WrapWidth:    raw.Markdown.WrapWidth,
		}
	}
	if raw.Crawl != nil {
		if raw.Crawl.Depth != nil {
			site.Crawl.Depth = *raw.Crawl.Depth
		}
		if raw.Crawl.MaxConcurrent != nil {
			site.Crawl.MaxConcurrent = *raw.Crawl.MaxConcurrent
		}
		if raw.Crawl.DelaySeconds != nil {
			site.Crawl.RequestDelay = time.Duration(*raw.Crawl.DelaySeconds * float64(time.Second))
		}
	}

	return site
}

// Site returns the configuration for the given key.
func (r *Registry) Site(key string) (*tapio.Site, error) {
	site, ok := r.sites[key]
	if !ok {
		return nil, tapio.Errorf(tapio.ENOTFOUND, "site %q not found in configuration", key)
	}
	return site, nil
}

// Sites returns all configured sites ordered by key.
func (r *Registry) Sites() []*tapio.Site {
	sites := make([]*tapio.Site, 0, len(r.keys))
	for _, key := range r.keys {
		sites = append(sites, r.sites[key])
	}
	return sites
}
