package sprokkel

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the site configuration file looked up in the site root.
const ConfigFileName = "sprokkel.toml"

// Config is the sprokkel.toml site configuration.
type Config struct {
	// BaseURL is the absolute URL the site deploys under.
	BaseURL string `toml:"base-url"`
	// BaseURLDevelop overrides BaseURL for develop builds.
	BaseURLDevelop string `toml:"base-url-develop"`
	Links          LinksConfig `toml:"links"`
}

// LinksConfig controls how page URLs are written.
type LinksConfig struct {
	// TrimIndexHTML drops the trailing index.html from generated URLs,
	// leaving directory-style links. Defaults to true.
	TrimIndexHTML *bool `toml:"trim-index-html"`
}

// LoadConfig reads the site configuration file. A missing file yields the
// zero configuration; a malformed one is an error.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %s", ErrConfig, undecoded[0])
	}
	return cfg, nil
}

// Ctx is the resolved site context: the base URL in effect and the URL
// style, shared by every URL the build writes.
type Ctx struct {
	baseURL       string
	trimIndexHTML bool
	Develop       bool
}

// NewCtx resolves the configuration for a production or develop build.
func NewCtx(cfg Config, develop bool) *Ctx {
	baseURL := cfg.BaseURL
	if develop && cfg.BaseURLDevelop != "" {
		baseURL = cfg.BaseURLDevelop
	}
	trim := true
	if cfg.Links.TrimIndexHTML != nil {
		trim = *cfg.Links.TrimIndexHTML
	}
	return &Ctx{
		baseURL:       strings.TrimRight(baseURL, "/"),
		trimIndexHTML: trim,
		Develop:       develop,
	}
}

// BaseURL returns the base URL in effect, without a trailing slash.
func (c *Ctx) BaseURL() string {
	return c.baseURL
}

// AbsoluteURL turns a site-relative output path into an absolute URL,
// trimming the trailing index.html when the site is configured for
// directory-style links.
func (c *Ctx) AbsoluteURL(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if c.trimIndexHTML {
		if rel == "index.html" {
			rel = ""
		} else if strings.HasSuffix(rel, "/index.html") {
			rel = strings.TrimSuffix(rel, "index.html")
		}
	}
	return c.baseURL + "/" + rel
}
