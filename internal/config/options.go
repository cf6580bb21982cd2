package config

import (
	"net/url"
	"strings"

	"github.com/sovrium/sovrium/internal/errors"
)

// Options is the generation options record handed to the build pipeline
// alongside the validated schema.
type Options struct {
	// PublicDir is the directory of static assets copied byte-for-byte into
	// the output root. Empty disables asset copying.
	PublicDir string `yaml:"public_dir,omitempty"`
	// OutputDir is the root the generated tree is written into.
	OutputDir string `yaml:"output_dir,omitempty"`
	// BaseURL is the absolute origin (plus optional subpath) the site is
	// served from, e.g. "https://example.com" or "https://user.github.io/repo".
	BaseURL string `yaml:"base_url,omitempty"`
	// BasePath is the subpath prefix applied to every generated root-absolute
	// reference. Derived from BaseURL when empty.
	BasePath string `yaml:"base_path,omitempty"`
	// Target selects the deployment profile ("github-pages" or "generic").
	Target string `yaml:"target,omitempty"`
	// Languages restricts generation to a subset of the schema's supported
	// language codes. Empty builds all of them.
	Languages []string `yaml:"languages,omitempty"`
	// DefaultLanguageInRoot emits the default language's routes unprefixed at
	// the output root instead of under its own <lang>/ directory.
	DefaultLanguageInRoot bool `yaml:"default_language_in_root,omitempty"`

	GenerateSitemap   bool `yaml:"generate_sitemap,omitempty"`
	GenerateRobotsTxt bool `yaml:"generate_robots_txt,omitempty"`

	// Hydration bundles the client entry script into assets/client.js.
	Hydration bool `yaml:"hydration,omitempty"`
	// ClientEntry is the entry point for the hydration bundle.
	ClientEntry string `yaml:"client_entry,omitempty"`
}

func (o *Options) applyDefaults() {
	if o.OutputDir == "" {
		o.OutputDir = "./dist"
	}
	if o.Target == "" {
		o.Target = string(TargetGeneric)
	}
	if o.BasePath == "" {
		o.BasePath = basePathFromURL(o.BaseURL)
	}
	o.BasePath = normalizeBasePath(o.BasePath)
	if o.Hydration && o.ClientEntry == "" {
		o.ClientEntry = "./client/index.js"
	}
}

// Validate checks option invariants the pipeline depends on.
func (o *Options) Validate() error {
	if _, err := deploymentTargets.NormalizeWithValidation(o.Target); err != nil {
		return errors.ValidationFailed("deployment.target", err.Error())
	}
	if o.BaseURL != "" {
		u, err := url.Parse(o.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.ValidationFailed("deployment.base_url", "must be an absolute URL")
		}
	}
	return nil
}

// DeploymentTarget returns the normalized target profile.
func (o *Options) DeploymentTarget() DeploymentTarget {
	return deploymentTargets.Normalize(o.Target)
}

// Host returns the bare hostname of BaseURL, or "" when unset/unparseable.
func (o *Options) Host() string {
	if o.BaseURL == "" {
		return ""
	}
	u, err := url.Parse(o.BaseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// basePathFromURL derives the subpath component of an absolute base URL, so
// "https://user.github.io/repo" yields "/repo".
func basePathFromURL(baseURL string) string {
	if baseURL == "" {
		return ""
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(u.Path, "/")
}

// normalizeBasePath guarantees a leading slash and no trailing slash; the
// empty base path stays empty.
func normalizeBasePath(p string) string {
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
