// Package deploy post-processes a completed output tree with deployment
// target artifacts: sitemap.xml, robots.txt, and the GitHub Pages marker
// files. It runs strictly after rendering and asset copying; every path and
// URL it emits comes from the already-committed route list, never from its
// own recomputation.
package deploy

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sovrium/sovrium/internal/config"
	"github.com/sovrium/sovrium/internal/errors"
	"github.com/sovrium/sovrium/internal/routes"
)

// Finalizer writes deployment artifacts for one build.
type Finalizer struct {
	opts config.Options
	now  nowFunc
}

// NewFinalizer builds a finalizer for the given options.
func NewFinalizer(opts config.Options) *Finalizer {
	return &Finalizer{opts: opts, now: time.Now}
}

// Finalize writes all artifacts the deployment target calls for and returns
// the names of the files created.
func (f *Finalizer) Finalize(outputDir string, rts []routes.Route) ([]string, error) {
	var artifacts []string

	if f.opts.GenerateSitemap {
		if err := f.writeSitemap(outputDir, rts); err != nil {
			return artifacts, errors.DeployArtifactError("sitemap.xml", err)
		}
		artifacts = append(artifacts, "sitemap.xml")
	}

	if f.opts.GenerateRobotsTxt {
		if err := f.writeRobots(outputDir, rts); err != nil {
			return artifacts, errors.DeployArtifactError("robots.txt", err)
		}
		artifacts = append(artifacts, "robots.txt")
	}

	if f.opts.DeploymentTarget() == config.TargetGitHubPages {
		if err := os.WriteFile(filepath.Join(outputDir, ".nojekyll"), nil, 0644); err != nil {
			return artifacts, errors.DeployArtifactError(".nojekyll", err)
		}
		artifacts = append(artifacts, ".nojekyll")

		if host := f.opts.Host(); host != "" && !strings.HasSuffix(host, ".github.io") {
			if err := os.WriteFile(filepath.Join(outputDir, "CNAME"), []byte(host+"\n"), 0644); err != nil {
				return artifacts, errors.DeployArtifactError("CNAME", err)
			}
			artifacts = append(artifacts, "CNAME")
		}
	}

	return artifacts, nil
}
