// Package hydrate emits the bundled client script and the compiled stylesheet
// into the output's assets directory.
package hydrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/sovrium/sovrium/internal/errors"
)

// BundleClient bundles the entry script with esbuild and writes the minified
// result to assets/client.js under outputDir. Output names carry no content
// hash: the generated tree must be byte-identical across runs of an unchanged
// schema.
func BundleClient(entry, outputDir string) error {
	if _, err := os.Stat(entry); err != nil {
		return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "hydration entry script not found").
			WithContext("entry", entry)
	}

	result := api.Build(api.BuildOptions{
		EntryPoints:       []string{entry},
		Bundle:            true,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Engines: []api.Engine{
			{Name: api.EngineChrome, Version: "100"},
			{Name: api.EngineFirefox, Version: "100"},
			{Name: api.EngineSafari, Version: "15"},
			{Name: api.EngineEdge, Version: "100"},
		},
		Write: false,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Text)
		}
		return errors.New(errors.CategoryInternal, errors.SeverityFatal, "client bundle failed").
			WithContext("entry", entry).
			WithContext("errors", strings.Join(msgs, "; "))
	}
	if len(result.OutputFiles) == 0 {
		return fmt.Errorf("esbuild produced no output for %s", entry)
	}

	dst := filepath.Join(outputDir, "assets", "client.js")
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, result.OutputFiles[0].Contents, 0644)
}
