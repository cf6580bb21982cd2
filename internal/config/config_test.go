package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovrium/sovrium/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sovrium.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validDoc = `
app:
  name: Demo
  description: A demo app
  version: 1.2.0
  languages:
    default: en
    supported:
      - code: en
        locale: en-US
      - code: fr
        locale: fr-FR
  pages:
    - name: home
      path: /
      meta:
        title: Home
        priority: 1.0
        changefreq: daily
deployment:
  base_url: https://sovrium.com
  target: github-pages
  generate_sitemap: true
  generate_robots_txt: true
`

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validDoc))
	require.NoError(t, err)

	assert.Equal(t, "Demo", cfg.App.Name)
	assert.Equal(t, TargetGitHubPages, cfg.Deployment.DeploymentTarget())
	assert.Equal(t, "sovrium.com", cfg.Deployment.Host())
	assert.Equal(t, "./dist", cfg.Deployment.OutputDir)
	assert.True(t, cfg.Deployment.GenerateSitemap)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("SOVRIUM_TEST_ORIGIN", "https://env.example.com")
	doc := `
app:
  name: Demo
  pages:
    - name: home
      path: /
deployment:
  base_url: ${SOVRIUM_TEST_ORIGIN}
`
	cfg, err := Load(writeConfig(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Deployment.BaseURL)
}

func TestLoad_SchemaValidationFailure(t *testing.T) {
	doc := `
app:
  name: Demo
  languages:
    default: de
    supported:
      - code: en
  pages:
    - name: home
      path: /
`
	_, err := Load(writeConfig(t, doc))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategorySchema))
}

func TestOptions_BasePathDerivedFromBaseURL(t *testing.T) {
	o := Options{BaseURL: "https://user.github.io/myapp"}
	o.applyDefaults()
	assert.Equal(t, "/myapp", o.BasePath)

	o = Options{BaseURL: "https://sovrium.com"}
	o.applyDefaults()
	assert.Equal(t, "", o.BasePath)
}

func TestOptions_BasePathNormalized(t *testing.T) {
	o := Options{BasePath: "myapp/"}
	o.applyDefaults()
	assert.Equal(t, "/myapp", o.BasePath)
}

func TestOptions_Validate_BadTarget(t *testing.T) {
	o := Options{Target: "netlify"}
	err := o.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestOptions_Validate_BadBaseURL(t *testing.T) {
	o := Options{Target: "generic", BaseURL: "not-a-url"}
	require.Error(t, o.Validate())
}

func TestNormalizers(t *testing.T) {
	assert.Equal(t, TargetGitHubPages, deploymentTargets.Normalize(" GitHub-Pages "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("bogus"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
}

func TestInit_RefusesOverwrite(t *testing.T) {
	path := writeConfig(t, "app:\n  name: x\n")
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "My App", cfg.App.Name)
}

func TestLoad_RejectsInvalidLanguageTag(t *testing.T) {
	doc := `
app:
  name: Demo
  languages:
    default: "??"
    supported:
      - code: "??"
  pages:
    - name: home
      path: /
`
	_, err := Load(writeConfig(t, doc))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategorySchema))
}

func TestLoad_RejectsInvalidLocale(t *testing.T) {
	doc := `
app:
  name: Demo
  languages:
    default: en
    supported:
      - code: en
        locale: "not a locale"
  pages:
    - name: home
      path: /
`
	_, err := Load(writeConfig(t, doc))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategorySchema))
}
