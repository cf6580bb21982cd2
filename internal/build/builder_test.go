package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovrium/sovrium/internal/config"
	sovriumerrors "github.com/sovrium/sovrium/internal/errors"
	"github.com/sovrium/sovrium/internal/schema"
)

func testApp() *schema.App {
	return &schema.App{
		Name:        "demo",
		Description: "A demo application",
		Version:     "1.2.0",
		Languages: schema.Languages{
			Default: "en",
			Supported: []schema.Language{
				{Code: "en", Label: "English"},
				{Code: "fr", Label: "Français"},
			},
			Translations: map[string]map[string]string{
				"en": {"home.title": "Welcome"},
				"fr": {"home.title": "Bienvenue"},
			},
		},
		Pages: []schema.Page{
			{Name: "home", Path: "/", Meta: schema.Meta{Title: "$t:home.title"}},
			{Name: "about", Path: "/about", Meta: schema.Meta{Title: "About"}},
			{Name: "draft", Path: "/_drafts/wip"},
			{Name: "private", Path: "/private", Meta: schema.Meta{Noindex: true}},
		},
	}
}

func testOptions(t *testing.T) config.Options {
	t.Helper()
	return config.Options{
		OutputDir:         filepath.Join(t.TempDir(), "dist"),
		BaseURL:           "https://example.com",
		GenerateSitemap:   true,
		GenerateRobotsTxt: true,
	}
}

func runBuild(t *testing.T, app *schema.App, opts config.Options) *BuildReport {
	t.Helper()
	report, err := NewBuilder(app, opts, nil).Build(context.Background())
	require.NoError(t, err)
	return report
}

func TestBuildWritesAllPages(t *testing.T) {
	opts := testOptions(t)
	report := runBuild(t, testApp(), opts)

	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.Equal(t, 6, report.Pages) // 3 non-excluded pages x 2 languages

	for _, p := range []string{
		"en/index.html", "fr/index.html",
		"en/about.html", "fr/about.html",
		"en/private.html", "fr/private.html",
		"assets/output.css",
		"sitemap.xml", "robots.txt",
	} {
		if _, err := os.Stat(filepath.Join(opts.OutputDir, filepath.FromSlash(p))); err != nil {
			t.Errorf("expected output file %s: %v", p, err)
		}
	}

	// Excluded pages leave no trace anywhere.
	for _, p := range []string{"en/_drafts/wip.html", "fr/_drafts/wip.html"} {
		_, err := os.Stat(filepath.Join(opts.OutputDir, filepath.FromSlash(p)))
		assert.True(t, os.IsNotExist(err), "excluded page %s must not exist", p)
	}
}

func TestBuildRemovesIncompleteMarker(t *testing.T) {
	opts := testOptions(t)
	runBuild(t, testApp(), opts)

	_, err := os.Stat(filepath.Join(opts.OutputDir, incompleteMarker))
	assert.True(t, os.IsNotExist(err), "marker must be removed after a complete build")
}

func TestBuildTranslationsPerLanguage(t *testing.T) {
	opts := testOptions(t)
	runBuild(t, testApp(), opts)

	en, err := os.ReadFile(filepath.Join(opts.OutputDir, "en", "index.html"))
	require.NoError(t, err)
	fr, err := os.ReadFile(filepath.Join(opts.OutputDir, "fr", "index.html"))
	require.NoError(t, err)

	assert.Contains(t, string(en), "<title>Welcome</title>")
	assert.Contains(t, string(fr), "<title>Bienvenue</title>")
}

func TestBuildMissingTranslationWarns(t *testing.T) {
	app := testApp()
	app.Pages[1].Meta.Title = "$t:nonexistent.key"
	opts := testOptions(t)

	report := runBuild(t, app, opts)

	assert.Equal(t, OutcomeWarning, report.Outcome)
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "nonexistent.key") {
			found = true
		}
	}
	assert.True(t, found, "warnings should name the missing key, got %v", report.Warnings)
}

func TestBuildBasePathRewriting(t *testing.T) {
	opts := testOptions(t)
	opts.BaseURL = "https://user.github.io/repo"
	opts.BasePath = "/repo"
	report := runBuild(t, testApp(), opts)
	require.Equal(t, OutcomeSuccess, report.Outcome)

	doc, err := os.ReadFile(filepath.Join(opts.OutputDir, "en", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), `href="/repo/assets/output.css"`)
	assert.NotContains(t, string(doc), `href="/assets/output.css"`)
}

func TestBuildCopiesPublicAssetsByteExact(t *testing.T) {
	public := t.TempDir()
	payload := []byte("\x89PNG\r\n\x1a\nnot really a png")
	require.NoError(t, os.MkdirAll(filepath.Join(public, "img"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "img", "logo.png"), payload, 0644))

	opts := testOptions(t)
	opts.PublicDir = public
	report := runBuild(t, testApp(), opts)

	assert.Equal(t, 1, report.Assets)
	got, err := os.ReadFile(filepath.Join(opts.OutputDir, "img", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestBuildIdempotent(t *testing.T) {
	app := testApp()
	opts := testOptions(t)

	runBuild(t, app, opts)
	first, err := os.ReadFile(filepath.Join(opts.OutputDir, "en", "about.html"))
	require.NoError(t, err)

	runBuild(t, app, opts)
	second, err := os.ReadFile(filepath.Join(opts.OutputDir, "en", "about.html"))
	require.NoError(t, err)

	assert.Equal(t, first, second, "rebuilding an unchanged schema must be byte-identical")
}

func TestBuildRouteCollisionAborts(t *testing.T) {
	app := testApp()
	app.Pages = append(app.Pages, schema.Page{Name: "about-dup", Path: "/about"})
	opts := testOptions(t)

	report, err := NewBuilder(app, opts, nil).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRouteResolution))
	assert.Equal(t, OutcomeFailed, report.Outcome)

	// Route resolution fails before anything touches the filesystem.
	_, statErr := os.Stat(opts.OutputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewBuilder(testApp(), testOptions(t), nil).Build(ctx)
	require.Error(t, err)
	assert.Equal(t, OutcomeCanceled, report.Outcome)

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageErrorCanceled, se.Kind)
}

func TestBuildReportStageDurations(t *testing.T) {
	report := runBuild(t, testApp(), testOptions(t))

	for _, stage := range []string{"resolve_routes", "render_pages", "write_pages", "finalize_deploy"} {
		if _, ok := report.StageDurations[stage]; !ok {
			t.Errorf("report missing duration for stage %s", stage)
		}
	}
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.End.Before(report.Start))
}

func TestBuildReportPersist(t *testing.T) {
	report := runBuild(t, testApp(), testOptions(t))

	path := filepath.Join(t.TempDir(), "reports", "build.json")
	require.NoError(t, report.Persist(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, report.ID)
	assert.Contains(t, s, `"outcome": "success"`)
}

func TestBuildRouteCollisionIdentifiesPages(t *testing.T) {
	app := testApp()
	app.Pages = append(app.Pages, schema.Page{Name: "about-dup", Path: "/about"})

	_, err := NewBuilder(app, testOptions(t), nil).Build(context.Background())
	require.Error(t, err)

	// The failure names both the colliding output path and the pages, and
	// keeps its route classification through the stage wrappers.
	assert.Contains(t, err.Error(), "about.html")
	assert.Contains(t, err.Error(), "about-dup")
	assert.Equal(t, 3, sovriumerrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestBuildRenderFailureWrappedOnce(t *testing.T) {
	app := testApp()
	app.Pages[0].Sections = []schema.Section{{Type: "no such tag"}}

	_, err := NewBuilder(app, testOptions(t), nil).Build(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1, strings.Count(err.Error(), "page rendering failed"))
	assert.Contains(t, err.Error(), "page=home")
	assert.Equal(t, 3, sovriumerrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}
