package build

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/sovrium/sovrium/internal/assets"
	"github.com/sovrium/sovrium/internal/config"
	"github.com/sovrium/sovrium/internal/deploy"
	"github.com/sovrium/sovrium/internal/errors"
	"github.com/sovrium/sovrium/internal/hydrate"
	"github.com/sovrium/sovrium/internal/i18n"
	"github.com/sovrium/sovrium/internal/metrics"
	"github.com/sovrium/sovrium/internal/render"
	"github.com/sovrium/sovrium/internal/routes"
	"github.com/sovrium/sovrium/internal/schema"
)

// incompleteMarker is written into the output directory before any content
// and removed as the final stage, so an aborted run is identifiable by the
// marker's presence.
const incompleteMarker = ".sovrium-incomplete"

// Builder runs the full generation pipeline for one validated application.
type Builder struct {
	app      *schema.App
	opts     config.Options
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewBuilder creates a builder with a no-op metrics recorder.
func NewBuilder(app *schema.App, opts config.Options, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		app:      app,
		opts:     opts,
		logger:   logger,
		recorder: metrics.NoopRecorder{},
	}
}

// SetRecorder injects a metrics recorder (e.g. Prometheus).
func (b *Builder) SetRecorder(r metrics.Recorder) {
	if r != nil {
		b.recorder = r
	}
}

// Build executes every stage in order and returns the build report. The
// report is populated even on failure so callers can inspect partial
// progress. The returned error is the first fatal stage error, nil when the
// build succeeded (possibly with warnings).
func (b *Builder) Build(ctx context.Context) (*BuildReport, error) {
	report := newBuildReport(b.opts.OutputDir)
	bs := newBuildState(b.app, b.opts, report)

	b.logger.Info("build starting",
		slog.String("build_id", report.ID),
		slog.String("app", b.app.Name),
		slog.String("output_dir", b.opts.OutputDir))

	stages := []namedStage{
		{"resolve_routes", b.stageResolveRoutes},
		{"prepare_output", b.stagePrepareOutput},
		{"render_pages", b.stageRenderPages},
		{"write_pages", b.stageWritePages},
		{"copy_assets", b.stageCopyAssets},
		{"emit_bundles", b.stageEmitBundles},
		{"verify_references", b.stageVerifyReferences},
		{"finalize_deploy", b.stageFinalizeDeploy},
		{"finish", b.stageFinish},
	}

	err := runStages(ctx, bs, b.recorder, stages)

	var se *StageError
	canceled := stderrors.As(err, &se) && se.Kind == StageErrorCanceled
	report.finish(canceled)

	b.recorder.ObserveBuildDuration(report.Duration())
	b.recorder.IncBuildOutcome(string(report.Outcome))

	log := b.logger.With(
		slog.String("build_id", report.ID),
		slog.String("outcome", string(report.Outcome)),
		slog.Duration("duration", report.Duration()),
		slog.Int("pages", report.Pages),
		slog.Int("assets", report.Assets))
	if err != nil {
		log.Error("build failed", slog.String("error", err.Error()))
	} else if len(report.Warnings) > 0 {
		log.Warn("build finished with warnings", slog.Int("warnings", len(report.Warnings)))
	} else {
		log.Info("build finished")
	}
	return report, err
}

func (b *Builder) stageResolveRoutes(ctx context.Context, bs *BuildState) error {
	rts, err := routes.Resolve(bs.App, bs.Opts)
	if err != nil {
		return newFatalStageError("resolve_routes", fmt.Errorf("%w: %w", ErrRouteResolution, err))
	}
	if len(rts) == 0 {
		bs.warn("no routes resolved, output will contain no pages")
	}
	bs.Routes = rts
	b.logger.Debug("routes resolved", slog.Int("count", len(rts)))
	return nil
}

func (b *Builder) stagePrepareOutput(ctx context.Context, bs *BuildState) error {
	if err := os.MkdirAll(bs.Opts.OutputDir, 0755); err != nil {
		return errors.OutputDirError("create", err)
	}
	marker := filepath.Join(bs.Opts.OutputDir, incompleteMarker)
	if err := os.WriteFile(marker, []byte(bs.Report.ID+"\n"), 0644); err != nil {
		return errors.OutputDirError("write marker", err)
	}
	return nil
}

// stageRenderPages renders every route into memory. Documents are committed
// to disk only in the next stage, so a render failure never leaves a
// partially written page behind.
func (b *Builder) stageRenderPages(ctx context.Context, bs *BuildState) error {
	catalog := i18n.NewCatalog(bs.App.Languages, func(key, lang string) {
		bs.warn(fmt.Sprintf("missing translation %q for language %q", key, lang))
		b.recorder.IncBuildWarning("missing_translation")
	})
	bs.renderer = render.New(bs.App, bs.Opts, catalog)
	bs.rewriter = assets.NewRewriter(bs.Opts.BasePath)

	workers := runtime.NumCPU()
	if workers > len(bs.Routes) {
		workers = len(bs.Routes)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan routes.Route)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		once     sync.Once
		firstErr error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rt := range jobs {
				// Render already classifies failures with the page name.
				doc, err := bs.renderer.Render(rt, bs.Routes)
				if err != nil {
					once.Do(func() { firstErr = err })
					continue
				}
				doc = bs.rewriter.Rewrite(doc)
				mu.Lock()
				bs.Documents[rt.OutputPath] = doc
				mu.Unlock()
			}
		}()
	}

feed:
	for _, rt := range bs.Routes {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- rt:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return newCanceledStageError("render_pages", err)
	}
	if firstErr != nil {
		return newFatalStageError("render_pages", fmt.Errorf("%w: %w", ErrRender, firstErr))
	}
	b.recorder.AddPagesRendered(len(bs.Documents))
	return nil
}

func (b *Builder) stageWritePages(ctx context.Context, bs *BuildState) error {
	paths := make([]string, 0, len(bs.Documents))
	for p := range bs.Documents {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		dst := filepath.Join(bs.Opts.OutputDir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return errors.OutputDirError("create page directory", err)
		}
		if err := os.WriteFile(dst, []byte(bs.Documents[p]), 0644); err != nil {
			return errors.OutputDirError("write page", err)
		}
	}
	bs.Report.Pages = len(paths)
	b.logger.Debug("pages written", slog.Int("count", len(paths)))
	return nil
}

func (b *Builder) stageCopyAssets(ctx context.Context, bs *BuildState) error {
	if bs.Opts.PublicDir == "" {
		return nil
	}
	if _, err := os.Stat(bs.Opts.PublicDir); err != nil {
		if os.IsNotExist(err) {
			bs.warn(fmt.Sprintf("public directory %q does not exist, skipping asset copy", bs.Opts.PublicDir))
			return nil
		}
		return newFatalStageError("copy_assets", fmt.Errorf("%w: %w", ErrAssets, err))
	}
	n, err := assets.CopyTree(ctx, bs.Opts.PublicDir, bs.Opts.OutputDir)
	if err != nil {
		if ctx.Err() != nil {
			return newCanceledStageError("copy_assets", ctx.Err())
		}
		return newFatalStageError("copy_assets", fmt.Errorf("%w: %w", ErrAssets, err))
	}
	bs.Report.Assets = n
	b.recorder.AddAssetsCopied(n)
	b.logger.Debug("assets copied", slog.Int("count", n))
	return nil
}

func (b *Builder) stageEmitBundles(ctx context.Context, bs *BuildState) error {
	if err := hydrate.WriteStylesheet(bs.Opts.OutputDir); err != nil {
		return newFatalStageError("emit_bundles", err)
	}
	if bs.Opts.Hydration {
		if err := hydrate.BundleClient(bs.Opts.ClientEntry, bs.Opts.OutputDir); err != nil {
			return newFatalStageError("emit_bundles", err)
		}
	}
	return nil
}

// stageVerifyReferences checks every rendered document's local references
// against the generated tree and the public directory. Dangling references
// are warnings, not failures.
func (b *Builder) stageVerifyReferences(ctx context.Context, bs *BuildState) error {
	generated := make(map[string]bool, len(bs.Documents)+2)
	for p := range bs.Documents {
		generated[p] = true
	}
	generated[path.Join("assets", "output.css")] = true
	if bs.Opts.Hydration {
		generated[path.Join("assets", "client.js")] = true
	}

	var dangling int
	for p, doc := range bs.Documents {
		missing, err := assets.MissingReferences(doc, bs.Opts.BasePath, bs.Opts.PublicDir, generated)
		if err != nil {
			return newWarnStageError("verify_references", err)
		}
		for _, ref := range missing {
			dangling++
			bs.warn(fmt.Sprintf("dangling reference %q in %s (<%s %s>)", ref.Path, p, ref.Tag, ref.Attribute))
			b.recorder.IncBuildWarning("missing_asset")
		}
	}
	if dangling > 0 {
		b.logger.Warn("dangling references found", slog.Int("count", dangling))
	}
	return nil
}

func (b *Builder) stageFinalizeDeploy(ctx context.Context, bs *BuildState) error {
	artifacts, err := deploy.NewFinalizer(bs.Opts).Finalize(bs.Opts.OutputDir, bs.Routes)
	if err != nil {
		return newFatalStageError("finalize_deploy", fmt.Errorf("%w: %w", ErrDeploy, err))
	}
	bs.Report.Artifacts = artifacts
	return nil
}

func (b *Builder) stageFinish(ctx context.Context, bs *BuildState) error {
	marker := filepath.Join(bs.Opts.OutputDir, incompleteMarker)
	if err := os.Remove(marker); err != nil && !os.IsNotExist(err) {
		return errors.OutputDirError("remove marker", err)
	}
	return nil
}
