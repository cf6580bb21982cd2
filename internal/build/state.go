package build

import (
	"sync"

	"github.com/sovrium/sovrium/internal/assets"
	"github.com/sovrium/sovrium/internal/config"
	"github.com/sovrium/sovrium/internal/render"
	"github.com/sovrium/sovrium/internal/routes"
	"github.com/sovrium/sovrium/internal/schema"
)

// BuildState carries mutable state across stages of one build invocation.
type BuildState struct {
	App  *schema.App
	Opts config.Options

	// Routes is committed by the resolve stage and read-only afterwards.
	Routes []routes.Route
	// Documents maps output path -> rendered, base-path-rewritten HTML. Built
	// in memory by the render stage so a render failure never leaves partial
	// HTML on disk.
	Documents map[string]string

	Report *BuildReport

	renderer *render.Renderer
	rewriter *assets.Rewriter

	// warnMu guards report warning appends from concurrent render workers.
	warnMu sync.Mutex
}

func newBuildState(app *schema.App, opts config.Options, report *BuildReport) *BuildState {
	return &BuildState{
		App:       app,
		Opts:      opts,
		Documents: make(map[string]string),
		Report:    report,
	}
}

// warn appends a recoverable warning to the report; safe from any goroutine.
func (bs *BuildState) warn(msg string) {
	bs.warnMu.Lock()
	defer bs.warnMu.Unlock()
	bs.Report.Warnings = append(bs.Report.Warnings, msg)
}
