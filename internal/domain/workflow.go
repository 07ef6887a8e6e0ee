package domain

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"tally.dev/pkg/tally/internal/adapter"
	"tally.dev/pkg/tally/internal/controller"
	m "tally.dev/pkg/tally/internal/model"
)

// RenderArgs contains the arguments for rendering recorded runs.
type RenderArgs struct {
	Runs      []m.Path
	OutputDir m.Path
	Title     string
	Parallel  int
}

// ViewArgs contains the arguments for browsing a recorded run.
type ViewArgs struct {
	Run   m.Path
	Title string
}

// Workflow orchestrates loading recorded runs, replaying them through a
// report sink, and presenting the results.
type Workflow interface {
	Render(ctx context.Context, args RenderArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	store adapter.RunStore
	ui    controller.UI
	out   io.Writer
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(store adapter.RunStore, ui controller.UI, out io.Writer) Workflow {
	return &workflow{store: store, ui: ui, out: out}
}

type renderResult struct {
	name    string
	summary m.RunSummary
}

// Render loads each recorded run, replays it through a Sink (which writes
// {output}/index.html), and prints a summary table per run. Runs are
// rendered concurrently, bounded by args.Parallel.
func (w *workflow) Render(ctx context.Context, args RenderArgs) error {
	if len(args.Runs) == 0 {
		return fmt.Errorf("no run files to render")
	}

	parallel := args.Parallel
	if parallel < 1 {
		parallel = 1
	}

	results := make([]renderResult, len(args.Runs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, runPath := range args.Runs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			summary, err := w.renderOne(runPath, args)
			if err != nil {
				return err
			}

			results[i] = renderResult{name: runName(runPath, len(args.Runs) > 1), summary: summary}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Display after the group finishes so concurrent renders never
	// interleave their output.
	for _, result := range results {
		if err := w.ui.DisplaySummary(result.name, result.summary); err != nil {
			return err
		}
	}

	return nil
}

func (w *workflow) renderOne(runPath m.Path, args RenderArgs) (m.RunSummary, error) {
	run, err := w.store.LoadRun(runPath)
	if err != nil {
		return m.RunSummary{}, fmt.Errorf("load run %s: %w", runPath, err)
	}

	outputDir := string(args.OutputDir)
	if len(args.Runs) > 1 {
		outputDir = filepath.Join(outputDir, runName(runPath, true))
	}

	title := args.Title
	if run.Title != "" {
		title = run.Title
	}

	sink := NewSink(SinkOptions{
		OutputDir: outputDir,
		Title:     title,
		Out:       w.out,
		Now:       func() time.Time { return run.EndTime },
	})

	sink.OnRunStart(m.RunConfig{Title: title, StartTime: run.StartTime})

	for _, record := range run.Records {
		sink.OnTestComplete(record.Descriptor(), record.Outcome())
	}

	sink.OnRunEnd(run.OverallStatus)

	return Summarize(sink.Records(), run.StartTime, run.EndTime, run.OverallStatus), nil
}

// View loads a recorded run and opens the results browser over it.
func (w *workflow) View(_ context.Context, args ViewArgs) error {
	run, err := w.store.LoadRun(args.Run)
	if err != nil {
		return fmt.Errorf("load run %s: %w", args.Run, err)
	}

	title := args.Title
	if run.Title != "" {
		title = run.Title
	}

	summary := Summarize(run.Records, run.StartTime, run.EndTime, run.OverallStatus)

	return w.ui.Browse(title, summary, run.Records)
}

// runName derives a per-run directory name from the run file when several
// runs are rendered into the same output directory.
func runName(runPath m.Path, multi bool) string {
	if !multi {
		return ""
	}

	base := filepath.Base(string(runPath))

	return strings.TrimSuffix(base, filepath.Ext(base))
}
