package driver

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"enumtable/internal/derive"
	"enumtable/internal/diag"
	"enumtable/internal/logging"
	"enumtable/internal/observ"
	"enumtable/internal/pipeline"
	"enumtable/internal/trace"
)

type loadedGroup struct {
	group Group
	pkgs  []*derive.Package
}

type task struct {
	pkg  *derive.Package
	name string
	opts derive.Options
}

func (t task) item() string { return t.pkg.PkgPath + "." + t.name }

// Generate loads the packages of every group, derives the requested types
// and writes (or checks) the output files. Problems with the input are
// reported to rep; the returned error is reserved for failures that stop
// the run, such as cancellation or a broken go toolchain.
func Generate(ctx context.Context, req Request, rep diag.Reporter) (*Result, error) {
	timer := req.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// Jobs report concurrently; dedup also folds diagnostics repeated by
	// overlapping groups.
	rep = diag.NewLockedReporter(diag.NewDedupReporter(rep))
	log := logging.L().With(zap.Int("jobs", jobs), zap.Bool("check", req.Check))

	ctx, span := trace.Start(ctx, trace.ScopeRun, "generate")
	defer span.End("")

	loaded, err := loadGroups(ctx, req, jobs, rep, timer)
	if err != nil {
		return nil, err
	}
	tasks := collectTasks(loaded, rep)
	log.Debug("loaded packages", zap.Int("groups", len(loaded)), zap.Int("types", len(tasks)))

	enums, err := analyzeAll(ctx, tasks, jobs, req, rep, timer)
	if err != nil {
		return nil, err
	}

	files := planFiles(enums, rep)
	outputs, err := writeAll(ctx, files, req, jobs, rep, timer)
	if err != nil {
		return nil, err
	}
	log.Info("generation finished",
		zap.Int("types", len(enums)),
		zap.Int("files", len(outputs)))
	return &Result{Outputs: outputs, Enums: enums}, nil
}

func loadGroups(ctx context.Context, req Request, jobs int, rep diag.Reporter, timer *observ.Timer) ([]loadedGroup, error) {
	idx := timer.Begin("load")
	ctx, span := trace.Start(ctx, trace.ScopePhase, "load")
	started := time.Now()
	pipeline.Emit(req.Progress, pipeline.Event{Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})

	results := make([]loadedGroup, len(req.Groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(req.Groups))))
	for i, grp := range req.Groups {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			pctx, pspan := trace.Start(gctx, trace.ScopePackage, strings.Join(grp.Patterns, " "))
			pkgs, err := derive.Load(pctx, derive.LoadConfig{Dir: req.Dir, Patterns: grp.Patterns, Tags: req.Tags}, rep)
			pspan.End(fmt.Sprintf("%d packages", len(pkgs)))
			if err != nil {
				return err
			}
			results[i] = loadedGroup{group: grp, pkgs: pkgs}
			timer.Count(idx, len(pkgs))
			return nil
		})
	}
	err := g.Wait()
	span.End("")
	timer.End(idx, "")
	req.Timings.Add(pipeline.StageLoad, time.Since(started))
	status := pipeline.StatusDone
	if err != nil {
		status = pipeline.StatusError
	}
	pipeline.Emit(req.Progress, pipeline.Event{Stage: pipeline.StageLoad, Status: status, Err: err, Elapsed: time.Since(started)})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// collectTasks pairs each requested type with the loaded packages that
// declare it. A type declared by none of a group's packages is an error;
// duplicates requested by several groups are derived once, with the
// options of the first.
func collectTasks(loaded []loadedGroup, rep diag.Reporter) []task {
	var tasks []task
	seen := make(map[string]bool)
	for _, lg := range loaded {
		if len(lg.pkgs) == 0 {
			continue
		}
		for _, name := range lg.group.Types {
			found := false
			for _, p := range lg.pkgs {
				if p.Types.Scope().Lookup(name) == nil {
					continue
				}
				found = true
				t := task{pkg: p, name: name, opts: lg.group.Options}
				if seen[t.item()] {
					continue
				}
				seen[t.item()] = true
				tasks = append(tasks, t)
			}
			if !found {
				if len(lg.pkgs) == 1 {
					// Analyze reports the not-found diagnostic itself.
					derive.Analyze(lg.pkgs[0], name, lg.group.Options, rep)
					continue
				}
				diag.ReportError(rep, diag.DeriveTypeNotFound, token.Position{Filename: lg.pkgs[0].Dir},
					fmt.Sprintf("type %s not found in any package matching %s", name, strings.Join(lg.group.Patterns, " "))).Emit()
			}
		}
	}
	return tasks
}

func analyzeAll(ctx context.Context, tasks []task, jobs int, req Request, rep diag.Reporter, timer *observ.Timer) ([]*derive.Enum, error) {
	sink := req.Progress
	idx := timer.Begin("analyze")
	defer timer.End(idx, "")
	ctx, span := trace.Start(ctx, trace.ScopePhase, "analyze")
	defer span.End("")

	results := make([]*derive.Enum, len(tasks))
	if len(tasks) == 0 {
		return nil, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(tasks)))
	for i, t := range tasks {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			started := time.Now()
			pipeline.Emit(sink, pipeline.Event{Item: t.item(), Stage: pipeline.StageAnalyze, Status: pipeline.StatusWorking})
			_, tspan := trace.Start(gctx, trace.ScopeType, "type:"+t.item())
			e := derive.Analyze(t.pkg, t.name, t.opts, rep)
			tspan.End("")
			req.Timings.Add(pipeline.StageAnalyze, time.Since(started))
			if e == nil {
				pipeline.Emit(sink, pipeline.Event{Item: t.item(), Stage: pipeline.StageAnalyze, Status: pipeline.StatusError, Elapsed: time.Since(started)})
				return nil
			}
			results[i] = e
			timer.Count(idx, 1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	enums := results[:0]
	for _, e := range results {
		if e != nil {
			enums = append(enums, e)
		}
	}
	return enums, nil
}

// planFiles plans each enumeration with its own options and merges the
// files that end up at the same path.
func planFiles(enums []*derive.Enum, rep diag.Reporter) []*derive.File {
	var files []*derive.File
	byPath := make(map[string]*derive.File)
	for _, e := range enums {
		opts := derive.Options{Output: e.Output, RuntimeImport: e.Runtime}
		for _, f := range derive.Plan([]*derive.Enum{e}, opts, rep) {
			prev, ok := byPath[f.Path]
			if !ok {
				byPath[f.Path] = f
				files = append(files, f)
				continue
			}
			if prev.PkgPath != f.PkgPath || prev.RuntimeImport != f.RuntimeImport {
				diag.ReportError(rep, diag.LoadMixedOutput, token.Position{Filename: f.Path},
					fmt.Sprintf("%s is requested with conflicting packages or runtimes", f.Path)).
					WithNote(prev.Enums[0].Pos, prev.PkgPath+" with runtime "+prev.RuntimeImport).
					WithNote(e.Pos, f.PkgPath+" with runtime "+f.RuntimeImport).
					Emit()
				continue
			}
			prev.Enums = append(prev.Enums, f.Enums...)
		}
	}
	return files
}

func writeAll(ctx context.Context, files []*derive.File, req Request, jobs int, rep diag.Reporter, timer *observ.Timer) ([]Output, error) {
	idx := timer.Begin("write")
	defer timer.End(idx, "")
	ctx, span := trace.Start(ctx, trace.ScopePhase, "write")
	defer span.End("")

	if len(files) == 0 {
		return nil, nil
	}
	outputs := make([]Output, len(files))
	ok := make([]bool, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, f := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			out, done := writeFile(gctx, f, req, rep)
			outputs[i], ok[i] = out, done
			if done {
				timer.Count(idx, 1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	kept := outputs[:0]
	for i, out := range outputs {
		if ok[i] {
			kept = append(kept, out)
		}
	}
	return kept, nil
}

func writeFile(ctx context.Context, f *derive.File, req Request, rep diag.Reporter) (Output, bool) {
	items := make([]string, len(f.Enums))
	names := make([]string, len(f.Enums))
	for i, e := range f.Enums {
		items[i] = e.PkgPath + "." + e.Name
		names[i] = e.Name
	}
	emit := func(stage pipeline.Stage, status pipeline.Status, err error, elapsed time.Duration) {
		for _, item := range items {
			pipeline.Emit(req.Progress, pipeline.Event{Item: item, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
		}
	}
	log := logging.L().With(zap.String("file", f.Path), zap.Strings("types", names))
	_, span := trace.Start(ctx, trace.ScopePackage, "file:"+f.Path)
	defer span.End("")

	started := time.Now()
	emit(pipeline.StageRender, pipeline.StatusWorking, nil, 0)
	src, err := derive.Render(f)
	req.Timings.Add(pipeline.StageRender, time.Since(started))
	if err != nil {
		diag.ReportError(rep, diag.IOFormat, f.Enums[0].Pos, err.Error()).Emit()
		emit(pipeline.StageRender, pipeline.StatusError, err, time.Since(started))
		log.Error("render failed", zap.Error(err))
		return Output{}, false
	}

	emit(pipeline.StageWrite, pipeline.StatusWorking, nil, 0)
	writeStarted := time.Now()
	status, err := derive.Write(f.Path, src, req.Check)
	req.Timings.Add(pipeline.StageWrite, time.Since(writeStarted))
	elapsed := time.Since(started)
	if err != nil {
		diag.ReportError(rep, diag.IOWriteFailed, token.Position{Filename: f.Path}, err.Error()).Emit()
		emit(pipeline.StageWrite, pipeline.StatusError, err, elapsed)
		log.Error("write failed", zap.Error(err))
		return Output{}, false
	}
	span.WithExtra("status", status.String())

	switch status {
	case derive.Stale:
		diag.ReportError(rep, diag.IOStaleOutput, token.Position{Filename: f.Path},
			fmt.Sprintf("%s is out of date; run enumtablegen gen", f.Path)).Emit()
		emit(pipeline.StageWrite, pipeline.StatusError, errStale, elapsed)
	case derive.Unchanged:
		emit(pipeline.StageWrite, pipeline.StatusSkipped, nil, elapsed)
	default:
		emit(pipeline.StageWrite, pipeline.StatusDone, nil, elapsed)
	}
	log.Debug("output", zap.Stringer("status", status), zap.Duration("elapsed", elapsed))
	return Output{Path: f.Path, Types: names, Status: status}, true
}

var errStale = errors.New("generated file is out of date")
