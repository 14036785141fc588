package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"enumtable/internal/diag"
	"enumtable/internal/driver"
	"enumtable/internal/pipeline"
	"enumtable/internal/ui"
)

type generateOutcome struct {
	result *driver.Result
	err    error
}

// runGenerateWithUI runs the driver in the background while a progress
// model renders its events. Quitting the UI cancels the run.
func runGenerateWithUI(ctx context.Context, title string, items []string, req driver.Request, rep diag.Reporter) (*driver.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan generateOutcome, 1)

	go func() {
		sink := pipeline.ProgressSink(pipeline.ChannelSink{Ch: events})
		if req.Progress != nil {
			sink = pipeline.MultiSink{req.Progress, sink}
		}
		req.Progress = sink
		res, err := driver.Generate(ctx, req, rep)
		outcomeCh <- generateOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, items, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// The model only quits on its own after the driver has finished, so any
	// earlier exit is the user interrupting the run.
	cancel()
	// the driver may still be emitting after an early quit
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
