package main

import (
	"fmt"
	"io"
	"time"

	"enumtable/internal/pipeline"
)

// printStageTimings prints the per-stage durations summed across jobs.
func printStageTimings(out io.Writer, timings *pipeline.Timings) {
	if out == nil || timings == nil {
		return
	}
	labels := map[pipeline.Stage]string{
		pipeline.StageLoad:    "loaded",
		pipeline.StageAnalyze: "analyzed",
		pipeline.StageRender:  "rendered",
		pipeline.StageWrite:   "wrote",
	}
	for _, stage := range pipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s %.1f ms\n", labels[stage], toMillis(timings.Duration(stage))); err != nil {
			panic(err)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
