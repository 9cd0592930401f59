package main

import (
	"fmt"
	"io"
	"time"

	"diagsynth/internal/observ"
	"diagsynth/internal/pipeline"
)

// printStageTimings writes the per-stage wall time (summed over documents)
// followed by the driver's phase table.
func printStageTimings(out io.Writer, timings pipeline.Timings, report *observ.Report) {
	if out == nil {
		return
	}
	for _, stage := range []pipeline.Stage{pipeline.StageDecode, pipeline.StageResolve, pipeline.StageRender} {
		if timings.Has(stage) {
			fmt.Fprintf(out, "%s %.1f ms\n", stage, toMillis(timings.Duration(stage)))
		}
	}
	if report != nil {
		fmt.Fprint(out, report.Summary())
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
