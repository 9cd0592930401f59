package driver

import (
	"encoding/json"
	"fmt"

	"diagsynth/internal/diag"
	"diagsynth/internal/observ"
	"diagsynth/internal/source"
)

type timingPayload struct {
	Kind      string               `json:"kind"`
	Path      string               `json:"path,omitempty"`
	Documents int                  `json:"documents"`
	TotalMS   float64              `json:"total_ms"`
	Phases    []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic records the run's timings as an info diagnostic so
// JSON consumers get them alongside the results. It ignores the bag limit.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "explain"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s — %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Kind:     diag.KindTimings,
		Message:  msg,
		Primary:  source.NoSpan,
		Notes: []diag.Note{
			{Span: source.NoSpan, Msg: string(data)},
		},
	}

	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Merge(bag)
	overflow.Add(entry)
	*bag = *overflow
}
