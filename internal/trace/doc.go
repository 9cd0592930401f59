// Package trace records what diagsynth does while explaining a batch of fact
// documents: which documents were read, which stages ran and how long each took.
//
// # Usage
//
//	diagsynth explain --trace=- --trace-level=detail facts/
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: failures only
//   - LevelPhase: run and stage boundaries
//   - LevelDetail: per-document spans
//   - LevelDebug: per-fact spans
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "decode", 0)
//	defer span.End("")
package trace
