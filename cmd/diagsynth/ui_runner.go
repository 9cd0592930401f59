package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"diagsynth/internal/pipeline"
	"diagsynth/internal/ui"
)

type explainOutcome struct {
	result pipeline.Result
	err    error
}

// runExplainWithUI runs the batch while a progress view draws on stderr, so
// stdout only ever carries diagnostics.
func runExplainWithUI(ctx context.Context, title string, files []string, req *pipeline.Request) (pipeline.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan explainOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Run(ctx, &reqCopy)
		outcomeCh <- explainOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// программа завершилась раньше — дочитываем события, чтобы не заблокировать воркеров
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
