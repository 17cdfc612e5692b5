package persistence

import (
	"context"

	"github.com/markusressel/pidfan/internal/controller"
	"github.com/markusressel/pidfan/internal/ui"
)

const DefaultRecorderBufferSize = 64

// HistoryRecorder records every cycle of a controller in the given history.
// OnCycle only enqueues the result, Run writes it to the database.
// Failures are logged and never abort the control loop.
type HistoryRecorder struct {
	history History
	fanId   string
	logger  ui.Logger

	queue chan controller.CycleResult
}

func NewHistoryRecorder(history History, fanId string, bufferSize int, logger ui.Logger) *HistoryRecorder {
	if bufferSize <= 0 {
		bufferSize = DefaultRecorderBufferSize
	}
	return &HistoryRecorder{
		history: history,
		fanId:   fanId,
		logger:  logger,
		queue:   make(chan controller.CycleResult, bufferSize),
	}
}

// OnCycle enqueues the result, dropping it if the writer has fallen behind
func (r *HistoryRecorder) OnCycle(result controller.CycleResult) {
	select {
	case r.queue <- result:
	default:
		r.logger.Warning("History of fan %s is falling behind, dropping cycle of %s", r.fanId, result.Time)
	}
}

// Pending returns the number of cycles waiting to be written
func (r *HistoryRecorder) Pending() int {
	return len(r.queue)
}

// Run writes queued cycles until ctx is cancelled.
// Cycles still queued afterwards are written by Flush.
func (r *HistoryRecorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case result := <-r.queue:
			r.save(result)
		}
	}
}

// Flush writes all queued cycles
func (r *HistoryRecorder) Flush() {
	for {
		select {
		case result := <-r.queue:
			r.save(result)
		default:
			return
		}
	}
}

func (r *HistoryRecorder) save(result controller.CycleResult) {
	err := r.history.SaveCycle(r.fanId, result)
	if err != nil {
		r.logger.Warning("Unable to save cycle of fan %s to history: %v", r.fanId, err)
	}
}
