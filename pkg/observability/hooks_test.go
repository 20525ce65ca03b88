package observability

import (
	"context"
	"testing"
	"time"
)

type recordingHooks struct {
	stages []string
	runs   int
}

func (r *recordingHooks) OnRunStart(context.Context, int) { r.runs++ }
func (r *recordingHooks) OnStageStart(_ context.Context, stage string, _ int) {
	r.stages = append(r.stages, stage)
}
func (r *recordingHooks) OnStageComplete(context.Context, string, int, time.Duration, error) {}
func (r *recordingHooks) OnRunComplete(context.Context, int, int, time.Duration, error)      {}

func TestHookRegistration(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetPipelineHooks(rec)

	Pipeline().OnRunStart(context.Background(), 5)
	Pipeline().OnStageStart(context.Background(), StageGrouping, 5)

	if rec.runs != 1 || len(rec.stages) != 1 || rec.stages[0] != StageGrouping {
		t.Errorf("hooks not invoked: %+v", rec)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)

	Pipeline().OnRunStart(context.Background(), 1)
	if rec.runs != 1 {
		t.Error("nil registration should be ignored")
	}
}

func TestResetRestoresNoop(t *testing.T) {
	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	Reset()

	Pipeline().OnRunStart(context.Background(), 1)
	if rec.runs != 0 {
		t.Error("Reset should restore no-op hooks")
	}

	// Defaults never panic.
	Cache().OnCacheHit(context.Background(), "route")
	Cache().OnCacheMiss(context.Background(), "route")
	Cache().OnCacheSet(context.Background(), "route", 10)
}
