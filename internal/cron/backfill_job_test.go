package cron

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/angelmondragon/partsfinder-backend/internal/backfill"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
)

type fakeBackfillRunner struct {
	report *backfill.Report
	err    error
	runs   int
}

func (f *fakeBackfillRunner) Run(context.Context) (*backfill.Report, error) {
	f.runs++
	return f.report, f.err
}

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard})
}

func TestBackfillJobRunsRunner(t *testing.T) {
	runner := &fakeBackfillRunner{report: &backfill.Report{Scanned: 3}}
	job, err := NewBackfillJob(BackfillJobParams{Logger: newTestLogger(), Runner: runner})
	if err != nil {
		t.Fatalf("NewBackfillJob: %v", err)
	}
	if job.Name() != "model-brand-backfill" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if runner.runs != 1 {
		t.Fatalf("expected runner called once, got %d", runner.runs)
	}
}

func TestBackfillJobPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	runner := &fakeBackfillRunner{report: &backfill.Report{}, err: boom}
	job, err := NewBackfillJob(BackfillJobParams{Logger: newTestLogger(), Runner: runner})
	if err != nil {
		t.Fatalf("NewBackfillJob: %v", err)
	}
	if err := job.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped runner error, got %v", err)
	}
}

func TestNewBackfillJobRequiresDeps(t *testing.T) {
	if _, err := NewBackfillJob(BackfillJobParams{Runner: &fakeBackfillRunner{}}); err == nil {
		t.Fatal("expected error without logger")
	}
	if _, err := NewBackfillJob(BackfillJobParams{Logger: newTestLogger()}); err == nil {
		t.Fatal("expected error without runner")
	}
}
