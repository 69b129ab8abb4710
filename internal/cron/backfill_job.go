package cron

import (
	"context"
	"fmt"

	"github.com/angelmondragon/partsfinder-backend/internal/backfill"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
)

const backfillJobName = "model-brand-backfill"

type backfillRunner interface {
	Run(ctx context.Context) (*backfill.Report, error)
}

type BackfillJobParams struct {
	Logger *logger.Logger
	Runner backfillRunner
}

func NewBackfillJob(params BackfillJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Runner == nil {
		return nil, fmt.Errorf("backfill runner required")
	}
	return &backfillJob{logg: params.Logger, runner: params.Runner}, nil
}

type backfillJob struct {
	logg   *logger.Logger
	runner backfillRunner
}

func (j *backfillJob) Name() string { return backfillJobName }

func (j *backfillJob) Run(ctx context.Context) error {
	report, err := j.runner.Run(ctx)
	if report != nil {
		j.logg.Info(j.logg.WithFields(ctx, report.Summary()), "cron.backfill_report")
	}
	if err != nil {
		return fmt.Errorf("model brand backfill: %w", err)
	}
	return nil
}
