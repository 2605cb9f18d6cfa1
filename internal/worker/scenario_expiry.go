package worker

import (
	"context"

	"github.com/fasalseva/FasalSeva_Go/internal/clock"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
)

// ScenarioExpiryJob sweeps plant scenarios whose deadline has passed.
// The API also lazily expires scenarios on read, so this job only keeps
// the table honest for users who stopped opening the app.
type ScenarioExpiryJob struct {
	scenarioRepo repository.Scenario
	clock        clock.Clock
}

// NewScenarioExpiryJob creates a scenario expiry sweep job
func NewScenarioExpiryJob(scenarioRepo repository.Scenario, clk clock.Clock) *ScenarioExpiryJob {
	return &ScenarioExpiryJob{scenarioRepo: scenarioRepo, clock: clk}
}

// Process expires every overdue scenario
func (j *ScenarioExpiryJob) Process(ctx context.Context) error {
	expired, err := j.scenarioRepo.ExpireOverdue(ctx, j.clock.Now())
	if err != nil {
		return err
	}
	if expired > 0 {
		logger.FromContext(ctx).Info("Expired overdue scenarios", "count", expired)
	}
	return nil
}

var _ Job = (*ScenarioExpiryJob)(nil)
