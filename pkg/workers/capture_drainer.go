package workers

import (
	"context"
	"log/slog"
)

// CaptureJobs refuses new captures on Shutdown and returns once scheduled ones are delivered.
type CaptureJobs interface {
	Shutdown()
}

type captureDrainer struct {
	jobs CaptureJobs
}

// NewCaptureDrainer keeps the group alive on shutdown until in-flight captures are delivered.
func NewCaptureDrainer(jobs CaptureJobs) *captureDrainer {
	return &captureDrainer{jobs: jobs}
}

func (c *captureDrainer) Name() string { return "capture_drainer" }

func (c *captureDrainer) Start(ctx context.Context) error {
	<-ctx.Done()

	slog.Info("Waiting for in-flight captures")
	c.jobs.Shutdown()
	slog.Info("Worker stopped", "name", c.Name())

	return nil
}
