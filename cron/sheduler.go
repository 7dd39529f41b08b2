package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"focolog/app"
)

// Scheduler runs registered jobs on their schedules.
type Scheduler struct {
	c      *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// schedule returns the configured schedule for name, falling back to the
// job's default.
func schedule(a *app.App, name string, j Job) string {
	if s, ok := a.Config.Cron[name]; ok && s != "" {
		return s
	}
	return j.Schedule
}

// StartCron registers the selected jobs (all when only is empty) and starts
// the scheduler.
func StartCron(a *app.App, only ...string) (*Scheduler, error) {
	jobs := Jobs()
	if len(only) > 0 {
		picked := make(map[string]Job, len(only))
		for _, name := range only {
			j, ok := jobs[name]
			if !ok {
				return nil, fmt.Errorf("unknown cron job %q", name)
			}
			picked[name] = j
		}
		jobs = picked
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{c: cron.New(), ctx: ctx, cancel: cancel}
	for name, j := range jobs {
		name, j := name, j
		sched := schedule(a, name, j)
		if _, err := s.c.AddFunc(sched, func() { runLogged(ctx, a, name, j.Run) }); err != nil {
			cancel()
			return nil, fmt.Errorf("register job %s (%s): %w", name, sched, err)
		}
		a.Logger.Info("cron job registered", zap.String("job", name), zap.String("schedule", sched))
	}
	s.c.Start()
	return s, nil
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.c.Stop().Done()
}

// RunJob runs one registered job immediately.
func RunJob(ctx context.Context, a *app.App, name string) error {
	j, ok := Jobs()[name]
	if !ok {
		return fmt.Errorf("unknown cron job %q", name)
	}
	return runLogged(ctx, a, name, j.Run)
}

func runLogged(ctx context.Context, a *app.App, name string, run RunFunc) error {
	start := time.Now()
	err := run(ctx, a)
	fields := []zap.Field{zap.String("job", name), zap.Duration("took", time.Since(start))}
	if err != nil {
		a.Logger.Error("cron job failed", append(fields, zap.Error(err))...)
		return err
	}
	a.Logger.Info("cron job done", fields...)
	return nil
}
