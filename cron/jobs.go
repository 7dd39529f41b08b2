package cron

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"focolog/app"
	"focolog/config"
	"focolog/service/search"
)

const (
	JobAlertScan      = "alertscan"
	JobTrainingStatus = "trainingstatus"
	JobSearchReindex  = "searchreindex"
)

func init() {
	Register(JobAlertScan, config.DefaultCronSchedules[JobAlertScan], alertScan)
	Register(JobTrainingStatus, config.DefaultCronSchedules[JobTrainingStatus], trainingStatus)
	Register(JobSearchReindex, config.DefaultCronSchedules[JobSearchReindex], searchReindex)
}

// alertScan rebuilds the cached alert snapshot.
func alertScan(ctx context.Context, a *app.App) error {
	snap, err := a.Alerts.Scan(ctx)
	if err != nil {
		return err
	}
	a.Logger.Info("alerts scanned",
		zap.Int("critical", snap.Counts.Critical),
		zap.Int("warning", snap.Counts.Warning),
		zap.Int("expired", snap.Counts.Expired),
	)
	return nil
}

// trainingStatus rewrites stored training statuses that drifted with time.
func trainingStatus(ctx context.Context, a *app.App) error {
	n, err := a.Trainings.RefreshStatuses(ctx)
	if err != nil {
		return err
	}
	a.Logger.Info("training statuses refreshed", zap.Int("updated", n))
	return nil
}

// searchReindex reloads every item into the search index. A disabled
// index is not an error.
func searchReindex(ctx context.Context, a *app.App) error {
	items, err := a.Inventory.Items(ctx)
	if err != nil {
		return err
	}
	n, err := a.Search.Reindex(ctx, items)
	if errors.Is(err, search.ErrDisabled) {
		a.Logger.Debug("search disabled, reindex skipped")
		return nil
	}
	if err != nil {
		return err
	}
	a.Logger.Info("search reindexed", zap.Int("items", n))
	return nil
}
