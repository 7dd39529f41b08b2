// Package app wires configuration, storage and services into one container
// shared by the HTTP server, the scheduler and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"focolog/config"
	"focolog/core/auth"
	"focolog/core/baserow"
	"focolog/core/cache"
	"focolog/core/rowstore"
	"focolog/model/repository"
	"focolog/service/actionplan"
	"focolog/service/alert"
	"focolog/service/dashboard"
	"focolog/service/delivery"
	"focolog/service/inventory"
	"focolog/service/purchase"
	"focolog/service/report"
	"focolog/service/request"
	"focolog/service/search"
	"focolog/service/supplier"
	"focolog/service/training"
	"focolog/service/users"
)

type App struct {
	Config *config.Config
	Logger *zap.Logger
	Cache  cache.Store
	Store  rowstore.Store
	Repos  *repository.Repositories

	Search      *search.Service
	Inventory   *inventory.Service
	Deliveries  *delivery.Service
	Requests    *request.Service
	Trainings   *training.Service
	Suppliers   *supplier.Service
	ActionPlans *actionplan.Service
	Purchases   *purchase.Service
	Alerts      *alert.Service
	Reports     *report.Service
	Dashboard   *dashboard.Service
	Users       *users.Service
	Sessions    *auth.Sessions

	db        *gorm.DB
	redis     *redis.Client
	stopSweep context.CancelFunc
}

// New builds the container. The hosted store is used when it has a token;
// otherwise rows live in the local database.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	mem := cache.GetInstance()
	a.Cache = mem
	client, err := config.NewRedis(cfg.Redis)
	switch {
	case err != nil:
		logger.Warn("redis not reachable, using in-memory cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	case client != nil:
		a.redis = client
		a.Cache = cache.NewRedisStore(client, "focolog:", logger)
		logger.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}
	if a.redis == nil && cfg.Store.SweepInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		a.stopSweep = cancel
		go mem.RunSweeper(ctx, cfg.Store.SweepInterval)
	}

	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	if cfg.Store.CacheTTL > 0 {
		store = rowstore.NewCachedStore(store, a.Cache, cfg.Store.CacheTTL)
	}
	a.Store = store
	a.wire()
	return a, nil
}

// NewWithStore builds the container around an existing store. Used by
// tests and seeding.
func NewWithStore(cfg *config.Config, logger *zap.Logger, store rowstore.Store, c cache.Store) *App {
	a := &App{Config: cfg, Logger: logger, Store: store, Cache: c}
	a.wire()
	return a
}

func (a *App) openStore() (rowstore.Store, error) {
	cfg := a.Config
	if cfg.Store.Backend == "baserow" {
		client := baserow.NewClient(cfg.Baserow.BaseURL, cfg.Baserow.Token, a.Logger)
		if client.Configured() {
			a.Logger.Info("using hosted row store", zap.String("url", cfg.Baserow.BaseURL))
			return client, nil
		}
		a.Logger.Warn("BASEROW_TOKEN not set, falling back to the local store")
	}
	db, err := config.NewDB(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	a.db = db
	store, err := rowstore.NewLocalStore(db)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	a.Logger.Info("using local row store", zap.String("driver", cfg.DB.Driver))
	return store, nil
}

func (a *App) wire() {
	cfg, logger := a.Config, a.Logger
	now := time.Now

	a.Repos = repository.New(a.Store, cfg.Baserow)
	a.Search = search.NewService(cfg.Elastic, logger)

	opts := []inventory.Option{inventory.WithCAWarningDays(cfg.Alerts.CAWarningDays)}
	if a.Search.Enabled() {
		opts = append(opts, inventory.WithSearch(a.Search))
	}
	a.Inventory = inventory.NewService(a.Repos, logger, opts...)
	signatures := delivery.NewSignatureStore(cfg.Server.MediaDir, cfg.Server.MediaURL)
	a.Deliveries = delivery.NewService(a.Repos, a.Inventory, signatures, logger)
	a.Requests = request.NewService(a.Repos, a.Deliveries, logger, now)
	a.Trainings = training.NewService(a.Repos, logger, cfg.Alerts.TrainingWarningDays, now)
	a.Suppliers = supplier.NewService(a.Repos, logger, now)
	a.ActionPlans = actionplan.NewService(a.Repos, logger, now)
	a.Purchases = purchase.NewService(a.Repos, logger, now)
	a.Alerts = alert.NewService(a.Inventory, a.Trainings, a.Cache, logger)
	a.Reports = report.NewService(a.Repos, logger, now)
	a.Dashboard = dashboard.NewService(a.Repos, a.Inventory, a.Requests, a.Alerts, logger)
	a.Users = users.NewService(a.Repos, logger, now)
	a.Sessions = auth.NewSessions(a.Cache, cfg.Auth.SessionTTL)
}

// Bootstrap creates the admin account when token auth is in use.
func (a *App) Bootstrap(ctx context.Context) error {
	if a.Config.Auth.Type != "token" && a.Config.Auth.Type != "" {
		return nil
	}
	if a.Config.Auth.AdminEmail == "" {
		return nil
	}
	u, created, err := a.Users.EnsureAdmin(ctx, a.Config.Auth.AdminEmail, a.Config.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		a.Logger.Info("admin user created", zap.String("email", u.Email))
	}
	return nil
}

// Ping checks the row store by listing one user.
func (a *App) Ping(ctx context.Context) error {
	_, err := a.Store.List(ctx, a.Repos.Users.ID(), rowstore.ListOptions{Size: 1})
	return err
}

func (a *App) Close() error {
	var firstErr error
	if a.stopSweep != nil {
		a.stopSweep()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	_ = a.Logger.Sync()
	return firstErr
}
