package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/internal/api"
	"github.com/charlesng35/kurukshetra/internal/app"
	"github.com/charlesng35/kurukshetra/internal/app/maintenance"
	iauth "github.com/charlesng35/kurukshetra/internal/auth"
	"github.com/charlesng35/kurukshetra/internal/cache"
	"github.com/charlesng35/kurukshetra/internal/database"
	"github.com/charlesng35/kurukshetra/internal/middleware"
	"github.com/charlesng35/kurukshetra/internal/monitoring"
	"github.com/charlesng35/kurukshetra/internal/monitoring/checks"
	"github.com/charlesng35/kurukshetra/internal/notifications"
	"github.com/charlesng35/kurukshetra/internal/realtime"
	"github.com/charlesng35/kurukshetra/pkg/logger"
	"github.com/charlesng35/kurukshetra/pkg/mail"
)

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB        *gorm.DB
	Redis     *cache.RedisStore
	Services  *api.Services
	Scheduler *maintenance.Scheduler
	Jobs      *monitoring.JobTracker
	Health    *monitoring.HealthManager
	RateStore middleware.RateStore
	Live      *realtime.Hub
	Mailer    *notifications.ContactMailer
	Router    *gin.Engine
}

// bootstrapRuntime initialises the database, caches, services, background jobs and the HTTP router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(context.Background(), log)
		}
	}()

	// enable gin debug mode
	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	dbStore := cache.NewDatabaseStore(stack.DB)
	var store cache.Store = dbStore

	if cfg.Cache.Redis.Enabled {
		if stack.Redis, err = cache.NewRedisStore(ctx, cfg.Cache.RedisClientConfig()); err != nil {
			log.Warn("redis unavailable; falling back to database-backed cache", zap.Error(err))
			stack.Redis = nil
		} else {
			store = stack.Redis
			log.Info("redis connected", zap.String("addr", cfg.Cache.Redis.Address))
		}
	}
	stack.RateStore = middleware.NewCacheRateStore(store)

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	if err != nil {
		return nil, fmt.Errorf("initialise jwt service: %w", err)
	}

	stack.Services, err = api.NewServices(stack.DB, api.ServiceOptions{
		Cache:    store,
		SportTTL: cfg.Cache.SportListTTL(),
	})
	if err != nil {
		return nil, fmt.Errorf("initialise services: %w", err)
	}

	if cfg.Maintenance.Enabled {
		stack.Jobs = monitoring.NewJobTracker()
		stack.Scheduler = maintenance.NewScheduler(stack.Services.Sports, stack.Services.Events,
			maintenance.WithTracker(stack.Jobs),
			maintenance.WithPurger(dbStore),
			maintenance.WithStatusSchedule(cfg.Maintenance.StatusSchedule),
			maintenance.WithCacheSchedule(cfg.Maintenance.CacheSchedule),
		)
		if err := stack.Scheduler.RunOnce(ctx); err != nil {
			log.Warn("initial maintenance run failed", zap.Error(err))
		}
		if err := stack.Scheduler.Start(); err != nil {
			return nil, fmt.Errorf("start maintenance jobs: %w", err)
		}
	}

	if stack.Mailer, err = initialiseContactMailer(cfg); err != nil {
		return nil, err
	}
	if stack.Mailer != nil {
		log.Info("contact notifications enabled", zap.Int("recipients", len(mail.Dedupe(cfg.Notify.Recipients))))
	}

	stack.Health = buildHealthManager(cfg, stack)
	stack.Live = realtime.NewHub(cfg.Server.CORS.AllowedOrigins...)

	deps := api.Dependencies{
		Config:    cfg,
		Services:  stack.Services,
		Tokens:    jwtSvc,
		RateStore: stack.RateStore,
		Health:    stack.Health,
		Live:      stack.Live,
	}
	if stack.Mailer != nil {
		deps.Notifier = stack.Mailer
	}
	stack.Router, err = api.NewRouter(deps)
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

func initialiseContactMailer(cfg *app.Config) (*notifications.ContactMailer, error) {
	if !cfg.Notify.ContactAlertsEnabled() {
		return nil, nil
	}
	settings := cfg.Notify.MailSettings()
	sender, err := mail.NewSMTPSender(settings)
	if err != nil {
		return nil, fmt.Errorf("initialise mailer: %w", err)
	}
	return notifications.NewContactMailer(sender, cfg.Notify.Recipients,
		notifications.WithTimeout(3*settings.Timeout))
}

func buildHealthManager(cfg *app.Config, stack *runtimeStack) *monitoring.HealthManager {
	timeout := cfg.Monitoring.Health.Timeout
	manager := monitoring.NewHealthManager()

	manager.RegisterLiveness(monitoring.NewCheck("process", func(context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{Status: monitoring.StatusUp}
	}))

	manager.RegisterReadiness(checks.Database(stack.DB, timeout))

	var pinger checks.RedisPinger
	if stack.Redis != nil {
		pinger = stack.Redis
	}
	manager.RegisterReadiness(checks.Redis(pinger, cfg.Cache.Redis.Enabled, timeout))

	if stack.Jobs != nil {
		manager.RegisterReadiness(checks.Maintenance(stack.Jobs, 0))
	}
	return manager
}

// Shutdown gracefully stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Scheduler != nil {
		select {
		case <-s.Scheduler.Stop().Done():
		case <-ctx.Done():
			log.Warn("maintenance jobs still running at shutdown")
		}
	}

	if s.Mailer != nil {
		if err := s.Mailer.Close(ctx); err != nil {
			log.Warn("contact notifications still pending at shutdown", zap.Error(err))
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.Warn("redis shutdown", zap.Error(err))
		}
	}

	if s.DB != nil {
		closeDatabase(s.DB, log)
	}
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database.ConnectionConfig()
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrateAndSeed(db, cfg.Database.SeedDemo); err != nil {
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected",
		zap.String("driver", dbCfg.Driver),
		zap.Bool("demo_data", cfg.Database.SeedDemo),
	)

	return db, nil
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to obtain underlying sql DB for closing", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
