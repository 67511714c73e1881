// Package app wires configuration, database, identity provider, session store
// and HTTP routes into a runnable server.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	internalauth "github.com/RommelSharma23/travel-admin-sub001/internal/auth"
	"github.com/RommelSharma23/travel-admin-sub001/internal/config"
	"github.com/RommelSharma23/travel-admin-sub001/internal/db"
	adminapi "github.com/RommelSharma23/travel-admin-sub001/internal/http/api/admin"
	"github.com/RommelSharma23/travel-admin-sub001/internal/identity"
	"github.com/RommelSharma23/travel-admin-sub001/internal/logging"
	"github.com/RommelSharma23/travel-admin-sub001/internal/session"
	"github.com/RommelSharma23/travel-admin-sub001/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// settingsRefreshInterval bounds how stale a DB settings override can be.
const settingsRefreshInterval = time.Minute

// Migrate opens the database and runs migrations.
func Migrate(_ context.Context, configPath string) error {
	cfg, errLoad := config.Load(config.ResolveConfigPath(configPath))
	if errLoad != nil {
		return errLoad
	}
	conn, errOpen := db.Open(cfg.DatabaseDSN)
	if errOpen != nil {
		return errOpen
	}
	return db.Migrate(conn)
}

// RunServer boots the admin API server and blocks until ctx is cancelled.
func RunServer(ctx context.Context, configPath string) error {
	cfg, errLoad := config.Load(config.ResolveConfigPath(configPath))
	if errLoad != nil {
		return errLoad
	}
	logging.Setup(cfg)

	conn, errOpen := db.Open(cfg.DatabaseDSN)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}

	if errRefresh := settings.RefreshDBConfigSnapshot(ctx, conn); errRefresh != nil {
		log.Warnf("settings: initial snapshot load failed: %v", errRefresh)
	}
	go refreshSettingsLoop(ctx, conn)

	store := newSessionStore(cfg)
	provider := identity.NewLocalProvider(conn, cfg.SessionSecret, cfg.SessionTTL())
	svc := internalauth.NewService(
		provider,
		internalauth.NewGormDirectory(conn),
		store,
		internalauth.NewGormActivityRecorder(conn),
		internalauth.Options{
			SessionLifetime: cfg.SessionTTL(),
			Production:      cfg.IsProduction(),
		},
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	adminapi.RegisterRoutes(engine, conn, store, svc)

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("admin api listening on %s", cfg.Listen)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			log.Warnf("server shutdown: %v", errShutdown)
		}
		return nil
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}

// newSessionStore selects Redis when configured and falls back to the
// process-local store otherwise.
func newSessionStore(cfg *config.Config) session.Store {
	if cfg.Redis.Addr == "" {
		log.Info("sessions: using in-memory store")
		return session.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	log.Infof("sessions: using redis store at %s", cfg.Redis.Addr)
	return session.NewRedisStore(client)
}

// refreshSettingsLoop keeps the DB settings snapshot current.
func refreshSettingsLoop(ctx context.Context, conn *gorm.DB) {
	ticker := time.NewTicker(settingsRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if errRefresh := settings.RefreshDBConfigSnapshot(ctx, conn); errRefresh != nil {
				log.Warnf("settings: snapshot refresh failed: %v", errRefresh)
			}
		}
	}
}
