package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tradejournal/internal/client/syncbox"
	"tradejournal/internal/config"
	cronrunner "tradejournal/internal/cron"
	"tradejournal/internal/db"
	"tradejournal/internal/handler"
	"tradejournal/internal/logger"
	gormrepository "tradejournal/internal/repository/gorm"
	"tradejournal/internal/risk"
	"tradejournal/internal/service"
	statesync "tradejournal/internal/sync"

	_ "tradejournal/docs"
)

func main() {
	cfgPath := os.Getenv("TJ_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TJ_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var remote statesync.RemoteStore
	if cfg.Sync.Configured() {
		remote = syncbox.NewClient(
			&http.Client{Timeout: cfg.Sync.Timeout},
			cfg.Sync.Endpoint,
			cfg.Sync.AccessKey,
		)
	}
	coordinator := statesync.New(cfg.Sync, store, remote, logger)
	// Blocking pull before the server opens, so a newer remote row is in
	// place before the first request can read or mutate anything.
	coordinator.Bootstrap(ctx)

	journalSvc := &service.JournalService{Repo: store, Sync: coordinator, Logger: logger}
	analyticsSvc := &service.AnalyticsService{Repo: store}
	snapshotSvc := &service.SnapshotService{Repo: store, Sync: coordinator, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)

	tradesHandler := &handler.TradesHandler{Repo: store, Journal: journalSvc}
	tradesHandler.Register(engine)
	accountsHandler := &handler.AccountsHandler{Repo: store, Journal: journalSvc}
	accountsHandler.Register(engine)
	withdrawalsHandler := &handler.WithdrawalsHandler{Repo: store, Journal: journalSvc}
	withdrawalsHandler.Register(engine)
	analyticsHandler := &handler.AnalyticsHandler{Repo: store, Analytics: analyticsSvc}
	analyticsHandler.Register(engine)
	importHandler := &handler.ImportHandler{Config: cfg.Import, Journal: journalSvc, Snapshot: snapshotSvc}
	importHandler.Register(engine)
	riskHandler := &handler.RiskHandler{Calc: risk.Calculator{Config: cfg.Risk}}
	riskHandler.Register(engine)
	syncHandler := &handler.SyncHandler{Sync: coordinator}
	syncHandler.Register(engine)
	streamHandler := &handler.StreamHandler{Sync: coordinator, Logger: logger}
	streamHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		if _, err := cronRunner.Add("equity_snapshot", cfg.Cron.EquitySnapshot, snapshotSvc.SnapshotEquity); err != nil {
			logger.Warn("cron register equity snapshot failed", zap.Error(err))
		}
		if _, err := cronRunner.Add("backup_flush", cfg.Cron.BackupFlush, coordinator.Flush); err != nil {
			logger.Warn("cron register backup flush failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	// One last push so edits made inside the debounce window are not lost
	// on a clean shutdown.
	flushCtx, cancelFlush := context.WithTimeout(context.Background(), cfg.Sync.Timeout)
	defer cancelFlush()
	if err := coordinator.Flush(flushCtx); err != nil {
		logger.Warn("final sync flush failed", zap.Error(err))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
