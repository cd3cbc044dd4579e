package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"equipment-backend/internal/labor/dailyreports"
	"equipment-backend/internal/labor/salaryreports"
	"equipment-backend/internal/platform/auth"
	"equipment-backend/internal/platform/config"
	"equipment-backend/internal/platform/db"
	"equipment-backend/internal/platform/docstore"
	"equipment-backend/internal/platform/ids"
	"equipment-backend/internal/platform/logger"
	"equipment-backend/internal/platform/metrics"
	"equipment-backend/internal/router"
	"equipment-backend/internal/site/projects"
	"equipment-backend/internal/site/rentedtools"
	"equipment-backend/internal/site/returns"
	"equipment-backend/internal/site/toolgroups"
	"equipment-backend/internal/site/tools"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "path to config.yaml")
	flag.Parse()

	// 設定読み込み
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	log, closeLog, err := logger.New(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("init logger")
	}
	log.WithField("mode", cfg.Mode).Info("starting")

	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("server stopped")
		closeLog()
		os.Exit(1)
	}
	closeLog()
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := db.EnsureSchema(ctx, conn); err != nil {
		return err
	}
	log.WithField("db", cfg.DB.DBName).Info("connected to MySQL")

	cli, disconnect, err := docstore.Connect(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer disconnect()
	mdb := cli.Database(cfg.Mongo.Database)
	if err := docstore.EnsureIndexes(ctx, mdb); err != nil {
		return err
	}
	log.WithField("db", cfg.Mongo.Database).Info("connected to MongoDB")

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	svcs := router.NewServices(router.Stores{
		Users:         auth.NewStore(conn),
		Projects:      projects.NewStore(mdb),
		ToolGroups:    toolgroups.NewStore(mdb),
		Tools:         tools.NewStore(mdb),
		RentedTools:   rentedtools.NewStore(mdb),
		Returns:       returns.NewStore(mdb),
		DailyReports:  dailyreports.NewStore(mdb),
		SalaryReports: salaryreports.NewStore(mdb),
		Refs:          docstore.NewRefGuard(mdb),
	}, tokens, ids.NewULID(), log)

	if err := svcs.Users.EnsureAdmin(ctx, cfg.Admin); err != nil {
		return err
	}

	if cfg.Mode == config.ModeRelease {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.New(router.Deps{
		Config:   cfg,
		Log:      log,
		Metrics:  metrics.New(),
		Tokens:   tokens,
		Services: svcs,
	})

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: r,
	}

	errc := make(chan error, 1)
	go func() {
		var err error
		if certFile, keyFile, ok := cfg.TLSFiles(); ok {
			log.Infof("listening on https://%s", cfg.HTTP.Addr)
			err = srv.ListenAndServeTLS(certFile, keyFile)
		} else {
			log.Warnf("no certificate configured, listening on http://%s", cfg.HTTP.Addr)
			err = srv.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	// Graceful shutdown
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down...")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
