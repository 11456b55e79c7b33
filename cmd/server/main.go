package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/taskboard/api/handler"
	"github.com/fastygo/taskboard/internal/config"
	"github.com/fastygo/taskboard/internal/infrastructure/localstorage"
	"github.com/fastygo/taskboard/internal/infrastructure/monitor"
	"github.com/fastygo/taskboard/internal/middleware"
	"github.com/fastygo/taskboard/internal/router"
	"github.com/fastygo/taskboard/internal/services"
	"github.com/fastygo/taskboard/internal/services/lifecycle"
	"github.com/fastygo/taskboard/pkg/clock"
	"github.com/fastygo/taskboard/pkg/httpcontext"
	"github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/repository/local"
	boardUC "github.com/fastygo/taskboard/usecase/board"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, cancel := manager.Listen(context.Background())
	defer cancel()

	storage, err := localstorage.Open(cfg.Board.DBPath, cfg.Board.Bucket)
	if err != nil {
		zapLogger.Fatal("failed to open board storage", zap.String("path", cfg.Board.DBPath), zap.Error(err))
	}
	manager.Register("storage", func(ctx context.Context) error {
		return storage.Close()
	})

	clk := clock.Real()
	store := local.NewTaskStore(storage, cfg.Board.StorageKey, clk, zapLogger.Named("store"))
	if err := store.Load(appCtx); err != nil {
		zapLogger.Fatal("failed to load board", zap.Error(err))
	}

	mon := monitor.New(storage, store, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	feed := services.NewFeed(cfg.Board.FeedSize, clk, zapLogger.Named("feed"))
	board := boardUC.New(store, feed, feed, clk, zapLogger.Named("board"), boardUC.Options{
		Latency: cfg.Board.SimulatedLatency,
	})

	rollover, err := services.NewDayRollover(board, cfg.Board.RolloverSchedule, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to schedule day rollover", zap.Error(err))
	}
	rollover.Start()
	manager.Register("rollover", func(ctx context.Context) error {
		rollover.Stop(ctx)
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	handlers := router.Handlers{
		Board:  apiHandler.NewBoardHandler(board, feed, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}
	r := router.New(handlers)

	mws := []middleware.Middleware{middleware.AccessLog(zapLogger.Named("http"))}
	if !cfg.HTTP.AllowRemote {
		mws = append(mws, middleware.LocalOnly(zapLogger))
	}

	server := &fasthttp.Server{
		Handler:      middleware.Chain(r.Handler, mws...),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("board server started",
			zap.String("address", cfg.Address()),
			zap.Int("tasks", store.Len()),
			zap.Time("next_rollover", rollover.Next()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Error("server stopped", zap.Error(err))
			cancel()
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
