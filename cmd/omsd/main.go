package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"oms/params"
	"oms/pkg/api"
	"oms/pkg/metrics"
	"oms/pkg/oms"
	"oms/pkg/storage"
	"oms/pkg/util"
)

func main() {
	cfg := params.LoadFromEnv("") // "" loads .env from the current directory

	logger, err := util.NewLoggerWithFile(cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	metrics.Register()

	// ---- Trade journal (optional) ----
	var journal api.TradeJournal
	if !cfg.Storage.JournalDisabled {
		j, err := storage.OpenJournal(filepath.Join(cfg.Storage.DataDir, "journal"))
		if err != nil {
			sugar.Fatalw("journal_open_failed", "err", err)
		}
		defer j.Close()
		journal = j
		sugar.Infow("journal_opened", "dir", cfg.Storage.DataDir)
	}

	// ---- Core + API ----
	mgr := oms.NewManager(sugar, util.RealClock{})
	server := api.NewServer(mgr, journal, sugar)
	go server.Hub().Run()

	httpSrv := &http.Server{
		Addr:    cfg.API.Addr,
		Handler: server.Handler(cfg.API.CORSOrigins),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		sugar.Infow("api_server_starting", "addr", cfg.API.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("api_server_failed", "err", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		sugar.Warnw("shutdown_failed", "err", err)
	}
}
