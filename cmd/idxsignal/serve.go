package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danijuhaeni22/idx-signal-web/internal/chart"
	"github.com/danijuhaeni22/idx-signal-web/internal/scheduler"
	"github.com/danijuhaeni22/idx-signal-web/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser dashboard",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renderer, rerr := chart.Select(chart.NewPNGRenderer())
	chartErr := ""
	if rerr != nil {
		log.Printf("[ERROR] chart renderer: %v", rerr)
		chartErr = rerr.Error()
		renderer = nil
	}

	srv := server.New(a.dash, renderer, a.cfg.API.Ticker, chartErr)
	srv.Health = a.client.Health

	sched := scheduler.NewScheduler(ctx, a.dash)
	if err := sched.Register(a.cfg.Server.RefreshCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	// Warm the radar cache so the first page load is instant.
	go func() {
		wctx, wcancel := context.WithTimeout(ctx, 2*time.Minute)
		defer wcancel()
		if _, err := a.dash.RefreshRadar(wctx); err != nil {
			log.Printf("[WARN] radar warmup: %v", err)
		}
	}()

	httpSrv := &http.Server{
		Addr:    a.cfg.Server.Addr,
		Handler: srv.Router(),
	}

	go func() {
		log.Printf("[INFO] dashboard listening on %s", a.cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[ERROR] http server: %v", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	if err := httpSrv.Shutdown(shutCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] dashboard stopped")
	return nil
}
