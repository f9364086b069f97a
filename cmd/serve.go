package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"f1calendar/broadcaster"
	"f1calendar/pipeline"
	"f1calendar/server"

	"github.com/spf13/cobra"
)

var listenFlag string

// Serve generates the calendar into the static directory at startup and serves it.
var Serve = &cobra.Command{
	Use:   "serve",
	Short: "Generate the calendar and serve it with an index page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("listen") {
			cfg.Server.ListenAddress = listenFlag
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv, err := server.New(server.Options{
			StaticDir:    cfg.Server.StaticDir,
			CalendarFile: cfg.Server.CalendarFile,
			Template:     cfg.Server.Template,
			Greeting:     cfg.Server.Greeting,
		}, server.NewDirResolver(cfg.Server.StaticDir), broadcaster.NewBroadcaster())
		if err != nil {
			return err
		}

		// startup generation is synchronous, a failure aborts startup
		gen := newGenerator(cfg, filepath.Join(cfg.Server.StaticDir, cfg.Server.CalendarFile))
		schedule, err := gen.Run(ctx, time.Now().UTC())
		if err != nil {
			return err
		}
		srv.SetSchedule(schedule)

		var scheduler *pipeline.Scheduler
		if cfg.Server.Regenerate != "" {
			scheduler, err = pipeline.NewScheduler(cfg.Server.Regenerate, gen, func() time.Time { return time.Now().UTC() }, srv.SetSchedule)
			if err != nil {
				return err
			}
			scheduler.Start()
			slog.Info("Calendar regeneration scheduled", "schedule", cfg.Server.Regenerate)
		}

		httpServer := &http.Server{
			Addr:         cfg.Server.ListenAddress,
			Handler:      srv.Router(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("Starting HTTP server", "addr", cfg.Server.ListenAddress)
			errCh <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if scheduler != nil {
				scheduler.Stop(context.Background())
			}
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if scheduler != nil {
			scheduler.Stop(shutdownCtx)
		}
		return httpServer.Shutdown(shutdownCtx)
	},
}

func init() {
	Serve.Flags().StringVarP(&listenFlag, "listen", "l", ":8080", "Address to listen on")
}
