package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"atp-hospital/internal/audit"
	"atp-hospital/internal/auth"
	"atp-hospital/internal/config"
	"atp-hospital/internal/httpapi"
	"atp-hospital/internal/obs"
	"atp-hospital/internal/store/pg"
)

var version = "1.2.0"

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Inicia el servidor HTTP del módulo ATP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context(), config.Load())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(ctx context.Context, cfg config.Config) error {
	obs.Init()

	db, err := pg.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	tokens, err := auth.NewTokenService(cfg.JWTSecret, auth.WithTTL(cfg.TokenTTL))
	if err != nil {
		return err
	}

	users := pg.NewUserStore(db)
	svc, err := auth.NewService(users, tokens)
	if err != nil {
		return err
	}

	api := httpapi.New(httpapi.Options{
		Auth:       svc,
		Tokens:     tokens,
		Users:      users,
		Atenciones: pg.NewAtencionStore(db),
		Bitacora:   pg.NewBitacoraStore(db),
		Recorder:   audit.NewRecorder(pg.NewBitacoraStore(db)),
		Ready:      httpapi.ReadyProbe{DB: db},
		Version:    version,
		RateBurst:  cfg.RateBurst,
		RatePerSec: cfg.RatePerSec,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting atp-api %s on %s", version, srv.Addr)

	// graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	log.Println("Shutting down...")

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	log.Println("Stopped")
	return nil
}
