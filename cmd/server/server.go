package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vinyl-library/vinyl-library-api/cmd"
	"github.com/vinyl-library/vinyl-library-api/internal/api"
	"github.com/vinyl-library/vinyl-library-api/internal/database"
	"github.com/vinyl-library/vinyl-library-api/internal/images"
	"github.com/vinyl-library/vinyl-library-api/internal/monitor"
	"github.com/vinyl-library/vinyl-library-api/internal/repository"
	"github.com/vinyl-library/vinyl-library-api/internal/services"
)

// RunServerCmd représente la commande 'run-server' de Cobra.
// C'est le point d'entrée pour lancer le serveur de l'application.
var RunServerCmd = &cobra.Command{
	Use:   "run-server",
	Short: "Lance le serveur API de la bibliothèque de vinyles.",
	Long: `Cette commande initialise la base de données, configure les APIs,
démarre le moniteur de pochettes si un intervalle est configuré,
puis lance le serveur HTTP jusqu'à réception de SIGINT ou SIGTERM.`,
	RunE: runServer,
}

func init() {
	cmd.RootCmd.AddCommand(RunServerCmd)
}

func runServer(_ *cobra.Command, _ []string) error {
	cfg, log := cmd.Cfg, cmd.Log

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()
	log.Info("database ready", zap.String("driver", cfg.Database.Driver))

	artistRepo := repository.NewArtistRepository(db)
	vinylRepo := repository.NewVinylRepository(db)
	store := images.NewStore(cfg.Images.Dir, cfg.Images.MaxUploadBytes, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Monitor.IntervalMinutes > 0 {
		interval := time.Duration(cfg.Monitor.IntervalMinutes) * time.Minute
		coverMonitor := monitor.NewCoverMonitor(vinylRepo, store, interval, log)
		go coverMonitor.Start(ctx)
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.Dependencies{
		DB:             db,
		ArtistService:  services.NewArtistService(artistRepo, vinylRepo),
		VinylService:   services.NewVinylService(vinylRepo, artistRepo),
		Images:         store,
		Log:            log,
		RequestTimeout: cfg.Server.RequestTimeout,
	}, cfg.Server.BasePath)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("base_path", cfg.Server.BasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}
