package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/sofiandread/detect-art-format/internal/classify"
	cfgpkg "github.com/sofiandread/detect-art-format/internal/config"
	"github.com/sofiandread/detect-art-format/internal/filetype"
	logpkg "github.com/sofiandread/detect-art-format/internal/logger"
	"github.com/sofiandread/detect-art-format/internal/metrics"
	"github.com/sofiandread/detect-art-format/internal/server"
	"github.com/sofiandread/detect-art-format/internal/statuscheck"
	"github.com/sofiandread/detect-art-format/internal/storage"
	"github.com/sofiandread/detect-art-format/internal/uploads"
)

func main() {
	_ = godotenv.Load()
	cfg := cfgpkg.FromEnv()

	// Init logging
	_ = logpkg.Init(logpkg.Options{
		Level:        cfg.Logging.Level,
		Pretty:       cfg.Logging.Pretty,
		File:         cfg.Logging.File,
		MaxSizeMB:    cfg.Logging.MaxSizeMB,
		MaxBackups:   cfg.Logging.MaxBackups,
		MaxAgeDays:   cfg.Logging.MaxAgeDays,
		Compress:     cfg.Logging.Compress,
		SendToAxiom:  cfg.Axiom.Send && cfg.Axiom.APIKey != "",
		AxiomAPIKey:  cfg.Axiom.APIKey,
		AxiomOrgID:   cfg.Axiom.OrgID,
		AxiomDataset: cfg.Axiom.Dataset,
		AxiomFlush:   cfg.Axiom.FlushInterval,
	})
	defer logpkg.Close()

	metrics.Init()

	store, err := uploads.NewStore(cfg.Server.UploadDir, cfg.Server.CleanupMaxAge)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init upload dir")
	}

	// S3 is optional
	var s3cli *storage.Client
	if cfg.Storage.Bucket != "" {
		s3cli, err = storage.NewClient(context.Background(), cfg.Storage.Bucket)
		if err != nil {
			log.Warn().Err(err).Msg("S3 disabled")
			s3cli = nil
		}
	}

	srv := server.New(server.Options{
		Engine:   classify.NewEngine(cfg.Detect),
		Uploads:  store,
		Detector: filetype.New(),
		Storage:  s3cli,
		Checker: statuscheck.New(statuscheck.Options{
			UploadDir: cfg.Server.UploadDir,
			S3Bucket:  cfg.Storage.Bucket,
		}),
		RenderDPI:   cfg.Render.DPI,
		KeyPrefix:   cfg.Storage.KeyPrefix,
		MaxUploadMB: cfg.Server.MaxUploadMB,
	})
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go store.Janitor(janitorCtx, cfg.Server.CleanupInterval)

	httpSrv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: mux}

	go func() {
		log.Info().Msgf("HTTP server listening on :%s", cfg.Server.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
	fmt.Println("shutdown complete")
}
