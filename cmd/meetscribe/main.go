package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/meetscribe/auth"
	"github.com/skillsenselab/meetscribe/config"
	"github.com/skillsenselab/meetscribe/diarization"
	"github.com/skillsenselab/meetscribe/diarization/pyannote"
	"github.com/skillsenselab/meetscribe/export"
	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/media"
	"github.com/skillsenselab/meetscribe/observability"
	"github.com/skillsenselab/meetscribe/pipeline"
	"github.com/skillsenselab/meetscribe/server"
	"github.com/skillsenselab/meetscribe/storage"
	"github.com/skillsenselab/meetscribe/store"
	"github.com/skillsenselab/meetscribe/summarize"
	"github.com/skillsenselab/meetscribe/summarize/bart"
	"github.com/skillsenselab/meetscribe/summarize/groq"
	"github.com/skillsenselab/meetscribe/transcription"
	"github.com/skillsenselab/meetscribe/transcription/whisper"
)

const serviceName = "meetscribe"

func main() {
	var cfg config.AppConfig
	if err := config.Load(serviceName, &cfg); err != nil {
		logger.Fatal("loading configuration", logger.Fields("error", err.Error()))
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", logger.Fields("error", err.Error()))
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)
	log.Info("starting", logger.Fields("version", cfg.Version, "environment", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		tp, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: cfg.Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Telemetry.Endpoint,
			Insecure:       cfg.Telemetry.Insecure,
			SampleRate:     cfg.Telemetry.SampleRate,
		})
		if err != nil {
			log.Fatal("initializing tracer", logger.Fields("error", err.Error()))
		}
		defer func() { _ = tp.Shutdown(context.Background()) }()

		mp, err := observability.InitMeter(ctx, observability.MeterConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: cfg.Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Telemetry.Endpoint,
			Insecure:       cfg.Telemetry.Insecure,
			Interval:       cfg.Telemetry.Interval,
		})
		if err != nil {
			log.Fatal("initializing meter", logger.Fields("error", err.Error()))
		}
		defer func() { _ = mp.Shutdown(context.Background()) }()
	}

	db, err := store.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("opening database", logger.Fields("error", err.Error()))
	}
	defer func() { _ = db.Close() }()

	uploads, err := storage.NewStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal("preparing upload storage", logger.Fields("error", err.Error()))
	}
	artifacts, err := storage.NewStore(cfg.Storage.ArtifactDir)
	if err != nil {
		log.Fatal("preparing artifact storage", logger.Fields("error", err.Error()))
	}

	collab, err := buildCollaborators(cfg, artifacts)
	if err != nil {
		log.Fatal("wiring providers", logger.Fields("error", err.Error()))
	}

	orch, err := pipeline.New(cfg.Pipeline, collab, log)
	if err != nil {
		log.Fatal("building pipeline", logger.Fields("error", err.Error()))
	}
	metrics, err := observability.NewRunMetrics(observability.Meter(serviceName))
	if err != nil {
		log.Warn("metrics unavailable", logger.Fields("error", err.Error()))
	} else {
		orch.SetMetrics(metrics)
	}

	tokens, err := auth.NewTokens(cfg.Auth)
	if err != nil {
		log.Fatal("configuring auth", logger.Fields("error", err.Error()))
	}
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)

	srv := server.New(cfg.Server, log)
	handlers := server.NewHandlers(
		store.NewUsers(db),
		store.NewRecordings(db),
		tokens,
		hasher,
		orch,
		collab,
		uploads,
		log,
	)
	handlers.Routes(srv.Engine())

	if err := srv.Start(ctx); err != nil {
		log.Fatal("starting server", logger.Fields("error", err.Error()))
	}

	<-ctx.Done()
	log.Info("shutdown signal received")
	if err := srv.Stop(context.Background()); err != nil {
		log.Error("server shutdown", logger.Fields("error", err.Error()))
		os.Exit(1)
	}
}

// buildCollaborators registers the provider factories and creates the
// configured instances.
func buildCollaborators(cfg config.AppConfig, artifacts *storage.Store) (pipeline.Collaborators, error) {
	diarReg := diarization.NewRegistry()
	diarReg.RegisterFactory(pyannote.ProviderName, pyannote.Factory())
	diarizer, err := diarReg.Create(pyannote.ProviderName, map[string]any{
		"base_url": cfg.Providers.Diarization.BaseURL,
		"timeout":  cfg.Providers.Diarization.Timeout,
	})
	if err != nil {
		return pipeline.Collaborators{}, err
	}

	transReg := transcription.NewRegistry()
	transReg.RegisterFactory(whisper.ProviderName, whisper.Factory())
	transcriber, err := transReg.Create(whisper.ProviderName, map[string]any{
		"base_url": cfg.Providers.Transcription.BaseURL,
		"model":    cfg.Providers.Transcription.Model,
		"timeout":  cfg.Providers.Transcription.Timeout,
	})
	if err != nil {
		return pipeline.Collaborators{}, err
	}

	var summarizer summarize.Provider = bart.NewProvider(cfg.Providers.Summarize)

	var reporter summarize.ReportProvider
	if cfg.Providers.Report.APIKey != "" {
		reporter = groq.NewProvider(cfg.Providers.Report)
	}

	return pipeline.Collaborators{
		Diarizer:    diarizer,
		Transcriber: transcriber,
		Summarizer:  summarizer,
		Reporter:    reporter,
		Converter:   media.NewConverter(),
		Exporter:    export.NewExporter(cfg.Storage.ExportDir),
		Artifacts:   artifacts,
	}, nil
}
