package config

import (
	"fmt"
	"time"

	"github.com/skillsenselab/meetscribe/auth"
	"github.com/skillsenselab/meetscribe/diarization/pyannote"
	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/pipeline"
	"github.com/skillsenselab/meetscribe/server"
	"github.com/skillsenselab/meetscribe/store"
	"github.com/skillsenselab/meetscribe/summarize/bart"
	"github.com/skillsenselab/meetscribe/summarize/groq"
	"github.com/skillsenselab/meetscribe/transcription/whisper"
)

// StorageConfig holds the on-disk layout for uploads, exports, and run
// artifacts.
type StorageConfig struct {
	UploadDir   string `mapstructure:"upload_dir"`
	ExportDir   string `mapstructure:"export_dir"`
	ArtifactDir string `mapstructure:"artifact_dir"`
}

// ApplyDefaults fills zero fields with sensible defaults.
func (c *StorageConfig) ApplyDefaults() {
	if c.UploadDir == "" {
		c.UploadDir = "data/uploads"
	}
	if c.ExportDir == "" {
		c.ExportDir = "data/exports"
	}
	if c.ArtifactDir == "" {
		c.ArtifactDir = "data/artifacts"
	}
}

// TelemetryConfig controls OpenTelemetry export.
type TelemetryConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Endpoint   string        `mapstructure:"endpoint"`
	Insecure   bool          `mapstructure:"insecure"`
	SampleRate float64       `mapstructure:"sample_rate"`
	Interval   time.Duration `mapstructure:"interval"`
}

// ApplyDefaults fills zero fields with sensible defaults.
func (c *TelemetryConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// ProvidersConfig holds the external model backends.
type ProvidersConfig struct {
	Diarization   pyannote.Config `mapstructure:"diarization"`
	Transcription whisper.Config  `mapstructure:"transcription"`
	Summarize     bart.Config     `mapstructure:"summarize"`
	Report        groq.Config     `mapstructure:"report"`
}

// AppConfig is the complete meetscribe configuration.
type AppConfig struct {
	Name        string        `mapstructure:"name"`
	Environment string        `mapstructure:"environment"`
	Version     string        `mapstructure:"version"`
	Debug       bool          `mapstructure:"debug"`
	Logging     logger.Config `mapstructure:"logging"`

	Server    server.Config   `mapstructure:"server"`
	Database  store.Config    `mapstructure:"database"`
	Auth      auth.Config     `mapstructure:"auth"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Pipeline  pipeline.Config `mapstructure:"pipeline"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ApplyDefaults applies default values to every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "meetscribe"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Pipeline.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate validates every section.
func (c *AppConfig) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("config.database: %w", err)
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("config.auth: %w", err)
	}
	return nil
}
