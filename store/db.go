package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/skillsenselab/meetscribe/logger"
)

// DB wraps a GORM connection for the meetscribe schema.
type DB struct {
	gorm *gorm.DB
	log  *logger.Logger
	cfg  Config
}

// Open connects to the configured database with retry and optionally runs
// schema migration.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*DB, error) {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("store")

	slowThreshold, _ := time.ParseDuration(cfg.SlowQueryThreshold)
	gormCfg := &gorm.Config{
		Logger:         newGormLogger(log, slowThreshold, parseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("database connection canceled: %w", ctx.Err())
		}
		db, err = gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
		if err == nil {
			break
		}
		if attempt < cfg.MaxRetries {
			backoff := time.Duration(attempt) * time.Second
			log.Warn("database connection failed, retrying", logger.Fields(
				"attempt", attempt,
				"error", err.Error(),
				"backoff", backoff.String(),
			))
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("database connection canceled: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to database after %d attempts: %w", cfg.MaxRetries, err)
	}

	s := &DB{gorm: db, log: log, cfg: cfg}
	if cfg.AutoMigrate {
		if err := s.Migrate(); err != nil {
			return nil, err
		}
	}
	log.Info("database ready", logger.Fields("driver", cfg.Driver, "dsn", cfg.DSN))
	return s, nil
}

// Migrate runs schema migration for all models.
func (d *DB) Migrate() error {
	if err := d.gorm.AutoMigrate(&User{}, &Recording{}, &SpeakerSummary{}, &Document{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithContext returns a GORM session scoped to the given context.
func (d *DB) WithContext(ctx context.Context) *gorm.DB {
	return d.gorm.WithContext(ctx)
}

// --- GORM logger adapter ---

func parseLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

type gormLoggerAdapter struct {
	log           *logger.Logger
	logLevel      gormlogger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(log *logger.Logger, slowThreshold time.Duration, logLevel gormlogger.LogLevel) gormlogger.Interface {
	return &gormLoggerAdapter{
		log:           log.WithComponent("gorm"),
		logLevel:      logLevel,
		slowThreshold: slowThreshold,
	}
}

func (l *gormLoggerAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &gormLoggerAdapter{log: l.log, logLevel: level, slowThreshold: l.slowThreshold}
}

func (l *gormLoggerAdapter) Info(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Info {
		l.log.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLoggerAdapter) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Warn {
		l.log.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLoggerAdapter) Error(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Error {
		l.log.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLoggerAdapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && err != gorm.ErrRecordNotFound:
		l.log.Error("query error", logger.Fields("sql", sql, "duration", elapsed.String(), "rows", rows, "error", err.Error()))
	case elapsed > l.slowThreshold:
		l.log.Warn("slow query", logger.Fields("sql", sql, "duration", elapsed.String(), "rows", rows))
	case l.logLevel >= gormlogger.Info:
		l.log.Debug("query", logger.Fields("sql", sql, "duration", elapsed.String(), "rows", rows))
	}
}
