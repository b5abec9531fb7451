package logging

import (
	"io"
	"os"
	"time"

	"github.com/localnerve/starwars-api/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

// New creates the application logger from configuration
func New(cfg *config.Config) *logrus.Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput creates the application logger writing to out
func NewWithOutput(cfg *config.Config, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// GormLogger adapts the application logger for GORM.
// SQL statements are only traced when sqlLog is set.
func GormLogger(log *logrus.Logger, sqlLog bool) logger.Interface {
	level := logger.Warn
	if sqlLog {
		level = logger.Info
	}

	return logger.New(log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
