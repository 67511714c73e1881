// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	"github.com/RommelSharma23/travel-admin-sub001/internal/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup applies level, format and rotation settings to the global logger.
func Setup(cfg *config.Config) {
	level, errParse := log.ParseLevel(cfg.Log.Level)
	if errParse != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if cfg.Log.File == "" {
		log.SetOutput(os.Stderr)
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}

// ErrorDetail returns err's message in development and a generic fallback in
// production, so detailed causes never reach production logs or responses.
func ErrorDetail(cfg *config.Config, err error) string {
	if err == nil {
		return ""
	}
	if cfg != nil && cfg.IsProduction() {
		return "internal error"
	}
	return err.Error()
}
