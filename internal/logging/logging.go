// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	"github.com/ArowuTest/gaspay-backend/internal/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup applies cfg to the standard logger. The returned closer releases
// the rotating file, if any.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if cfg.File == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}, nil
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	return rotator, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
