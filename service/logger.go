package service

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/maternion/matollama/internal/ui"
)

var (
	logger          *log.Logger
	indicatorActive bool // Tracks if indicator was active before logging
)

func NewLogger() *log.Logger {
	logger = log.New()
	return logger
}

func GetLogger() *log.Logger {
	if logger == nil {
		logger = NewLogger()
	}
	return logger
}

func InitLogger() {
	logger.SetOutput(os.Stderr)
	logger.SetLevel(log.InfoLevel)
	logger.SetFormatter(&log.TextFormatter{
		DisableColors:    false,
		DisableTimestamp: true,
	})
}

// BeforeLog stops the spinner so log lines don't overlap its redraw.
func BeforeLog() {
	if logger != nil {
		indicatorActive = ui.GetIndicator().IsActive()
		ui.GetIndicator().Stop()
	}
}

// AfterLog restarts the spinner if it was running before the log line.
func AfterLog() {
	if logger != nil && indicatorActive {
		ui.GetIndicator().Start("")
	}
}

func Infof(format string, args ...interface{}) {
	if logger != nil {
		BeforeLog()
		logger.Infof(format, args...)
		AfterLog()
	}
}

func Infoln(args ...interface{}) {
	if logger != nil {
		BeforeLog()
		logger.Infoln(args...)
		AfterLog()
	}
}

func Debugf(format string, args ...interface{}) {
	if logger != nil {
		if logger.Level == log.DebugLevel {
			BeforeLog()
		}
		logger.Debugf(format, args...)
		if logger.Level == log.DebugLevel {
			AfterLog()
		}
	}
}

func Warnf(format string, args ...interface{}) {
	if logger != nil {
		BeforeLog()
		logger.Warnf(format, args...)
		AfterLog()
	}
}

func Errorf(format string, args ...interface{}) {
	if logger != nil {
		BeforeLog()
		logger.Errorf(format, args...)
		AfterLog()
	}
}

func Errorln(args ...interface{}) {
	if logger != nil {
		BeforeLog()
		logger.Errorln(args...)
		AfterLog()
	}
}
