package slog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

const levelDebug = 0
const levelInfo = 1
const levelWarn = 2
const levelError = 3
const separator = " - "

// Logger is a leveled logger writing to standard error, keeping standard
// output free for transferred file echoes and streamed data.
type Logger struct {
	logLevel int
	logger   *log.Logger
}

func NewLogger(prefix string) *Logger {
	return &Logger{
		logLevel: levelInfo,
		logger:   log.New(os.Stderr, prefix, log.LstdFlags|log.Lmsgprefix),
	}
}

func (l *Logger) WithDebug() {
	l.logLevel = levelDebug
}

func (l *Logger) WithInfo() {
	l.logLevel = levelInfo
}

func (l *Logger) WithWarn() {
	l.logLevel = levelWarn
}

func (l *Logger) WithError() {
	l.logLevel = levelError
}

func (l *Logger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

func (l *Logger) IsDebug() bool {
	return l.logLevel == levelDebug
}

func (l *Logger) Debugf(t string, args ...interface{}) {
	if l.logLevel == levelDebug {
		l.logger.Printf("[DEBUG]"+separator+t, args...)
	}
}

func (l *Logger) Infof(t string, args ...interface{}) {
	if l.logLevel <= levelInfo {
		l.logger.Printf("[INFO]"+separator+t, args...)
	}
}

func (l *Logger) Warnf(t string, args ...interface{}) {
	if l.logLevel <= levelWarn {
		l.logger.Printf("[WARN]"+separator+t, args...)
	}
}

func (l *Logger) Errorf(t string, args ...interface{}) {
	if l.logLevel <= levelError {
		l.logger.Printf("[ERROR]"+separator+t, args...)
	}
}

func (l *Logger) Fatalf(t string, args ...interface{}) {
	l.logger.Fatalf("[FATAL]"+separator+t, args...)
}

func (l *Logger) SetLevel(verbosity string) error {
	switch strings.ToUpper(verbosity) {
	case "DEBUG":
		l.WithDebug()
	case "INFO":
		l.WithInfo()
	case "WARN":
		l.WithWarn()
	case "ERROR":
		l.WithError()
	default:
		return fmt.Errorf("incorrect log level, expected one of [DEBUG|INFO|WARN|ERROR]")
	}
	return nil
}
