// Package logx writes diagnostic logs for background work (ledger polling,
// probe dispatch, the HTTP server) to a rotated file. Anything meant for the
// person at the terminal goes through the ui package instead.
package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

const (
	defaultMaxSizeMB  = 50
	defaultMaxAgeDays = 7
)

var (
	mu     sync.Mutex
	logger *log.Logger
)

func getLogFilename() string {
	if logFile := os.Getenv("EXPLORER_LOGFILE"); logFile != "" {
		return filepath.Join(".", "logs", logFile)
	}
	return filepath.Join(".", "logs", "explorer.log")
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func get() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = log.New(&lumberjack.Logger{
			Filename: getLogFilename(),
			MaxSize:  envInt("EXPLORER_LOGFILE_MAX_SIZE_MB", defaultMaxSizeMB), // megabytes
			MaxAge:   envInt("EXPLORER_LOGFILE_MAX_AGE_DAYS", defaultMaxAgeDays), // days
		}, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	}
	return logger
}

// SetOutput redirects all subsequent log lines to w. Tests use it to keep
// log files out of the working tree.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds)
}

func write(level, color, category string, content ...interface{}) {
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[%s][%s]%s", color, level, category, ColorReset)
	get().Printf("%s: %s", coloredCategory, message)
}

func Info(category string, content ...interface{}) {
	write("INFO", ColorGreen, category, content...)
}

func Error(category string, content ...interface{}) {
	write("ERROR", ColorRed, category, content...)
}

func Warn(category string, content ...interface{}) {
	write("WARN", ColorYellow, category, content...)
}

func Debug(category string, content ...interface{}) {
	write("DEBUG", ColorBlue, category, content...)
}

// Errorf logs an error message and returns a formatted error
func Errorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	Error("ERROR", err.Error())
	return err
}
