// Package logger provides a comprehensive logging system with multiple outputs.
// It supports console logging with colors, file logging, and Discord webhook logging.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelCritical LogLevel = iota
	LevelError
	LevelWarn
	LevelSuccess
	LevelInfo
	LevelDebug
	LevelSystem
)

type levelStyle struct {
	name    string
	ansi    string
	discord int
	logrus  logrus.Level
}

// Critical maps to logrus Error so logrus never exits or panics on our behalf
var levelStyles = map[LogLevel]levelStyle{
	LevelCritical: {"CRITICAL", "\033[1;31m", 0xFF0000, logrus.ErrorLevel},
	LevelError:    {"ERROR", "\033[31m", 0xFF0000, logrus.ErrorLevel},
	LevelWarn:     {"WARN", "\033[33m", 0xFFFF00, logrus.WarnLevel},
	LevelSuccess:  {"SUCCESS", "\033[32m", 0x00FF00, logrus.InfoLevel},
	LevelInfo:     {"INFO", "\033[36m", 0x0000FF, logrus.InfoLevel},
	LevelDebug:    {"DEBUG", "\033[35m", 0x800080, logrus.DebugLevel},
	LevelSystem:   {"SYSTEM", "\033[34m", 0x808080, logrus.InfoLevel},
}

var unknownStyle = levelStyle{"UNKNOWN", "\033[0m", 0xFFFFFF, logrus.InfoLevel}

func (l LogLevel) style() levelStyle {
	if st, ok := levelStyles[l]; ok {
		return st
	}
	return unknownStyle
}

// String returns the string representation of the log level
func (l LogLevel) String() string { return l.style().name }

// Color returns the ANSI color code for the log level
func (l LogLevel) Color() string { return l.style().ansi }

// DiscordColor returns the Discord embed color for the log level
func (l LogLevel) DiscordColor() int { return l.style().discord }

func (l LogLevel) logrusLevel() logrus.Level { return l.style().logrus }

const colorReset = "\033[0m"

// Logger is the main logging structure
type Logger struct {
	logrus          *logrus.Logger
	console         io.Writer
	errorWebhookURL string
	logsWebhookURL  string
	logFile         *os.File
	errorFile       *os.File
	mu              sync.Mutex
}

// logger is the global logger instance
var (
	logger *Logger
	once   sync.Once
)

// Init initializes the global logger instance
func Init(errorWebhook, logsWebhook string) *Logger {
	once.Do(func() {
		logger = NewLogger(errorWebhook, logsWebhook)
	})
	return logger
}

// Get returns the global logger instance
func Get() *Logger {
	once.Do(func() {
		logger = NewLogger("", "")
	})
	return logger
}

// NewLogger creates a new Logger writing its files under ./logs
func NewLogger(errorWebhook, logsWebhook string) *Logger {
	return NewLoggerAt(filepath.Join(".", "logs"), errorWebhook, logsWebhook)
}

// NewLoggerAt creates a new Logger writing its files under logsDir
func NewLoggerAt(logsDir, errorWebhook, logsWebhook string) *Logger {
	l := &Logger{
		logrus:          logrus.New(),
		console:         os.Stdout,
		errorWebhookURL: errorWebhook,
		logsWebhookURL:  logsWebhook,
	}

	l.logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	l.logrus.SetLevel(logrus.DebugLevel)
	l.logrus.SetOutput(io.Discard)

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		fmt.Printf("Error creating logs directory: %v\n", err)
	}

	var err error
	l.logFile, err = os.OpenFile(filepath.Join(logsDir, "combined.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("Error opening combined log file: %v\n", err)
	} else {
		l.logrus.SetOutput(l.logFile)
	}

	l.errorFile, err = os.OpenFile(filepath.Join(logsDir, "error.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("Error opening error log file: %v\n", err)
	} else {
		l.logrus.AddHook(&errorFileHook{out: l.errorFile})
	}

	return l
}

// SetConsole redirects console output, mostly for tests
func (l *Logger) SetConsole(w io.Writer) {
	l.mu.Lock()
	l.console = w
	l.mu.Unlock()
}

// errorFileHook copies error entries into error.log
type errorFileHook struct {
	out io.Writer
}

func (h *errorFileHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

func (h *errorFileHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.out.Write(line)
	return err
}

// log is the internal logging function
func (l *Logger) log(level LogLevel, message string, prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")

	fmt.Fprintf(l.console, "[%s] [%s%s%s] [%s]: %s\n",
		timestamp,
		level.Color(),
		level.String(),
		colorReset,
		prefix,
		message,
	)

	l.logrus.WithFields(logrus.Fields{
		"prefix": prefix,
		"kind":   level.String(),
	}).Log(level.logrusLevel(), message)

	go l.sendToWebhook(level, message, prefix)
}

var webhookClient = &http.Client{Timeout: 5 * time.Second}

// webhookFor picks the error webhook for Critical and Error, the logs webhook otherwise
func (l *Logger) webhookFor(level LogLevel) string {
	if level <= LevelError {
		return l.errorWebhookURL
	}
	return l.logsWebhookURL
}

// sendToWebhook posts the log line as a Discord embed
func (l *Logger) sendToWebhook(level LogLevel, message, prefix string) {
	webhookURL := l.webhookFor(level)
	if webhookURL == "" {
		return
	}

	payload := map[string]interface{}{
		"embeds": []interface{}{map[string]interface{}{
			"title":       fmt.Sprintf("[%s] %s", level.String(), prefix),
			"description": fmt.Sprintf("```%s```", message),
			"color":       level.DiscordColor(),
			"timestamp":   time.Now().Format(time.RFC3339),
			"footer": map[string]string{
				"text": "🛡️ PancyWarden | PancyStudio",
			},
		}},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return
	}

	resp, err := webhookClient.Post(webhookURL, "application/json", bytes.NewReader(jsonData))
	if err != nil {
		return
	}
	resp.Body.Close()
}

// Close closes the log files
func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
	}
	if l.errorFile != nil {
		l.errorFile.Close()
	}
}

// Critical logs a critical message
func (l *Logger) Critical(message string, prefix string) {
	l.log(LevelCritical, message, prefix)
}

// Error logs an error message
func (l *Logger) Error(message string, prefix string) {
	l.log(LevelError, message, prefix)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, prefix string) {
	l.log(LevelWarn, message, prefix)
}

// Success logs a success message
func (l *Logger) Success(message string, prefix string) {
	l.log(LevelSuccess, message, prefix)
}

// Info logs an info message
func (l *Logger) Info(message string, prefix string) {
	l.log(LevelInfo, message, prefix)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, prefix string) {
	l.log(LevelDebug, message, prefix)
}

// System logs a system message
func (l *Logger) System(message string, prefix string) {
	l.log(LevelSystem, message, prefix)
}

// Package-level functions for convenience

func Critical(message string, prefix string) {
	Get().Critical(message, prefix)
}

func Error(message string, prefix string) {
	Get().Error(message, prefix)
}

func Warn(message string, prefix string) {
	Get().Warn(message, prefix)
}

func Success(message string, prefix string) {
	Get().Success(message, prefix)
}

func Info(message string, prefix string) {
	Get().Info(message, prefix)
}

func Debug(message string, prefix string) {
	Get().Debug(message, prefix)
}

func System(message string, prefix string) {
	Get().System(message, prefix)
}
