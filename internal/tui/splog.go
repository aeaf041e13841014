package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/x/ansi"
	"gopkg.in/natefinch/lumberjack.v2"

	"ghup.dev/ghup/internal/uploader"
)

// consoleHandler prints the bare message of a record; attributes are for the log file
type consoleHandler struct {
	writer io.Writer
	debug  bool
	quiet  *bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level > slog.LevelDebug || h.debug
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil
	}
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *consoleHandler) WithGroup(_ string) slog.Handler { return h }

// fanoutHandler sends each record to every handler that accepts its level
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, handler := range h {
		out[i] = handler.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, handler := range h {
		out[i] = handler.WithGroup(name)
	}
	return out
}

// envInt reads a non-negative integer setting, falling back to def
func envInt(key string, def int, allowZero bool) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 0 || (n == 0 && !allowZero) {
		return def
	}
	return n
}

// newRotatingLog returns the log file writer. Size (MB), backups and age (days)
// default to 1, 2 and 30 and can be changed with GHUP_LOG_MAX_SIZE,
// GHUP_LOG_MAX_BACKUPS and GHUP_LOG_MAX_AGE.
func newRotatingLog(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    envInt("GHUP_LOG_MAX_SIZE", 1, false),
		MaxBackups: envInt("GHUP_LOG_MAX_BACKUPS", 2, true),
		MaxAge:     envInt("GHUP_LOG_MAX_AGE", 30, false),
	}
}

// newFileHandler writes timestamped key=value lines with styling removed
func newFileHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
			case slog.MessageKey:
				return slog.String(a.Key, ansi.Strip(a.Value.String()))
			}
			return a
		},
	})
}

// Splog writes user-facing output to the console and, optionally, a
// structured record of everything to a rotating log file
type Splog struct {
	logger  *slog.Logger
	writer  io.Writer
	logFile io.Closer
	quiet   bool
}

// NewSplog creates a console-only splog.
// Debug messages are enabled when the DEBUG environment variable is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithConfig("", os.Getenv("DEBUG") != "")
	return splog
}

// NewSplogWithConfig creates a splog writing to stdout, with optional file logging
func NewSplogWithConfig(logFilePath string, debug bool) (*Splog, error) {
	return NewSplogWithWriter(os.Stdout, logFilePath, debug)
}

// NewSplogWithWriter creates a splog writing console output to writer
func NewSplogWithWriter(writer io.Writer, logFilePath string, debug bool) (*Splog, error) {
	splog := &Splog{writer: writer}

	handlers := fanoutHandler{&consoleHandler{writer: writer, debug: debug, quiet: &splog.quiet}}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		logFile := newRotatingLog(logFilePath)
		splog.logFile = logFile
		handlers = append(handlers, newFileHandler(logFile))
	}

	splog.logger = slog.New(handlers)
	return splog, nil
}

// SetQuiet suppresses console output while a TUI owns the terminal.
// The log file still receives everything.
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

// IsQuiet returns whether console output is suppressed
func (s *Splog) IsQuiet() bool {
	return s.quiet
}

// logf formats and logs a message. Without args the format is used as is.
func (s *Splog) logf(level slog.Level, marker, format string, args []interface{}, attrs ...slog.Attr) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.logger.LogAttrs(context.Background(), level, marker+msg, attrs...)
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	s.logf(slog.LevelInfo, "", format, args)
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...interface{}) {
	s.logf(slog.LevelWarn, "⚠️  ", format, args)
}

// Error writes an error message
func (s *Splog) Error(format string, args ...interface{}) {
	s.logf(slog.LevelError, "❌ ", format, args)
}

// Debug writes a message shown only in debug mode
func (s *Splog) Debug(format string, args ...interface{}) {
	s.logf(slog.LevelDebug, "", format, args)
}

// Tip writes a hint for the user
func (s *Splog) Tip(format string, args ...interface{}) {
	s.logf(slog.LevelInfo, "💡 ", format, args)
}

// Page writes raw content to the console
func (s *Splog) Page(content string) {
	if s.quiet {
		return
	}
	_, _ = fmt.Fprint(s.writer, content)
}

// Result logs the status line of one finished file. The log file also gets
// the paths, the action and, for failures, the error kind and HTTP status.
func (s *Splog) Result(res uploader.Result) {
	attrs := []slog.Attr{
		slog.String("local", res.LocalPath),
		slog.String("remote", res.RemotePath),
	}

	if !res.OK() {
		attrs = append(attrs,
			slog.String("kind", res.Err.Kind.String()),
			slog.String("reason", res.Err.Reason()),
		)
		if res.Err.StatusCode != 0 {
			attrs = append(attrs, slog.Int("status", res.Err.StatusCode))
		}
		s.logf(slog.LevelError, "", FormatResult(res), nil, attrs...)
		return
	}

	attrs = append(attrs, slog.String("action", string(res.Action)))
	if res.CommitSHA != "" {
		attrs = append(attrs, slog.String("commit", res.CommitSHA))
	}
	s.logf(slog.LevelInfo, "", FormatResult(res), nil, attrs...)
}

// Summary logs the closing line of a directory upload
func (s *Splog) Summary(succeeded, total int) {
	level := slog.LevelInfo
	if succeeded != total {
		level = slog.LevelWarn
	}
	s.logf(level, "", FormatSummary(succeeded, total), nil,
		slog.Int("succeeded", succeeded),
		slog.Int("failed", total-succeeded),
		slog.Int("total", total),
	)
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logFile != nil {
		return s.logFile.Close()
	}
	return nil
}
