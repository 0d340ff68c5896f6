package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// SlogLogger implementa Logger sobre log/slog
type SlogLogger struct {
	inner *slog.Logger
}

// NewLogger cria uma nova instância de Logger escrevendo em stderr no nível informado.
// A chave "error" é normalizada para "err".
func NewLogger(level string) Logger {
	return NewWithWriter(os.Stderr, ParseLevel(level))
}

// NewWithWriter cria um Logger que escreve no writer informado
func NewWithWriter(w io.Writer, level slog.Level) Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	})
	return &SlogLogger{inner: slog.New(handler)}
}

// NewNop retorna um logger que descarta tudo
func NewNop() Logger {
	return &SlogLogger{inner: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel converte "debug", "info", "warn" ou "error" em slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With retorna um logger derivado com atributos fixos
func (l *SlogLogger) With(keysAndValues ...interface{}) Logger {
	return &SlogLogger{inner: l.inner.With(keysAndValues...)}
}

// Info registra uma mensagem de informação
func (l *SlogLogger) Info(msg string, keysAndValues ...interface{}) {
	l.inner.Log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

// Error registra uma mensagem de erro
func (l *SlogLogger) Error(msg string, keysAndValues ...interface{}) {
	l.inner.Log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

// Debug registra uma mensagem de debug
func (l *SlogLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.inner.Log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}

// Warn registra uma mensagem de aviso
func (l *SlogLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.inner.Log(context.Background(), slog.LevelWarn, msg, keysAndValues...)
}
