package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Level  string `doc:"log from debug, info, warn or error"`
	File   string `doc:"append logs to file, - for stdout"`
	Format string `doc:"format logs as text or json"         default:"text"`
	Source bool   `doc:"add source file and line to logs"`
}

func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		return nil, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

func output(file string) (io.Writer, error) {
	switch file {
	case "", "-":
		return os.Stdout, nil
	default:
		return os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	}
}

// New builds a logger from options. Unusable options are reset to their
// defaults and reported through the returned logger.
func New(options *Options) *slog.Logger {
	level, ok := level(options.Level)
	if !ok {
		options.Level = ""
		logger := New(options)
		logger.Warn("could not parse logger level")
		return logger
	}
	opts := slog.HandlerOptions{Level: level, AddSource: options.Source}

	if options.File == os.DevNull {
		return slog.New(slog.DiscardHandler)
	}
	w, err := output(options.File)
	if err != nil {
		options.File = ""
		logger := New(options)
		logger.Warn("could not open logger file", "err", err)
		return logger
	}

	switch strings.ToLower(options.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, &opts))
	case "text":
		return slog.New(slog.NewTextHandler(w, &opts))
	default:
		options.Format = "text"
		logger := New(options)
		logger.Warn("could not parse logger format")
		return logger
	}
}
