package elev

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// InitLogger installs a compact text logger as the slog default. When
// logFile is set, output is written to stderr and the file. The returned
// function closes the file.
func InitLogger(level slog.Level, logFile string) (func() error, error) {
	var out io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file - %w", err)
		}
		out = io.MultiWriter(os.Stderr, f)
		closeFn = f.Close
	}

	slog.SetDefault(slog.New(NewLogHandler(out, level)))
	return closeFn, nil
}

// NewLogHandler returns a text handler that trims time to 15:04:05 and
// source to file:line.
func NewLogHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					file := source.File
					if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
						file = file[lastSlash+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
				}
			}
			return a
		},
	})
}
