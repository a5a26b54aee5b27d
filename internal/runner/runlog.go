package runner

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// RunLogName is the NDJSON diagnostics file written into the output directory.
const RunLogName = "runner.ndjson"

// OpenRunLog creates path and returns a logger writing one JSON object per
// line to it: ts, level, msg, plus attributes such as scope.
func OpenRunLog(path string) (*slog.Logger, io.Closer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return NewRunLogger(f), f, nil
}

// NewRunLogger returns the NDJSON logger over w.
func NewRunLogger(w io.Writer) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				a.Key = "ts"
			case slog.LevelKey:
				a.Value = slog.StringValue(strings.ToLower(a.Value.String()))
			}
			return a
		},
	})
	return slog.New(h)
}
