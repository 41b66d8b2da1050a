package logger

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/maxaizer/job-tracker/pkg/loki"
	log "github.com/sirupsen/logrus"
)

const lokiSource = "loki"

var pusher *loki.Pusher

// logrusAdapter reports pusher failures back through logrus, tagged so lokiHook skips them.
type logrusAdapter struct{}

func (l *logrusAdapter) Error(msg string, args ...any) {
	log.WithFields(log.Fields{"args": args, "source": lokiSource}).Error(msg)
}

type lokiHook struct {
	pusher   *loki.Pusher
	minLevel log.Level
}

func (h *lokiHook) Fire(entry *log.Entry) error {
	if entry.Data["source"] == lokiSource {
		return nil
	}

	caller := ""
	if entry.Caller != nil {
		caller = filepath.Base(entry.Caller.Function) + ":" + strconv.Itoa(entry.Caller.Line)
	}

	errorType, _ := entry.Data[ErrorTypeField].(string)

	return h.pusher.Push(loki.LogEntry{
		Level:     entry.Level.String(),
		Message:   entry.Message,
		Caller:    caller,
		ErrorType: errorType,
	})
}

func (h *lokiHook) Levels() []log.Level {
	var levels []log.Level
	for _, level := range log.AllLevels {
		if level <= h.minLevel {
			levels = append(levels, level)
		}
	}
	return levels
}

func addLokiHook(ctx context.Context, cfg loki.Config, minLevel log.Level) error {
	p, err := loki.New(ctx, cfg, &logrusAdapter{})
	if err != nil {
		return err
	}
	pusher = p
	log.AddHook(&lokiHook{pusher: p, minLevel: minLevel})
	log.Info("Loki logging enabled")
	return nil
}
