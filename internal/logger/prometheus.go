package logger

import (
	"github.com/maxaizer/job-tracker/internal/metrics"
	log "github.com/sirupsen/logrus"
)

const unknownErrorType = "unknown"

// errorCounterHook counts logged failures by their error type. Warnings are only
// counted when they carry a type, untyped errors fall under "unknown".
type errorCounterHook struct{}

func (h *errorCounterHook) Fire(entry *log.Entry) error {
	errorType, ok := entry.Data[ErrorTypeField].(string)
	if !ok || errorType == "" {
		if entry.Level == log.WarnLevel {
			return nil
		}
		errorType = unknownErrorType
	}

	metrics.ErrorsCounter.WithLabelValues(errorType).Inc()
	return nil
}

func (h *errorCounterHook) Levels() []log.Level {
	return []log.Level{log.WarnLevel, log.ErrorLevel, log.FatalLevel, log.PanicLevel}
}

func addErrorCounterHook() {
	log.AddHook(&errorCounterHook{})
	log.Debug("error counter hook enabled")
}
