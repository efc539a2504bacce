package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Info(action, message, requestID string, details map[string]interface{})
	Debug(action, message, requestID string, details map[string]interface{})
	Warn(action, message, requestID string, details map[string]interface{})
	Error(action, message, requestID string, details map[string]interface{}, err error)
}

type logrusLogger struct {
	entry *logrus.Entry
}

// New пишет JSON-строки в stdout
func New(service, level string) Logger {
	return NewWithWriter(service, level, os.Stdout)
}

func NewWithWriter(service, level string, w io.Writer) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  FieldTimestamp,
			logrus.FieldKeyLevel: FieldLevel,
			logrus.FieldKeyMsg:   FieldMessage,
		},
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	hostname, _ := os.Hostname()

	return &logrusLogger{
		entry: l.WithFields(logrus.Fields{
			FieldService:  service,
			FieldHostname: hostname,
		}),
	}
}

// NewNop discards everything. Used by tests.
func NewNop() Logger {
	return NewWithWriter("nop", "panic", io.Discard)
}

func (l *logrusLogger) Info(action, message, requestID string, details map[string]interface{}) {
	l.with(action, requestID, details, nil).Info(message)
}

func (l *logrusLogger) Debug(action, message, requestID string, details map[string]interface{}) {
	l.with(action, requestID, details, nil).Debug(message)
}

func (l *logrusLogger) Warn(action, message, requestID string, details map[string]interface{}) {
	l.with(action, requestID, details, nil).Warn(message)
}

func (l *logrusLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
	l.with(action, requestID, details, err).Error(message)
}

func (l *logrusLogger) with(action, requestID string, details map[string]interface{}, err error) *logrus.Entry {
	fields := logrus.Fields{
		FieldAction:    action,
		FieldRequestID: requestID,
	}
	if len(details) > 0 {
		fields[FieldDetails] = details
	}
	if err != nil {
		fields[FieldError] = ErrorInfo{
			Msg:   err.Error(),
			Stack: err.Error(),
		}
	}
	return l.entry.WithFields(fields)
}
