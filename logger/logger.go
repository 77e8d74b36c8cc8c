// Package logger provides request scoped logrus loggers.
package logger

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the request id in requests and responses.
const RequestIDHeader = "X-Request-Id"

const requestIDLoggerKey = "requestID"

type contextKeyRequestLoggerType struct{}

var contextKeyRequestLogger = &contextKeyRequestLoggerType{}

// InitLogger sets up the custom time formatter for all log statements.
func InitLogger(logLevel logrus.Level) {
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	logrus.SetFormatter(customFormatter)
	logrus.SetLevel(logLevel)
}

// ParseLevel parses a level name and falls back to info for unknown names.
func ParseLevel(name string) logrus.Level {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// AddRequestID installs a middleware that attaches a logger with a request id
// to every request. An incoming X-Request-Id is reused when it is a valid UUID.
func AddRequestID(router *mux.Router) {
	reqID := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.New().String()
			}
			ctx, _ := ContextWithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
	router.Use(reqID)
}

// ContextWithRequestID returns a context carrying a logger tagged with id.
func ContextWithRequestID(ctx context.Context, id string) (context.Context, *logrus.Entry) {
	if ctx == nil {
		ctx = context.Background()
	}
	rlog := logrus.WithField(requestIDLoggerKey, id)
	return context.WithValue(ctx, contextKeyRequestLogger, rlog), rlog
}

// FromContext returns the logger from the context. If the context does not
// have a logger the default logger is returned.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if rlog, ok := ctx.Value(contextKeyRequestLogger).(*logrus.Entry); ok {
			return rlog
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// RequestIDFromContext returns the request id for the given context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	rlog, ok := ctx.Value(contextKeyRequestLogger).(*logrus.Entry)
	if !ok {
		return ""
	}
	id, _ := rlog.Data[requestIDLoggerKey].(string)
	return id
}
