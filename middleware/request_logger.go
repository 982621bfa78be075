package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	servertiming "github.com/mitchellh/go-server-timing"
	"go.uber.org/zap"

	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/observability"
)

const requestIDHeader = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.Must(uuid.NewV7()).String()
		}
		c.Set(models.RequestIDContextKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs each request through zap and records HTTP metrics.
func RequestLogger(logger *zap.Logger, metrics *observability.StoreMetrics) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		metrics.RecordHTTP(c.Request.Method, c.FullPath(), status, elapsed)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", c.GetString(models.RequestIDContextKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// ServerTiming attaches a Server-Timing header collector to the request
// context. Metrics started by handlers are written out with the response
// headers.
func ServerTiming() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := &servertiming.Header{}
		c.Request = c.Request.WithContext(servertiming.NewContext(c.Request.Context(), h))
		c.Writer = &timingWriter{ResponseWriter: c.Writer, timing: h}
		c.Next()
	}
}

type timingWriter struct {
	gin.ResponseWriter
	timing  *servertiming.Header
	written bool
}

func (w *timingWriter) flushTiming() {
	if w.written {
		return
	}
	w.written = true
	if value := w.timing.String(); value != "" {
		w.ResponseWriter.Header().Set(servertiming.HeaderKey, value)
	}
}

func (w *timingWriter) WriteHeader(code int) {
	w.flushTiming()
	w.ResponseWriter.WriteHeader(code)
}

func (w *timingWriter) WriteHeaderNow() {
	w.flushTiming()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *timingWriter) Write(data []byte) (int, error) {
	w.flushTiming()
	return w.ResponseWriter.Write(data)
}

func (w *timingWriter) WriteString(s string) (int, error) {
	w.flushTiming()
	return w.ResponseWriter.WriteString(s)
}
