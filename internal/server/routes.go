package server

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rshade/tdsdose/internal/logging"
)

// traceHeader carries the per-request trace id.
const traceHeader = "X-Trace-Id"

// SetupRouter configures all routes.
func SetupRouter(s *Server, tmpl *template.Template) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s))
	r.SetHTMLTemplate(tmpl)

	form := NewFormController(s)
	api := NewAPIController(s)

	r.GET("/", form.Show)
	r.POST("/", form.Submit)
	r.GET("/healthz", api.Health)

	if s.webDirExists() {
		r.Static("/assets", s.opts.App.WebDir)
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/app", api.App)
		v1.GET("/dosing/fields", api.Fields)
		v1.POST("/dosing/calculate", api.Calculate)
	}

	return r
}

// requestLogger attaches a trace id and a zerolog logger to every request and
// logs its outcome.
func requestLogger(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		traceID := c.GetHeader(traceHeader)
		if traceID == "" {
			traceID = logging.GenerateTraceID()
		}
		c.Header(traceHeader, traceID)

		ctx := logging.ContextWithTraceID(c.Request.Context(), traceID)
		ctx = s.opts.Logger.WithContext(ctx)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		logging.FromContext(ctx).Info().
			Str("component", "server").
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}
