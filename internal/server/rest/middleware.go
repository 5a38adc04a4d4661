package rest

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
	"github.com/dmitrijs2005/blogkeeper/internal/telemetry"
)

const (
	userIDKey       = "userID"
	requestIDHeader = "X-Request-ID"
)

// authMiddleware admits requests carrying a valid access token and stores
// the caller's user id on both the request context and the gin context.
func (s *HTTPServer) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ParseBearer(c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			s.writeError(c, common.WrapError(common.KindUnauthorized, "Authorization header missing or malformed", err))
			return
		}

		userID, err := s.tokens.VerifyAccessToken(token)
		if err != nil {
			s.writeError(c, common.WrapError(common.KindForbidden, "Invalid or expired token", err))
			return
		}

		c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), userID))
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// principal returns the authenticated user id set by authMiddleware.
func principal(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()

		s.logger.Info(c.Request.Context(), "HTTP request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// tracing starts a server span per request, continuing any trace passed in
// W3C traceparent headers.
func (s *HTTPServer) tracing() gin.HandlerFunc {
	tracer := telemetry.Tracer("github.com/dmitrijs2005/blogkeeper/internal/server/rest")

	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Request.Method),
				attribute.String("http.route", route),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

func (s *HTTPServer) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.writeError(c, common.WrapError(common.KindInternal, "Server error", fmt.Errorf("panic: %v", recovered)))
	})
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", common.AuthorizationHeaderName, requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cors.New(cfg)
	}

	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	cfg.AllowOriginFunc = func(origin string) bool { return allowed[origin] }
	cfg.AllowCredentials = true
	return cors.New(cfg)
}
