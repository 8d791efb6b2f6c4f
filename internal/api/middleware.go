package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler recovers handler panics and answers with a generic 500.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// RequestLogger logs one line per request once the handler has finished.
// Bodies are not logged; profiles and uploads are user data.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if id := c.Param("id"); id != "" {
			fields = append(fields, zap.String("session", id))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request failed", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request rejected", fields...)
		default:
			logger.Info("request completed", fields...)
		}
	}
}

// maxTrackedIPs bounds the limiter cache. An evicted IP starts again with a
// full bucket.
const maxTrackedIPs = 10000

// ipLimiter hands out one token bucket per client IP, keeping the most
// recently seen IPs.
type ipLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func newIPLimiter(perMinute, capacity int) *ipLimiter {
	if perMinute <= 0 {
		perMinute = 100
	}
	if capacity <= 0 {
		capacity = maxTrackedIPs
	}
	// lru.New only fails for a non-positive size.
	limiters, _ := lru.New[string, *rate.Limiter](capacity)
	return &ipLimiter{
		limiters: limiters,
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (s *ipLimiter) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters.Add(ip, limiter)
	}
	return limiter
}

// RateLimit allows perMinute requests per client IP, with a burst of the
// same size.
func RateLimit(perMinute int, logger *zap.Logger) gin.HandlerFunc {
	store := newIPLimiter(perMinute, maxTrackedIPs)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip).Allow() {
			logger.Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Message: "Rate limit exceeded. Try again later.",
			})
			return
		}
		c.Next()
	}
}
