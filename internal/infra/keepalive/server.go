package keepalive

// Liveness listener for uptime monitors on hosting platforms.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"memecoin-radar/internal/features/session"
	"memecoin-radar/internal/infra/log"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const RootMessage = "🚀 MemeCoin Bot is running"

type HealthResponse struct {
	Status     string `json:"status"`
	Registered bool   `json:"registered"`
	Seen       int    `json:"seen"`
}

// NewRouter serves GET / with a static string and GET /healthz with session state.
func NewRouter(sess *session.Session) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware("keepalive"))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RootMessage)
	})

	router.GET("/healthz", func(c *gin.Context) {
		_, registered := sess.Destination()
		c.JSON(http.StatusOK, HealthResponse{
			Status:     "ok",
			Registered: registered,
			Seen:       sess.Seen().Len(),
		})
	})

	return router
}

// Run listens on port until ctx is cancelled, then shuts down within 5s.
func Run(ctx context.Context, port int, handler http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.LogSuccess("Keep-alive server listening", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("keep-alive server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("keep-alive server shutdown: %w", err)
	}
	return nil
}
