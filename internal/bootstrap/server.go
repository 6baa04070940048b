package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/carrental/api"
	"github.com/Domenick1991/carrental/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Reservations *api.ReservationHandler
	Vehicles     *api.VehicleHandler
	Users        *api.UserHandler
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, h Handlers) error {
	router := newRouter(cfg, log, h)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	h.Reservations.Register(router.Group("/reservations"))
	h.Vehicles.Register(router.Group("/vehicles"))
	h.Users.Register(router.Group("/users"))

	router.GET("/vehicles/:id/availability", h.Reservations.CheckAvailability)
	router.GET("/users/:id/reservations", h.Reservations.ListByUser)
	router.GET("/users/:id/reservations/:reservationId", h.Reservations.GetForUser)

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFile("/openapi.json", filepath.Join(cfg.HTTP.SwaggerDir, "openapi.json"))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))
	}

	return router
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-Id", requestID)

		c.Next()

		log.Info("http request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
