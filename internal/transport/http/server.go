package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"vaxslot/internal/metrics"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type RouterConfig struct {
	Service        bookingService
	Logger         *slog.Logger
	Collector      *metrics.Collector
	Gatherer       prometheus.Gatherer
	DB             Pinger
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestID(),
		AccessLog(log.With(slog.String("component", "http.access"))),
		Metrics(cfg.Collector),
		RequestTimeout(cfg.RequestTimeout),
	)

	h := NewAppointmentsHandler(cfg.Service, log, cfg.Collector)

	router.GET("/", h.Welcome)
	router.GET("/appointment/check", h.CheckSlot)
	router.GET("/appointment/check/all", h.ListAll)
	router.GET("/appointment/check/all_available/:date", h.ListByDate)
	router.POST("/appointment/book", h.Book)
	router.DELETE("/appointment/cancel/:user_id", h.Cancel)

	router.GET("/healthz", healthHandler(cfg.DB))
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(cfg.Gatherer)))
	}

	return router
}

func healthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
