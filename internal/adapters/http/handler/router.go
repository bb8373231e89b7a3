package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const healthCheckTimeout = 2 * time.Second

// Pinger は依存先の疎通確認を行います。pgxpool.Pool が満たします。
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps は NewRouter の依存です。
type RouterDeps struct {
	Employees      *EmployeeHTTPHandler
	DB             Pinger
	Logger         zerolog.Logger
	BasePath       string
	AllowedOrigins []string
}

// NewRouter はミドルウェアとルートを設定した gin.Engine を構築します。
func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(d.Logger), Recovery(d.Logger), CORS(d.AllowedOrigins))

	r.GET("/health", healthHandler(d.DB, d.Logger))

	api := r.Group(d.BasePath)
	d.Employees.Register(api)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "route not found"})
	})

	return r
}

func healthHandler(db Pinger, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				logger.Warn().Err(err).Msg("health check: database ping failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_error"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
