package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docgen-api/internal/interfaces/http/dto"
)

// DocumentRoutes 文书路由注册
type DocumentRoutes interface {
	Register(r gin.IRoutes)
}

// HealthRoutes 首页与健康检查
type HealthRoutes interface {
	Root(c *gin.Context)
	Health(c *gin.Context)
	Live(c *gin.Context)
	Ready(c *gin.Context)
}

func (r *Router) setupRoutes(docs DocumentRoutes, health HealthRoutes) {
	r.engine.GET("/", health.Root)
	r.engine.GET("/health", health.Health)
	r.engine.GET("/ready", health.Ready)
	r.engine.GET("/live", health.Live)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	docs.Register(r.engine)

	r.engine.NoRoute(dto.NotFound)
}
