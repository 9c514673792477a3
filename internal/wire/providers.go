package wire

import (
	"context"

	"docgen-api/internal/application/document"
	"docgen-api/internal/application/narrative"
	"docgen-api/internal/application/render"
	"docgen-api/internal/config"
	"docgen-api/internal/infrastructure/llm"
	"docgen-api/internal/interfaces/http/handler"
	"docgen-api/internal/interfaces/http/router"
	"docgen-api/pkg/logger"
)

// ProvideEinoFactory 提供模型工厂，cleanup 时关闭已缓存的客户端
func ProvideEinoFactory(cfg *config.Config) (*llm.EinoFactory, func(), error) {
	f := llm.NewEinoFactory(cfg)
	cleanup := func() {
		if err := f.Close(); err != nil {
			logger.Warn(context.Background(), "failed to close llm clients", "error", err.Error())
		}
	}
	return f, cleanup, nil
}

func ProvideRenderer() (*render.Renderer, error) {
	return render.New()
}

// ProvideRegistry 注册全部文书类型
func ProvideRegistry(r *render.Renderer, g *narrative.Generator) (*document.Registry, error) {
	return document.NewRegistry(document.DefaultTypes(r, g)...)
}

func ProvidePackager() document.Packager {
	return document.DocxPackager
}

func ProvideRouter(cfg *config.Config, docs *handler.DocumentHandler, health *handler.HealthHandler) *router.Router {
	return router.New(cfg, docs, health)
}
