//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"github.com/google/wire"

	"docgen-api/internal/application/document"
	"docgen-api/internal/application/narrative"
	"docgen-api/internal/config"
	"docgen-api/internal/infrastructure/llm"
	"docgen-api/internal/interfaces/http/handler"
	"docgen-api/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		LLMSet,
		DocumentSet,
		RouterSet,
	)
	return nil, nil, nil
}

// LLMSet LLM 与 MFA 生成器提供者集合
var LLMSet = wire.NewSet(
	ProvideEinoFactory,
	wire.Bind(new(narrative.ChatModelFactory), new(*llm.EinoFactory)),
	narrative.OptionsFromConfig,
	narrative.NewGenerator,
)

// DocumentSet 文书流水线提供者集合
var DocumentSet = wire.NewSet(
	ProvideRenderer,
	ProvideRegistry,
	ProvidePackager,
	document.NewService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewDocumentHandler,
	handler.NewHealthHandler,
	ProvideRouter,
)
