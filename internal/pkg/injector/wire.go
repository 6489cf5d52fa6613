//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	assetsbiz "github.com/lk2023060901/ai-translate-backend/internal/assets/biz"
	assetsservice "github.com/lk2023060901/ai-translate-backend/internal/assets/service"
	"github.com/lk2023060901/ai-translate-backend/internal/conf"
	"github.com/lk2023060901/ai-translate-backend/internal/data"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-translate-backend/internal/server"
)

// ProviderSet is the Wire provider set for all dependencies
var ProviderSet = wire.NewSet(
	// Data layer
	data.NewData,

	// Repositories
	repositoryProviderSet,

	// Use cases
	assetsbiz.NewSectionUseCase,
	assetsbiz.NewFileUseCase,

	// HTTP services
	assetsservice.NewAssetService,

	// Servers
	serverProviderSet,
)

var repositoryProviderSet = wire.NewSet(
	provideFileRepo,
	provideSectionRepo,
	provideAssetStore,
)

var serverProviderSet = wire.NewSet(
	provideJWTManager,
	provideScriptEvaluator,
	provideReadinessChecker,
	server.NewHTTPServer,
	server.NewGRPCServer,
)

// InitializeApp initializes the application with Wire
func InitializeApp(config *conf.Config, log *logger.Logger) (*App, func(), error) {
	wire.Build(ProviderSet, newApp)
	return nil, nil, nil
}
