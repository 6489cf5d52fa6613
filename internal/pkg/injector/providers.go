package injector

import (
	assetsbiz "github.com/lk2023060901/ai-translate-backend/internal/assets/biz"
	assetsdata "github.com/lk2023060901/ai-translate-backend/internal/assets/data"
	"github.com/lk2023060901/ai-translate-backend/internal/auth"
	"github.com/lk2023060901/ai-translate-backend/internal/auth/middleware"
	"github.com/lk2023060901/ai-translate-backend/internal/conf"
	"github.com/lk2023060901/ai-translate-backend/internal/data"
	"github.com/lk2023060901/ai-translate-backend/internal/server"
)

// Repository providers

func provideFileRepo(d *data.Data) assetsbiz.FileRepo {
	return assetsdata.NewFileRepo(d.DB)
}

func provideSectionRepo(d *data.Data) assetsbiz.SectionRepo {
	return assetsdata.NewSectionRepo(d.DB)
}

func provideAssetStore(d *data.Data) assetsbiz.AssetStore {
	return assetsdata.NewAssetStore(d.MinIOClient)
}

// Infrastructure providers

func provideJWTManager(config *conf.Config) *auth.JWTManager {
	return auth.NewJWTManager(config.Auth.JWTSecret, config.Auth.JWTIssuer)
}

func provideScriptEvaluator(d *data.Data) middleware.ScriptEvaluator {
	return d.RedisClient
}

func provideReadinessChecker(d *data.Data) server.ReadinessChecker {
	return d
}
