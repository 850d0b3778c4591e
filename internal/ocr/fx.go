package ocr

import (
	"github.com/smallbiznis/gstdesk/internal/cache"
	"github.com/smallbiznis/gstdesk/internal/config"
	"github.com/smallbiznis/gstdesk/internal/ocr/service"
	"go.uber.org/fx"
)

func provideExtractionCache(cfg config.Config) cache.ExtractionCache {
	return cache.NewExtractionCache(cfg.OCRCacheTTL)
}

var Module = fx.Module("ocr.service",
	fx.Provide(provideExtractionCache),
	fx.Provide(service.NewClient),
)
