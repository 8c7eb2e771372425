package invalidator

import (
	"context"

	"github.com/fhuszti/medias-metadata-go/internal/config"
	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

// FromConfig builds the invalidator selected by INVALIDATION_MODE.
func FromConfig(ctx context.Context, cfg *config.Settings) port.Invalidator {
	switch cfg.InvalidationMode {
	case config.InvalidationHTTP:
		logger.Infof(ctx, "✅  Page invalidation through %s", cfg.InvalidationURL)
		return NewHTTP(cfg.InvalidationURL, cfg.InvalidationToken, nil)
	case config.InvalidationNone:
		logger.Warn(ctx, "⚠️  Page invalidation disabled")
		return NewNoop()
	default:
		client := NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		logger.Infof(ctx, "✅  Page invalidation through redis channel %q", cfg.InvalidationChannel)
		return NewRedis(client, cfg.InvalidationKeyPrefix, cfg.InvalidationChannel)
	}
}
