package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/gstdesk/internal/config"
)

const keyOCRExtract = "ocr:extract:%s"

// ExtractLimiter throttles calls to the external extraction service.
// A nil limiter (no redis configured) allows everything.
type ExtractLimiter struct {
	enabled bool
	bucket  *TokenBucket
	rate    float64
	burst   int
}

func NewExtractLimiter(cfg config.Config) *ExtractLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})

	return &ExtractLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    cfg.OCRRateLimitRPS,
		burst:   cfg.OCRRateLimitBurst,
	}
}

func (l *ExtractLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow consumes one extraction slot for the caller. Callers are keyed by
// client address so one noisy client cannot starve the rest.
func (l *ExtractLimiter) Allow(ctx context.Context, callerKey string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyOCRExtract, strings.TrimSpace(callerKey)), l.rate, l.burst)
}
