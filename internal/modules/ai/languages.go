package ai

import (
	"context"
	"encoding/json"
	"time"

	pkgredis "github.com/textora/core/internal/pkg/redis"
	"go.uber.org/zap"
)

const (
	pairCacheKey = "textora:translation_pairs"
	pairCacheTTL = 10 * time.Minute
)

// Language is one entry of the static language catalogue.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SupportedLanguages is the catalogue offered by the tools UI.
var SupportedLanguages = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "Hindi"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "es", Name: "Spanish"},
	{Code: "ko", Name: "Korean"},
	{Code: "ar", Name: "Arabic"},
	{Code: "zh", Name: "Chinese"},
}

// fallbackPairs mirrors the directions the translation models ship with,
// used when the ML service cannot report its own list.
var fallbackPairs = []LanguagePair{
	{From: "en", To: "es"}, {From: "es", To: "en"},
	{From: "en", To: "hi"}, {From: "hi", To: "en"},
	{From: "en", To: "ko"}, {From: "ko", To: "en"},
	{From: "en", To: "fr"}, {From: "fr", To: "en"},
	{From: "en", To: "de"}, {From: "de", To: "en"},
	{From: "en", To: "zh"}, {From: "zh", To: "en"},
	{From: "en", To: "ar"}, {From: "ar", To: "en"},
}

// pairCatalogue resolves supported translation pairs: live from the ML
// service when possible, last-known-good from Redis during outages, and
// the built-in list as the final fallback.
type pairCatalogue struct {
	client *Client
	cache  *pkgredis.Client
	logger *zap.Logger
}

func newPairCatalogue(client *Client, cache *pkgredis.Client, logger *zap.Logger) *pairCatalogue {
	return &pairCatalogue{client: client, cache: cache, logger: logger}
}

func (p *pairCatalogue) Pairs(ctx context.Context) []LanguagePair {
	pairs, err := p.client.TranslationPairs(ctx)
	if err == nil && len(pairs) > 0 {
		p.store(ctx, pairs)
		return pairs
	}
	if err != nil {
		p.logger.Warn("translation pair fetch failed", zap.Error(err))
	}

	if cached := p.load(ctx); len(cached) > 0 {
		return cached
	}
	return fallbackPairs
}

func (p *pairCatalogue) store(ctx context.Context, pairs []LanguagePair) {
	if p.cache == nil {
		return
	}
	data, err := json.Marshal(pairs)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, pairCacheKey, string(data), pairCacheTTL); err != nil {
		p.logger.Warn("translation pair cache write failed", zap.Error(err))
	}
}

func (p *pairCatalogue) load(ctx context.Context) []LanguagePair {
	if p.cache == nil {
		return nil
	}
	raw, err := p.cache.Get(ctx, pairCacheKey)
	if err != nil || raw == "" {
		return nil
	}
	var pairs []LanguagePair
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil
	}
	return pairs
}
