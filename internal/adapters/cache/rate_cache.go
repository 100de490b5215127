package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/novira-app/novira-backend/internal/core/domain"
	portsrepo "github.com/novira-app/novira-backend/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// CachedRateReader decorates a RateReader with a Redis cache. The cache is
// strictly best-effort: any Redis failure falls through to the underlying
// reader, and a nil client disables caching entirely, so losing Redis never
// takes balance computation down with it.
type CachedRateReader struct {
	inner  portsrepo.RateReader
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewCachedRateReader wraps a rate reader with Redis caching. client may be
// nil, in which case every call passes straight through.
func NewCachedRateReader(inner portsrepo.RateReader, client *redis.Client, logger *slog.Logger, ttl time.Duration) *CachedRateReader {
	return &CachedRateReader{inner: inner, client: client, logger: logger, ttl: ttl}
}

var _ portsrepo.RateReader = (*CachedRateReader)(nil)

func rateTableKey(reportingCurrency string) string {
	return "rates:" + reportingCurrency
}

// GetRateTable returns the cached table when fresh, otherwise loads it from
// the underlying reader and caches the result.
func (c *CachedRateReader) GetRateTable(ctx context.Context, reportingCurrency string) (domain.RateTable, error) {
	if c.client == nil {
		return c.inner.GetRateTable(ctx, reportingCurrency)
	}

	key := rateTableKey(reportingCurrency)
	if cached, err := c.client.Get(ctx, key).Result(); err == nil {
		var raw map[string]string
		if err := json.Unmarshal([]byte(cached), &raw); err == nil {
			table := domain.RateTable{
				ReportingCurrency: reportingCurrency,
				Rates:             make(map[string]decimal.Decimal, len(raw)),
			}
			ok := true
			for code, v := range raw {
				rate, err := decimal.NewFromString(v)
				if err != nil {
					ok = false
					break
				}
				table.Rates[code] = rate
			}
			if ok {
				return table, nil
			}
		}
		c.logger.Warn("Discarding unparseable cached rate table", slog.String("key", key))
	} else if err != redis.Nil {
		c.logger.Warn("Rate cache read failed, falling back to repository",
			slog.String("error", err.Error()))
	}

	table, err := c.inner.GetRateTable(ctx, reportingCurrency)
	if err != nil {
		return domain.RateTable{}, err
	}

	raw := make(map[string]string, len(table.Rates))
	for code, rate := range table.Rates {
		raw[code] = rate.String()
	}
	if payload, err := json.Marshal(raw); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("Rate cache write failed", slog.String("error", err.Error()))
		}
	}
	return table, nil
}

// Invalidate drops the cached table for a reporting currency. Called after
// rate upserts so new rates take effect before the TTL expires.
func (c *CachedRateReader) Invalidate(ctx context.Context, reportingCurrency string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, rateTableKey(reportingCurrency)).Err(); err != nil {
		c.logger.Warn("Rate cache invalidation failed", slog.String("error", err.Error()))
	}
}

// CachedRateRepository is a full rate repository facade whose reads go
// through the cache. Writes pass through and invalidate the affected table.
type CachedRateRepository struct {
	*CachedRateReader
	writer portsrepo.RateWriter
}

// NewCachedRateRepository wraps a rate repository with Redis read caching.
func NewCachedRateRepository(inner portsrepo.RateRepositoryFacade, client *redis.Client, logger *slog.Logger, ttl time.Duration) *CachedRateRepository {
	return &CachedRateRepository{
		CachedRateReader: NewCachedRateReader(inner, client, logger, ttl),
		writer:           inner,
	}
}

var _ portsrepo.RateRepositoryFacade = (*CachedRateRepository)(nil)

// UpsertRate writes through and invalidates the cached table for the rate's
// base currency.
func (c *CachedRateRepository) UpsertRate(ctx context.Context, rate domain.FxRate) error {
	if err := c.writer.UpsertRate(ctx, rate); err != nil {
		return err
	}
	c.Invalidate(ctx, rate.BaseCurrency)
	return nil
}
