package sources

import (
	"context"

	"github.com/wikideck-hq/wikideck-forge/internal/domain"
	"github.com/wikideck-hq/wikideck-forge/pkg/httpclient"
)

// Fetcher retrieves the content of one article for a source.
// Concrete implementations live in source-specific files (e.g., wikipedia.go).
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, cfg Source, articleURL string) (domain.PageContent, error)
}

// FetcherRegistry resolves the fetcher implementation for a given source config.
type FetcherRegistry interface {
	FetcherFor(cfg Source) (Fetcher, error)
}

// PageScraper extracts article content straight from page HTML. Used as the
// fallback when a source's summary API is unavailable, and as the whole
// fetch path for scrape-only sources.
type PageScraper interface {
	Scrape(ctx context.Context, cfg Source, articleURL string) (domain.PageContent, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within sources.
type HTTPClient = httpclient.Client
