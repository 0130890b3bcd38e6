package sources

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wikideck-hq/wikideck-forge/pkg/httpclient"
)

// fetcherRegistry implements FetcherRegistry.
type fetcherRegistry struct {
	fetchersByID   map[string]Fetcher
	fetchersByType map[string]Fetcher
	mu             sync.RWMutex
}

// NewFetcherRegistry builds a registry for the provided fetcher implementations keyed by source id.
func NewFetcherRegistry(fetchers ...Fetcher) FetcherRegistry {
	return NewTypeFetcherRegistry(nil, fetchers...)
}

// NewTypeFetcherRegistry builds a registry with optional type-based fetchers and source-specific fetchers.
func NewTypeFetcherRegistry(typeFetchers map[string]Fetcher, fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{
		fetchersByID:   make(map[string]Fetcher),
		fetchersByType: make(map[string]Fetcher),
	}

	for _, f := range fetchers {
		reg.registerIDFetcher(f)
	}
	for typ, f := range typeFetchers {
		reg.registerTypeFetcher(typ, f)
	}

	return reg
}

func (r *fetcherRegistry) registerIDFetcher(f Fetcher) {
	if f == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(f.ID()))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.fetchersByID[key] = f
	r.mu.Unlock()
}

func (r *fetcherRegistry) registerTypeFetcher(typ string, f Fetcher) {
	if f == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(typ))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.fetchersByType[key] = f
	r.mu.Unlock()
}

// FetcherFor selects the fetcher for the given source based on its id or type.
func (r *fetcherRegistry) FetcherFor(cfg Source) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}
	if strings.TrimSpace(cfg.ID) == "" {
		return nil, fmt.Errorf("source id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idKey := strings.ToLower(strings.TrimSpace(cfg.ID))
	if f, ok := r.fetchersByID[idKey]; ok {
		return f, nil
	}

	typeKey := strings.ToLower(strings.TrimSpace(cfg.Type))
	if typeKey != "" {
		if f, ok := r.fetchersByType[typeKey]; ok {
			return f, nil
		}
	}

	return nil, fmt.Errorf("no fetcher registered for source %q (type %q)", cfg.ID, cfg.Type)
}

// DefaultHTTPClient returns a tuned http client for source fetchers.
func DefaultHTTPClient(timeout time.Duration) HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return httpclient.NewRestyClient(timeout)
}

// Supported source types.
const (
	SourceTypeWikipediaREST = "wikipedia_rest"
	SourceTypeWikipediaHTML = "wikipedia_html"
)

// DefaultFetcherRegistry wires up known source fetchers.
func DefaultFetcherRegistry(client HTTPClient, scraper PageScraper, timeout time.Duration) FetcherRegistry {
	if client == nil {
		client = DefaultHTTPClient(timeout)
	}

	typeFetchers := map[string]Fetcher{
		SourceTypeWikipediaREST: NewWikipediaRESTFetcher(client, scraper),
		SourceTypeWikipediaHTML: NewWikipediaHTMLFetcher(scraper),
	}

	return NewTypeFetcherRegistry(typeFetchers)
}
