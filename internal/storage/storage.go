package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/wikideck-hq/wikideck-forge/internal/domain"
)

// Package storage provides a local cache of processed articles so repeated
// runs against the same URL skip the fetch-and-chunk stage.

// Cache stores processed articles keyed by URL.
type Cache interface {
	Close() error
	Get(url string) (*domain.Article, bool, error)
	Put(url string, article *domain.Article) error
}

// Options controls retention characteristics for concrete cache implementations.
type Options struct {
	ArticleTTL      time.Duration
	CleanupInterval time.Duration
}

const (
	defaultArticleTTL      = 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewCache creates the configured cache backend.
func NewCache(typ, path string, opts Options) (Cache, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopCache{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.ArticleTTL <= 0 {
		opts.ArticleTTL = defaultArticleTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopCache struct{}

func (noopCache) Close() error                               { return nil }
func (noopCache) Get(string) (*domain.Article, bool, error)  { return nil, false, nil }
func (noopCache) Put(string, *domain.Article) error          { return nil }
