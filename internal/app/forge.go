package app

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/wikideck-hq/wikideck-forge/internal/config"
	"github.com/wikideck-hq/wikideck-forge/internal/generate"
	"github.com/wikideck-hq/wikideck-forge/internal/logger"
	"github.com/wikideck-hq/wikideck-forge/internal/pipeline"
	"github.com/wikideck-hq/wikideck-forge/internal/scrape"
	"github.com/wikideck-hq/wikideck-forge/internal/storage"
	"github.com/wikideck-hq/wikideck-forge/pkg/sinks"
	"github.com/wikideck-hq/wikideck-forge/pkg/sources"
)

// Forge is the application runtime. It resolves the configured source,
// builds the sink fanout and the generation pipeline, and drives either a
// single run or the interactive prompt loop.
type Forge struct {
	cfg     *config.Config
	source  sources.Source
	fanout  *sinks.Fanout
	service *pipeline.Service
	cache   storage.Cache
	log     logger.Logger

	in  io.Reader
	out io.Writer
}

// NewForge builds the runtime from config files.
func NewForge(ctx context.Context, cfg *config.Config, log logger.Logger) (*Forge, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sourceReg, err := sources.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	source, ok := sourceReg.ByID(cfg.SourceID)
	if !ok {
		return nil, fmt.Errorf("source %q not found in %s", cfg.SourceID, cfg.SourcesFile)
	}
	log.InfoObj("source resolved", "source_meta", map[string]any{
		"id":   source.ID,
		"type": source.Type,
	})

	client := sources.DefaultHTTPClient(cfg.FetchTimeout)
	scraper := scrape.NewScraper(client)
	fetcherReg := sources.DefaultFetcherRegistry(client, scraper, cfg.FetchTimeout)

	sinkReg, err := sinks.LoadRegistry(cfg.SinksFile)
	if err != nil {
		return nil, fmt.Errorf("load sinks registry: %w", err)
	}
	enabledSinks := sinkReg.Enabled()
	if len(enabledSinks) == 0 {
		return nil, fmt.Errorf("no sinks configured")
	}

	builtSinks, err := sinks.BuildAll(ctx, sinks.DefaultRegistry(), enabledSinks, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}
	fanout := sinks.NewFanout(builtSinks)
	sinkSummaries := make([]map[string]string, 0, len(enabledSinks))
	for _, sinkCfg := range enabledSinks {
		sinkSummaries = append(sinkSummaries, map[string]string{
			"id":   sinkCfg.ID,
			"type": sinkCfg.Type,
		})
	}
	log.InfoObj("sinks registry loaded", "sinks_meta", map[string]any{
		"count": len(sinkSummaries),
		"sinks": sinkSummaries,
	})

	cacheOpts := storage.Options{
		ArticleTTL:      cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	cache, err := storage.NewCache(cfg.StorageType, cfg.BBoltPath, cacheOpts)
	if err != nil {
		return nil, fmt.Errorf("init article cache: %w", err)
	}
	log.InfoObj("article cache initialized", "cache_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"article_ttl_seconds":      int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	gen, err := generate.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.ModelName, log)
	if err != nil {
		return nil, fmt.Errorf("init generator: %w", err)
	}
	requester := generate.NewRequester(gen, log)

	service := pipeline.NewService(fetcherReg, requester, cache, log, cfg.MaxChunkSize, cfg.ChunkOverlap)

	return &Forge{
		cfg:     cfg,
		source:  source,
		fanout:  fanout,
		service: service,
		cache:   cache,
		log:     log,
		in:      os.Stdin,
		out:     os.Stdout,
	}, nil
}

// Close releases the article cache. Safe to call on a nil receiver.
func (f *Forge) Close() {
	if f == nil || f.cache == nil {
		return
	}
	if err := f.cache.Close(); err != nil {
		f.log.ErrorObj("article cache close failed", "error", err.Error())
	}
}

// RunOnce processes a single article URL, delivers the deck to every sink and
// prints the deck JSON to the output stream.
func (f *Forge) RunOnce(ctx context.Context, articleURL string, numCards int) error {
	if f == nil || f.service == nil {
		return fmt.Errorf("forge is not initialized")
	}
	if err := ValidateArticleURL(articleURL); err != nil {
		return err
	}
	if numCards == 0 {
		numCards = f.cfg.DefaultCardCount
	}
	if numCards < config.MinCardCount || numCards > config.MaxCardCount {
		return fmt.Errorf("card count %d out of range %d-%d", numCards, config.MinCardCount, config.MaxCardCount)
	}

	outcome, err := f.service.Run(ctx, f.source, articleURL, numCards)
	if err != nil {
		return err
	}

	evt := sinks.NewDeckEvent(f.source.ID, f.source.Name, outcome.Deck)
	delivered, deliverErr := f.fanout.Deliver(ctx, evt)
	if deliverErr != nil {
		f.log.ErrorObj("sink delivery incomplete", "delivery_meta", map[string]any{
			"delivered": delivered,
			"total":     f.fanout.Size(),
			"error":     deliverErr.Error(),
		})
		if delivered == 0 {
			return fmt.Errorf("deliver deck: %w", deliverErr)
		}
	}

	f.log.InfoObj("deck generated", "deck_meta", map[string]any{
		"title":          outcome.Deck.Source.Title,
		"total_cards":    outcome.Deck.Flashcards.TotalCards,
		"status":         string(outcome.Status),
		"chunk_failures": outcome.ChunkFailures,
		"from_cache":     outcome.FromCache,
		"delivered":      delivered,
	})

	enc := json.NewEncoder(f.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcome.Deck); err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	return nil
}

// Interactive runs the prompt loop until the user quits or the context ends.
func (f *Forge) Interactive(ctx context.Context) error {
	if f == nil || f.service == nil {
		return fmt.Errorf("forge is not initialized")
	}

	scanner := bufio.NewScanner(f.in)
	fmt.Fprintln(f.out, "Wikipedia flashcard generator. Type 'quit' to exit.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(f.out, "\nEnter Wikipedia URL (or 'quit' to exit): ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			fmt.Fprintln(f.out, "Goodbye!")
			return nil
		case "":
			continue
		}

		if err := ValidateArticleURL(line); err != nil {
			fmt.Fprintf(f.out, "Invalid URL: %v\n", err)
			continue
		}

		fmt.Fprintf(f.out, "Number of flashcards (%d-%d, default %d): ",
			config.MinCardCount, config.MaxCardCount, f.cfg.DefaultCardCount)
		if !scanner.Scan() {
			return scanner.Err()
		}
		numCards, err := parseCardCount(scanner.Text(), f.cfg.DefaultCardCount)
		if err != nil {
			fmt.Fprintf(f.out, "Invalid card count: %v\n", err)
			continue
		}

		fmt.Fprintf(f.out, "Generating %d flashcards...\n", numCards)
		if err := f.RunOnce(ctx, line, numCards); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(f.out, "Error: %v\n", err)
		}
	}
}

// ValidateArticleURL checks that the URL parses and points at wikipedia.org.
func ValidateArticleURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if host != "wikipedia.org" && !strings.HasSuffix(host, ".wikipedia.org") {
		return fmt.Errorf("host %q is not a wikipedia.org domain", u.Hostname())
	}
	return nil
}

// parseCardCount parses the interactive card count answer, applying the
// default on empty input and enforcing the configured bounds.
func parseCardCount(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if n < config.MinCardCount || n > config.MaxCardCount {
		return 0, fmt.Errorf("%d out of range %d-%d", n, config.MinCardCount, config.MaxCardCount)
	}
	return n, nil
}
