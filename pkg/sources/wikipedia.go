package sources

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/wikideck-hq/wikideck-forge/internal/domain"
	"github.com/wikideck-hq/wikideck-forge/pkg/httpclient"
)

// ErrNoTitle is returned when an article URL carries no /wiki/<Title> path.
var ErrNoTitle = errors.New("could not extract article title from url")

// TitleFromURL extracts the article title from a conventional /wiki/<Title>
// encyclopedia URL, percent-decoding it.
func TitleFromURL(articleURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(articleURL))
	if err != nil {
		return "", fmt.Errorf("parse article url: %w", err)
	}

	parts := strings.Split(parsed.Path, "/")
	for i, part := range parts {
		if part != "wiki" || i+1 >= len(parts) {
			continue
		}
		title, err := url.PathUnescape(parts[i+1])
		if err != nil {
			return "", fmt.Errorf("decode article title: %w", err)
		}
		if title == "" {
			break
		}
		return title, nil
	}

	return "", ErrNoTitle
}

// restSummary mirrors the REST summary endpoint payload, fields we keep only.
type restSummary struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	Description string `json:"description"`
	Type        string `json:"type"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// wikipediaRESTFetcher pulls article summaries from the wiki REST API,
// falling back to HTML scraping when the API is unavailable.
type wikipediaRESTFetcher struct {
	client  HTTPClient
	scraper PageScraper
}

// NewWikipediaRESTFetcher builds the summary-API fetcher. scraper may be nil
// to disable the fallback.
func NewWikipediaRESTFetcher(client HTTPClient, scraper PageScraper) Fetcher {
	if client == nil {
		client = DefaultHTTPClient(0)
	}
	return &wikipediaRESTFetcher{client: client, scraper: scraper}
}

func (f *wikipediaRESTFetcher) ID() string {
	return SourceTypeWikipediaREST
}

func (f *wikipediaRESTFetcher) Fetch(ctx context.Context, cfg Source, articleURL string) (domain.PageContent, error) {
	if !strings.EqualFold(cfg.Type, SourceTypeWikipediaREST) {
		return domain.PageContent{}, fmt.Errorf("wikipedia rest fetcher received incompatible source type %q", cfg.Type)
	}
	if strings.TrimSpace(cfg.APIBase) == "" {
		return domain.PageContent{}, fmt.Errorf("source %q api_base is empty", cfg.ID)
	}

	title, err := TitleFromURL(articleURL)
	if err != nil {
		return domain.PageContent{}, err
	}

	summaryURL := cfg.APIBase + "/page/summary/" + url.PathEscape(title)
	headers := Headers(cfg)

	var summary restSummary
	err = httpclient.GetJSON(ctx, f.client, summaryURL, headers, &summary)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) && f.scraper != nil {
			// Summary API said no; scrape the page itself.
			return f.scraper.Scrape(ctx, cfg, articleURL)
		}
		return domain.PageContent{}, fmt.Errorf("fetch summary for %q: %w", title, err)
	}

	content := domain.PageContent{
		Title:       summary.Title,
		Extract:     summary.Extract,
		URL:         summary.ContentURLs.Desktop.Page,
		Description: summary.Description,
		Type:        summary.Type,
	}
	if content.Title == "" {
		content.Title = title
	}
	if content.URL == "" {
		content.URL = articleURL
	}
	if content.Type == "" {
		content.Type = "standard"
	}

	return content, nil
}

// wikipediaHTMLFetcher serves scrape-only sources with no summary API.
type wikipediaHTMLFetcher struct {
	scraper PageScraper
}

// NewWikipediaHTMLFetcher builds a fetcher that always scrapes page HTML.
func NewWikipediaHTMLFetcher(scraper PageScraper) Fetcher {
	return &wikipediaHTMLFetcher{scraper: scraper}
}

func (f *wikipediaHTMLFetcher) ID() string {
	return SourceTypeWikipediaHTML
}

func (f *wikipediaHTMLFetcher) Fetch(ctx context.Context, cfg Source, articleURL string) (domain.PageContent, error) {
	if f.scraper == nil {
		return domain.PageContent{}, fmt.Errorf("source %q has no scraper configured", cfg.ID)
	}
	if _, err := TitleFromURL(articleURL); err != nil {
		return domain.PageContent{}, err
	}
	return f.scraper.Scrape(ctx, cfg, articleURL)
}
