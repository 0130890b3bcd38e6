// Package scrape extracts article content directly from page HTML when a
// source's summary API cannot serve it.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/wikideck-hq/wikideck-forge/internal/domain"
	"github.com/wikideck-hq/wikideck-forge/pkg/httpclient"
	"github.com/wikideck-hq/wikideck-forge/pkg/sources"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
	maxExtractChars  = 2000

	fallbackTitle = "Unknown Title"
)

// Scraper fetches article pages and extracts the lead text from body HTML.
type Scraper struct {
	client httpclient.Client
}

// NewScraper constructs a scraper with the provided HTTP client (or default).
func NewScraper(client httpclient.Client) *Scraper {
	if client == nil {
		client = sources.DefaultHTTPClient(0)
	}
	return &Scraper{client: client}
}

// Scrape fetches the article page and pulls title plus paragraph text out of
// the rendered HTML. The extract is capped at maxExtractChars characters.
func (s *Scraper) Scrape(ctx context.Context, cfg sources.Source, articleURL string) (domain.PageContent, error) {
	headers := sources.Headers(cfg)

	resp, err := s.client.Get(ctx, articleURL, headers)
	if err != nil {
		return domain.PageContent{}, fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != 200 {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return domain.PageContent{}, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	title, extract, err := parseArticleHTML(body)
	if err != nil {
		return domain.PageContent{}, err
	}

	return domain.PageContent{
		Title:   title,
		Extract: extract,
		URL:     articleURL,
		Type:    "scraped",
	}, nil
}

func parseArticleHTML(body []byte) (title, extract string, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("parse html: %w", err)
	}

	title = strings.TrimSpace(doc.Find("h1#firstHeading").First().Text())
	if title == "" {
		title = fallbackTitle
	}

	content := doc.Find("div#mw-content-text").First()
	if content.Length() == 0 {
		return "", "", fmt.Errorf("could not find main content")
	}

	// Navigation boxes, infoboxes and reference markers only add noise.
	content.Find("table.navbox, div.navbox, span.navbox").Remove()
	content.Find("table.infobox, div.infobox, span.infobox").Remove()
	content.Find("table.reference, div.reference, span.reference").Remove()

	var paragraphs []string
	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	extract = strings.Join(paragraphs, "\n")
	if runes := []rune(extract); len(runes) > maxExtractChars {
		extract = string(runes[:maxExtractChars])
	}

	return title, extract, nil
}
