package sources

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wikideck-hq/wikideck-forge/internal/domain"
	"github.com/wikideck-hq/wikideck-forge/pkg/httpclient"
)

type fakeResponse struct {
	body []byte
	code int
}

func (f fakeResponse) Body() []byte    { return f.body }
func (f fakeResponse) StatusCode() int { return f.code }

type fakeHTTPClient struct {
	url     string
	headers map[string]string
	resp    fakeResponse
	err     error
}

func (f *fakeHTTPClient) Get(_ context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	f.url = url
	f.headers = headers
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeScraper struct {
	called  bool
	content domain.PageContent
	err     error
}

func (f *fakeScraper) Scrape(_ context.Context, _ Source, articleURL string) (domain.PageContent, error) {
	f.called = true
	if f.err != nil {
		return domain.PageContent{}, f.err
	}
	if f.content.URL == "" {
		f.content.URL = articleURL
	}
	return f.content, nil
}

func restSource() Source {
	return Source{
		ID:      "wikipedia-en",
		Type:    SourceTypeWikipediaREST,
		APIBase: "https://en.wikipedia.org/api/rest_v1",
	}
}

func TestTitleFromURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://en.wikipedia.org/wiki/Albert_Einstein", "Albert_Einstein"},
		{"https://en.wikipedia.org/wiki/G%C3%B6del", "Gödel"},
		{"https://en.wikipedia.org/wiki/Go_(programming_language)", "Go_(programming_language)"},
	}
	for _, tc := range cases {
		got, err := TitleFromURL(tc.in)
		if err != nil {
			t.Fatalf("TitleFromURL(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("TitleFromURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTitleFromURLMissingTitle(t *testing.T) {
	for _, in := range []string{"https://en.wikipedia.org/", "https://en.wikipedia.org/wiki/", "https://example.com/article/Foo"} {
		if _, err := TitleFromURL(in); !errors.Is(err, ErrNoTitle) {
			t.Fatalf("TitleFromURL(%q) err = %v, want ErrNoTitle", in, err)
		}
	}
}

func TestWikipediaRESTFetcherSuccess(t *testing.T) {
	client := &fakeHTTPClient{resp: fakeResponse{
		code: 200,
		body: []byte(`{
			"title": "Albert Einstein",
			"extract": "Albert Einstein was a theoretical physicist.",
			"description": "German-born physicist",
			"type": "standard",
			"content_urls": {"desktop": {"page": "https://en.wikipedia.org/wiki/Albert_Einstein"}}
		}`),
	}}
	fetcher := NewWikipediaRESTFetcher(client, nil)

	content, err := fetcher.Fetch(context.Background(), restSource(), "https://en.wikipedia.org/wiki/Albert_Einstein")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if want := "https://en.wikipedia.org/api/rest_v1/page/summary/Albert_Einstein"; client.url != want {
		t.Fatalf("request url = %q, want %q", client.url, want)
	}
	if client.headers["User-Agent"] == "" {
		t.Fatalf("request missing User-Agent header")
	}
	if content.Title != "Albert Einstein" || content.Description != "German-born physicist" {
		t.Fatalf("content = %#v", content)
	}
	if !strings.Contains(content.Extract, "theoretical physicist") {
		t.Fatalf("extract = %q", content.Extract)
	}
}

func TestWikipediaRESTFetcherDefaultsMissingFields(t *testing.T) {
	client := &fakeHTTPClient{resp: fakeResponse{
		code: 200,
		body: []byte(`{"extract": "Some text."}`),
	}}
	fetcher := NewWikipediaRESTFetcher(client, nil)

	articleURL := "https://en.wikipedia.org/wiki/Some_Topic"
	content, err := fetcher.Fetch(context.Background(), restSource(), articleURL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if content.Title != "Some_Topic" {
		t.Fatalf("title = %q, want fallback from url", content.Title)
	}
	if content.URL != articleURL {
		t.Fatalf("url = %q, want %q", content.URL, articleURL)
	}
	if content.Type != "standard" {
		t.Fatalf("type = %q, want standard", content.Type)
	}
}

func TestWikipediaRESTFetcherFallsBackToScraper(t *testing.T) {
	client := &fakeHTTPClient{resp: fakeResponse{code: 404, body: []byte("not found")}}
	scraper := &fakeScraper{content: domain.PageContent{Title: "Scraped Title", Extract: "scraped text", Type: "scraped"}}
	fetcher := NewWikipediaRESTFetcher(client, scraper)

	content, err := fetcher.Fetch(context.Background(), restSource(), "https://en.wikipedia.org/wiki/Obscure_Page")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !scraper.called {
		t.Fatalf("scraper was not invoked on API status error")
	}
	if content.Title != "Scraped Title" || content.Type != "scraped" {
		t.Fatalf("content = %#v", content)
	}
}

func TestWikipediaRESTFetcherNoScraperPropagatesStatus(t *testing.T) {
	client := &fakeHTTPClient{resp: fakeResponse{code: 404}}
	fetcher := NewWikipediaRESTFetcher(client, nil)

	_, err := fetcher.Fetch(context.Background(), restSource(), "https://en.wikipedia.org/wiki/Obscure_Page")
	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != 404 {
		t.Fatalf("err = %v, want StatusError 404", err)
	}
}

func TestWikipediaRESTFetcherTransportErrorSkipsFallback(t *testing.T) {
	client := &fakeHTTPClient{err: errors.New("connection refused")}
	scraper := &fakeScraper{}
	fetcher := NewWikipediaRESTFetcher(client, scraper)

	if _, err := fetcher.Fetch(context.Background(), restSource(), "https://en.wikipedia.org/wiki/Page"); err == nil {
		t.Fatalf("expected transport error")
	}
	if scraper.called {
		t.Fatalf("scraper should not run on transport errors")
	}
}

func TestWikipediaHTMLFetcherRequiresScraper(t *testing.T) {
	fetcher := NewWikipediaHTMLFetcher(nil)
	if _, err := fetcher.Fetch(context.Background(), Source{ID: "s"}, "https://en.wikipedia.org/wiki/Page"); err == nil {
		t.Fatalf("expected error without scraper")
	}
}

func TestWikipediaHTMLFetcherScrapes(t *testing.T) {
	scraper := &fakeScraper{content: domain.PageContent{Title: "Page", Extract: "text"}}
	fetcher := NewWikipediaHTMLFetcher(scraper)

	content, err := fetcher.Fetch(context.Background(), Source{ID: "s", Type: SourceTypeWikipediaHTML}, "https://en.wikipedia.org/wiki/Page")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !scraper.called || content.Title != "Page" {
		t.Fatalf("content = %#v called=%v", content, scraper.called)
	}
}
