package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// Fetcher resolves a URL to best-effort plain text for analysis. It is a
// swappable collaborator: classification works without it.
type Fetcher interface {
	FetchText(ctx context.Context, rawURL string) (string, error)
}

// HTTPFetcher implements Fetcher with one GET per call. No caching, no
// retries; a failed fetch is the caller's signal to analyze whatever text it
// already has.
type HTTPFetcher struct {
	client       *http.Client
	maxBodyBytes int64
}

// New builds an HTTPFetcher with a bounded request timeout and response
// size.
func New(timeout time.Duration, maxBodyBytes int64) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 2 << 20
	}
	return &HTTPFetcher{
		client:       &http.Client{Timeout: timeout},
		maxBodyBytes: maxBodyBytes,
	}
}

// FetchText GETs the URL and extracts readable text. HTML responses are
// reduced to their text content; anything else is returned as-is.
func (f *HTTPFetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("invalid URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") {
		text, err := ExtractText(string(body))
		if err != nil {
			log.Warnf("HTML extraction failed for %s, using raw body: %v", rawURL, err)
			return string(body), nil
		}
		return text, nil
	}
	return string(body), nil
}

// ExtractText walks an HTML document and concatenates visible text nodes,
// skipping script and style subtrees.
func ExtractText(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteString(" ")
				}
				b.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return b.String(), nil
}
