package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"trove-backend/internal/logger"
	"trove-backend/internal/metrics"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	DefaultMetadataTimeout   = 5 * time.Second
	DefaultMetadataMaxBytes  = 64 * 1024
	DefaultMetadataUserAgent = "Trove/1.0 (metadata fetcher)"
)

var (
	errUnsupportedScheme = errors.New("unsupported URL scheme")
	errUnexpectedStatus  = errors.New("unexpected response status")
	errNotHTML           = errors.New("response is not HTML")
)

// PageMetadata is what a remote page says about itself. Nil fields mean nothing usable was found.
type PageMetadata struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Empty reports whether neither field was found
func (m PageMetadata) Empty() bool {
	return m.Title == nil && m.Description == nil
}

// MetadataFetcherConfig bounds a single metadata lookup
type MetadataFetcherConfig struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// MetadataFetcher reads a bounded prefix of an HTML page and extracts its title and description
type MetadataFetcher struct {
	client *http.Client
	config MetadataFetcherConfig
}

// Ensure MetadataFetcher implements MetadataFetcherInterface
var _ MetadataFetcherInterface = (*MetadataFetcher)(nil)

// NewMetadataFetcher creates a fetcher. Zero config values fall back to the defaults; a nil
// client uses a fresh http.Client with the default redirect policy.
func NewMetadataFetcher(config MetadataFetcherConfig, client *http.Client) *MetadataFetcher {
	if config.Timeout <= 0 {
		config.Timeout = DefaultMetadataTimeout
	}
	if config.MaxBytes <= 0 {
		config.MaxBytes = DefaultMetadataMaxBytes
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultMetadataUserAgent
	}
	if client == nil {
		client = &http.Client{}
	}
	return &MetadataFetcher{client: client, config: config}
}

// Fetch never fails: any problem yields an empty PageMetadata
func (f *MetadataFetcher) Fetch(ctx context.Context, rawURL string) PageMetadata {
	meta, err := f.fetch(ctx, rawURL)
	if err != nil {
		outcome := metrics.MetadataOutcomeFailed
		if errors.Is(err, errUnsupportedScheme) {
			outcome = metrics.MetadataOutcomeRejected
		}
		metrics.MetadataFetches.WithLabelValues(outcome).Inc()
		logger.WithContext(ctx).WithError(err).WithField("url", rawURL).Debug("metadata fetch skipped")
		return PageMetadata{}
	}

	if meta.Empty() {
		metrics.MetadataFetches.WithLabelValues(metrics.MetadataOutcomeEmpty).Inc()
	} else {
		metrics.MetadataFetches.WithLabelValues(metrics.MetadataOutcomeFetched).Inc()
	}
	return meta
}

func (f *MetadataFetcher) fetch(ctx context.Context, rawURL string) (PageMetadata, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PageMetadata{}, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return PageMetadata{}, errUnsupportedScheme
	}

	ctx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return PageMetadata{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return PageMetadata{}, fmt.Errorf("request: %w", err)
	}
	// Closing before EOF drops the connection, so whatever the server still has to send is abandoned.
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return PageMetadata{}, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return PageMetadata{}, errNotHTML
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBytes))
	if err != nil {
		return PageMetadata{}, fmt.Errorf("read body: %w", err)
	}

	return ExtractMetadata(decodeHTML(body, contentType)), nil
}

// decodeHTML converts the (possibly truncated) body to UTF-8 using the declared or sniffed
// charset. A sequence cut at the truncation point becomes U+FFFD.
func decodeHTML(body []byte, contentType string) string {
	enc, _, certain := charset.DetermineEncoding(body, contentType)
	// Sniffing only looks at the first KiB and defaults to windows-1252.
	if !certain && validUTF8Prefix(body) {
		return strings.ToValidUTF8(string(body), "\uFFFD")
	}
	if decoded, err := enc.NewDecoder().Bytes(body); err == nil {
		return strings.ToValidUTF8(string(decoded), "\uFFFD")
	}
	return strings.ToValidUTF8(string(body), "\uFFFD")
}

// validUTF8Prefix tolerates one incomplete rune at the end
func validUTF8Prefix(b []byte) bool {
	for i := 0; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.Valid(b[:len(b)-i]) {
			return true
		}
	}
	return false
}

// ExtractMetadata finds the first <title> and the og:description (else description) meta
// content. Entities are unescaped by the parser; results are trimmed and empty becomes nil.
func ExtractMetadata(document string) PageMetadata {
	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return PageMetadata{}
	}

	var (
		title      *string
		ogDesc     *string
		nameDesc   *string
		titleFound bool
	)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if !titleFound {
					titleFound = true
					title = nonEmpty(textContent(n))
				}
			case "meta":
				content, hasContent := attr(n, "content")
				if hasContent {
					if p, _ := attr(n, "property"); ogDesc == nil && strings.EqualFold(p, "og:description") {
						ogDesc = &content
					}
					if name, _ := attr(n, "name"); nameDesc == nil && strings.EqualFold(name, "description") {
						nameDesc = &content
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	meta := PageMetadata{Title: title}
	if ogDesc != nil {
		meta.Description = nonEmpty(*ogDesc)
	} else if nameDesc != nil {
		meta.Description = nonEmpty(*nameDesc)
	}
	return meta
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
	}
	return buf.String()
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// CachedMetadataFetcher consults a cache before delegating. Cache errors are logged and the
// lookup falls through to the wrapped fetcher.
type CachedMetadataFetcher struct {
	next  MetadataFetcherInterface
	cache MetadataCache
}

// Ensure CachedMetadataFetcher implements MetadataFetcherInterface
var _ MetadataFetcherInterface = (*CachedMetadataFetcher)(nil)

// NewCachedMetadataFetcher wraps next with cache
func NewCachedMetadataFetcher(next MetadataFetcherInterface, cache MetadataCache) *CachedMetadataFetcher {
	return &CachedMetadataFetcher{next: next, cache: cache}
}

// Fetch returns a cached result when present; only non-empty results are stored.
func (f *CachedMetadataFetcher) Fetch(ctx context.Context, rawURL string) PageMetadata {
	log := logger.WithContext(ctx).WithField("url", rawURL)

	cached, err := f.cache.Get(ctx, rawURL)
	switch {
	case err != nil:
		log.WithError(err).Warn("metadata cache read failed")
	case cached != nil:
		var meta PageMetadata
		if err := json.Unmarshal(cached, &meta); err == nil {
			metrics.MetadataFetches.WithLabelValues(metrics.MetadataOutcomeCacheHit).Inc()
			return meta
		}
		log.Warn("discarding undecodable metadata cache entry")
	}

	meta := f.next.Fetch(ctx, rawURL)
	if meta.Empty() {
		return meta
	}

	encoded, err := json.Marshal(meta)
	if err != nil {
		return meta
	}
	if err := f.cache.Set(ctx, rawURL, encoded); err != nil {
		log.WithError(err).Warn("metadata cache write failed")
	}
	return meta
}
