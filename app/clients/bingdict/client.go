package bingdict

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rbhz/trs/app/dictionary"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when page has no dictionary data
var ErrNotFound = dictionary.ErrNotFound

const (
	defaultBaseURL = "https://cn.bing.com/dict/"
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	selectorDescription = `meta[name="description"]`
	selectorSpans       = ".pos, .def.b_regtxt"
)

// Mode defines which part of the page is parsed
type Mode string

const (
	// ModeMeta parses description meta tag
	ModeMeta Mode = "meta"
	// ModeSpans parses part of speech and definition spans
	ModeSpans Mode = "spans"
)

// Client implements lookups in Bing dictionary
// pages: https://cn.bing.com/dict/
type Client struct {
	baseURL string
	mode    Mode
	parser  dictionary.Parser
	client  *http.Client
}

// Lookup fetches word page and parses dictionary entry
func (c Client) Lookup(ctx context.Context, word string) (dictionary.Entry, error) {
	entry := dictionary.Entry{Word: word}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+url.PathEscape(word), nil,
	)
	if err != nil {
		return entry, fmt.Errorf("create request: %w", err)
	}
	query := req.URL.Query()
	query.Add("mkt", "zh-CN")
	query.Add("setlang", "ZH")
	req.URL.RawQuery = query.Encode()
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return entry, fmt.Errorf("fetch bing dictionary: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entry, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Error().
			Str("status", resp.Status).
			Str("body", string(body)).
			Str("word", word).
			Msg("unsuccessful response from bing dictionary")
		return entry, fmt.Errorf("unsuccessful response %v", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return entry, fmt.Errorf("parse page: %w", err)
	}
	var parsed dictionary.Entry
	switch c.mode {
	case ModeSpans:
		fragments := doc.Find(selectorSpans).Map(func(_ int, s *goquery.Selection) string {
			return strings.TrimSpace(s.Text())
		})
		if len(fragments) == 0 {
			return entry, ErrNotFound
		}
		parsed = dictionary.ParseFragments(fragments)
	default:
		description, ok := doc.Find(selectorDescription).First().Attr("content")
		if !ok {
			return entry, ErrNotFound
		}
		parsed = c.parser.ParseDescription(description)
	}
	parsed.Word = word
	return parsed, nil
}

// NewClient creates Client with default HTTP client
func NewClient(mode Mode, parser dictionary.Parser) Client {
	return Client{baseURL: defaultBaseURL, mode: mode, parser: parser, client: http.DefaultClient}
}

// WithHTTPClient returns client copy using given HTTP client
func (c Client) WithHTTPClient(client *http.Client) Client {
	c.client = client
	return c
}
