package mymemory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrUnknown = errors.New("failed to translate query")

const apiURL = "https://api.mymemory.translated.net/get"

// Client implements integration with mymemory translations API
// docs: https://mymemory.translated.net/doc/spec.php
type Client struct {
	apiToken *string
	from     string
	to       string
	client   *http.Client
}

// Lookup queries API and returns full response
func (c Client) Lookup(ctx context.Context, q string) (TranslationResponse, error) {
	var result TranslationResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return result, fmt.Errorf("failed to create request: %w", err)
	}
	query := req.URL.Query()
	query.Add("q", q)
	query.Add("langpair", fmt.Sprintf("%s|%s", c.from, c.to))
	if c.apiToken != nil {
		query.Add("key", *c.apiToken)
	}
	req.URL.RawQuery = query.Encode()
	response, err := c.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("failed to execute request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return result, fmt.Errorf("failed to read response body: %w", err)
	}

	if response.StatusCode != 200 {
		log.Error().
			Str("status", response.Status).
			Str("body", string(body)).
			Msg("unsuccessful response from mymemory translated API")
		return result, fmt.Errorf("unsuccessful API response %v", response.StatusCode)
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if strings.EqualFold(result.Result.Text, q) {
		return result, ErrUnknown
	}
	return result, nil
}

// Translate returns best translation of text
func (c Client) Translate(ctx context.Context, text string) (string, error) {
	result, err := c.Lookup(ctx, text)
	if err != nil {
		return "", err
	}
	return result.Result.Text, nil
}

// NewClient creates client for given language pair, apiToken is optional
func NewClient(from string, to string, apiToken *string) Client {
	return Client{apiToken: apiToken, from: from, to: to, client: http.DefaultClient}
}

// WithHTTPClient returns client copy using given HTTP client
func (c Client) WithHTTPClient(client *http.Client) Client {
	c.client = client
	return c
}

// languageCodes maps language names accepted by model translators to MyMemory codes.
// MyMemory has no autodetection, auto falls back to English.
var languageCodes = map[string]string{
	"auto":                "en",
	"english":             "en",
	"chinese":             "zh-CN",
	"simplified chinese":  "zh-CN",
	"traditional chinese": "zh-TW",
	"japanese":            "ja",
	"korean":              "ko",
	"french":              "fr",
	"german":              "de",
	"spanish":             "es",
	"russian":             "ru",
}

// LanguageCode returns MyMemory code for language name, unknown names are used as codes
func LanguageCode(name string) string {
	name = strings.TrimSpace(name)
	if code, ok := languageCodes[strings.ToLower(name)]; ok {
		return code
	}
	return name
}
