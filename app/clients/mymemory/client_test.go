package mymemory

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

const exampleResponse = `{
	"responseData": {
	  "translatedText": "你好",
	  "match": 1
	},
	"quotaFinished": false,
	"mtLangSupported": null,
	"responseDetails": "",
	"responseStatus": 200,
	"responderId": "228",
	"exception_code": null,
	"matches": [
	  {
		"id": "589140219",
		"segment": "Hello",
		"translation": "你好",
		"source": "en-GB",
		"target": "zh-CN",
		"quality": "74",
		"reference": null,
		"usage-count": 2,
		"subject": "All",
		"created-by": "MateCat",
		"last-updated-by": "MateCat",
		"create-date": "2021-11-05 13:50:59",
		"last-update-date": "2021-11-05 13:50:59",
		"match": 1
	  },
	  {
		"id": "596601254",
		"segment": "Hello",
		"translation": "哈喽",
		"source": "en-GB",
		"target": "zh-CN",
		"quality": "74",
		"reference": null,
		"usage-count": 2,
		"subject": "All",
		"created-by": "MateCat",
		"last-updated-by": "MateCat",
		"create-date": "2022-01-27 17:07:12",
		"last-update-date": "2022-01-27 17:07:12",
		"match": 0.99
	  }
	]
}`

type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestTranslate(t *testing.T) {
	validUrl := "https://api.mymemory.translated.net/get?langpair=en%7Czh-CN&q=hello"
	word := "hello"
	t.Run("success", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validUrl, req.URL.String())
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(bytes.NewBufferString(exampleResponse)),
					Header:     make(http.Header),
				}, nil
			}),
		}
		client := Client{client: httpClient, from: "en", to: "zh-CN"}
		translation, err := client.Lookup(context.TODO(), word)

		assert.NoError(t, err)
		expected := TranslationResponse{
			Result: TranslationResult{Text: "你好", Match: 1},
			Matches: []TranslationMatch{
				{
					ID:          "589140219",
					Segment:     "Hello",
					Translation: "你好",
					Source:      "en-GB",
					Target:      "zh-CN",
					Quality:     "74",
					Reference:   nil,
					UsageCount:  2,
					Subject:     "All",
					Match:       1,
				},
				{
					ID:          "596601254",
					Segment:     "Hello",
					Translation: "哈喽",
					Source:      "en-GB",
					Target:      "zh-CN",
					Quality:     "74",
					Reference:   nil,
					UsageCount:  2,
					Subject:     "All",
					Match:       0.99,
				},
			},
			QuotaFinished:   false,
			ResponseDetails: "",
			ResponseStatus:  200,
			ResponderID:     "228",
			ExceptionCode:   nil,
		}
		assert.Equal(t, expected, translation)
	})
	t.Run("request error", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validUrl, req.URL.String())
				return &http.Response{}, http.ErrServerClosed
			}),
		}
		client := Client{client: httpClient, from: "en", to: "zh-CN"}
		translation, err := client.Lookup(context.TODO(), word)
		assert.ErrorIs(t, err, http.ErrServerClosed)
		assert.Equal(t, TranslationResponse{}, translation)
	})
	t.Run("invalid response", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validUrl, req.URL.String())
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(bytes.NewBufferString("Invalid JSON")),
					Header:     make(http.Header),
				}, nil
			}),
		}
		client := Client{client: httpClient, from: "en", to: "zh-CN"}
		translation, err := client.Lookup(context.TODO(), word)
		assert.Error(t, err)
		assert.Equal(t, TranslationResponse{}, translation)
	})
	t.Run("error status", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validUrl, req.URL.String())
				return &http.Response{
					StatusCode: 400,
					Body:       io.NopCloser(bytes.NewBufferString(`{"status": "ERROR"}`)),
					Header:     make(http.Header),
				}, nil
			}),
		}
		client := Client{client: httpClient, from: "en", to: "zh-CN"}
		translation, err := client.Lookup(context.TODO(), word)
		assert.Error(t, err)
		assert.Equal(t, TranslationResponse{}, translation)
	})
	t.Run("test same as input", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validUrl, req.URL.String())
				return &http.Response{
					StatusCode: 200,
					Body: io.NopCloser(
						bytes.NewBufferString(`{"responseData": {"translatedText": "Hello", "match": 1}}`),
					),
					Header: make(http.Header),
				}, nil
			}),
		}
		client := Client{client: httpClient, from: "en", to: "zh-CN"}
		_, err := client.Lookup(context.TODO(), word)
		assert.ErrorIs(t, err, ErrUnknown)

	})
}

func TestTranslateText(t *testing.T) {
	t.Run("success with token", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "secret", req.URL.Query().Get("key"))
				assert.Equal(t, "en|zh-CN", req.URL.Query().Get("langpair"))
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(bytes.NewBufferString(exampleResponse)),
					Header:     make(http.Header),
				}, nil
			}),
		}
		client := NewClient("en", "zh-CN", ptrStr("secret"))
		client.client = httpClient
		text, err := client.Translate(context.TODO(), "hello")
		assert.NoError(t, err)
		assert.Equal(t, "你好", text)
	})
	t.Run("error", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				return &http.Response{}, http.ErrServerClosed
			}),
		}
		client := NewClient("en", "zh-CN", nil)
		client.client = httpClient
		text, err := client.Translate(context.TODO(), "hello")
		assert.ErrorIs(t, err, http.ErrServerClosed)
		assert.Empty(t, text)
	})
}

func TestLanguageCode(t *testing.T) {
	t.Run("names", func(t *testing.T) {
		assert.Equal(t, "en", LanguageCode("auto"))
		assert.Equal(t, "zh-CN", LanguageCode("Chinese"))
		assert.Equal(t, "ja", LanguageCode(" japanese "))
	})
	t.Run("codes", func(t *testing.T) {
		assert.Equal(t, "zh-TW", LanguageCode("zh-TW"))
		assert.Equal(t, "it", LanguageCode("it"))
	})
	t.Run("default options langpair", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "en|zh-CN", req.URL.Query().Get("langpair"))
				return &http.Response{}, http.ErrServerClosed
			}),
		}
		client := NewClient(LanguageCode("auto"), LanguageCode("Chinese"), nil).WithHTTPClient(httpClient)
		_, err := client.Translate(context.TODO(), "hello")
		assert.ErrorIs(t, err, http.ErrServerClosed)
	})
}

func ptrStr(s string) *string {
	return &s
}
