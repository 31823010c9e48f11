package api

import (
	"context"
	"errors"
	"net/http/httptest"

	"github.com/rbhz/trs/app/cache"
	"github.com/rbhz/trs/app/dictionary"
	"github.com/rbhz/trs/app/service"
)

// testFetcher knows only word "test"
type testFetcher struct{}

func (testFetcher) Lookup(_ context.Context, word string) (dictionary.Entry, error) {
	if word != "test" {
		return dictionary.Entry{}, dictionary.ErrNotFound
	}
	return dictionary.Entry{Word: "test", Senses: []dictionary.Sense{{PartOfSpeech: "n.", Definition: "测试"}}}, nil
}

type testTranslator struct{}

func (testTranslator) Translate(_ context.Context, text string) (string, error) {
	return "译文: " + text, nil
}

// ErrorTranslator is a dummy translator for testing error handling.
type ErrorTranslator struct{}

func (ErrorTranslator) LookupWord(context.Context, string) (dictionary.Entry, error) {
	return dictionary.Entry{}, errors.New("test")
}

func (ErrorTranslator) Translate(context.Context, string) (string, error) {
	return "", errors.New("test")
}

func (ErrorTranslator) LastTranslation() (string, error) {
	return "", errors.New("test")
}

func (ErrorTranslator) History(int) ([]cache.Record, error) {
	return nil, errors.New("test")
}

func getTestService(last cache.TranslationCache) *service.Service {
	if last == nil {
		last = cache.NewInMemoryCache()
	}
	return service.New(service.Deps{
		Fetcher:    testFetcher{},
		Translator: testTranslator{},
		Last:       last,
	})
}

// getTestServer returns a test server.
func getTestServer(translator Translator) (*httptest.Server, func()) {
	if translator == nil {
		translator = getTestService(nil)
	}
	server := NewServer(translator)
	srv := httptest.NewServer(server.router)
	return srv, srv.Close
}
