package service

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rbhz/trs/app/cache"
	"github.com/rbhz/trs/app/clipboard"
	"github.com/rbhz/trs/app/dictionary"
)

type fetcherFunc func(ctx context.Context, word string) (dictionary.Entry, error)

func (f fetcherFunc) Lookup(ctx context.Context, word string) (dictionary.Entry, error) {
	return f(ctx, word)
}

type translatorFunc func(ctx context.Context, text string) (string, error)

func (f translatorFunc) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

type speechFunc func(ctx context.Context, text string) (io.ReadCloser, error)

func (f speechFunc) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	return f(ctx, text)
}

// fakePlayer records played files and their content
type fakePlayer struct {
	paths   []string
	content []string
	err     error
}

func (p *fakePlayer) Play(_ context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p.paths = append(p.paths, path)
	p.content = append(p.content, string(data))
	return p.err
}

type fakeRenderer struct {
	entries      []dictionary.Entry
	translations []string
}

func (r *fakeRenderer) RenderEntry(entry dictionary.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeRenderer) RenderTranslation(text string) error {
	r.translations = append(r.translations, text)
	return nil
}

type failingCache struct{}

func (failingCache) Save(string) error {
	return errors.New("FAIL")
}

func (failingCache) Load() (string, error) {
	return "", errors.New("FAIL")
}

func ptrStr(s string) *string {
	return &s
}

func testEntry(word string) dictionary.Entry {
	return dictionary.Entry{
		Word: word,
		US:   ptrStr("test"),
		UK:   ptrStr("test"),
		Senses: []dictionary.Sense{
			{PartOfSpeech: "n.", Definition: "测试"},
			{PartOfSpeech: "网络释义", Definition: "试验"},
		},
	}
}

type testEnv struct {
	svc       *Service
	renderer  *fakeRenderer
	player    *fakePlayer
	clipboard *clipboard.Memory
	cache     *cache.InMemoryCache
	lookups   []string
	sentences []string
}

func newTestEnv(tempDir string) *testEnv {
	env := &testEnv{
		renderer:  &fakeRenderer{},
		player:    &fakePlayer{},
		clipboard: &clipboard.Memory{},
		cache:     cache.NewInMemoryCache(),
	}
	env.svc = New(Deps{
		Fetcher: fetcherFunc(func(_ context.Context, word string) (dictionary.Entry, error) {
			env.lookups = append(env.lookups, word)
			if word == "missing" {
				return dictionary.Entry{}, dictionary.ErrNotFound
			}
			return testEntry(word), nil
		}),
		Translator: translatorFunc(func(_ context.Context, text string) (string, error) {
			env.sentences = append(env.sentences, text)
			return "译文: " + text, nil
		}),
		Speech: speechFunc(func(_ context.Context, text string) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("MP3:" + text)), nil
		}),
		Clipboard: env.clipboard,
		Player:    env.player,
		Renderer:  env.renderer,
		Last:      env.cache,
		Entries:   env.cache,
		TempDir:   tempDir,
	})
	return env
}
