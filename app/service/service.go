package service

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rbhz/trs/app/cache"
	"github.com/rbhz/trs/app/dictionary"
	log "github.com/rs/zerolog/log"
)

var (
	// ErrMissingAPIKey is returned when sentence translation is not configured
	ErrMissingAPIKey = errors.New("translation api key is not configured")
	// ErrSpeechUnavailable is returned when speech synthesis is not configured
	ErrSpeechUnavailable = errors.New("speech synthesis is not configured")
	// ErrHistoryUnsupported is returned when cache does not keep history
	ErrHistoryUnsupported = errors.New("history is not supported by cache")
	// ErrNoInput is returned when there is nothing to translate
	ErrNoInput = errors.New("nothing to translate")
)

// DictionaryFetcher looks up a single word
type DictionaryFetcher interface {
	Lookup(ctx context.Context, word string) (dictionary.Entry, error)
}

// TranslationService translates sentences
type TranslationService interface {
	Translate(ctx context.Context, text string) (string, error)
}

// SpeechSynthesizer converts text to mp3 audio
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (io.ReadCloser, error)
}

// ClipboardAccess reads and writes system clipboard
type ClipboardAccess interface {
	Copy(text string) error
	Paste() (string, error)
}

// Player plays audio file and returns when playback is finished
type Player interface {
	Play(ctx context.Context, path string) error
}

// Renderer displays results
type Renderer interface {
	RenderEntry(entry dictionary.Entry) error
	RenderTranslation(text string) error
}

// Deps are service collaborators. Translator, Speech, Player and Entries are optional.
type Deps struct {
	Fetcher    DictionaryFetcher
	Translator TranslationService
	Speech     SpeechSynthesizer
	Clipboard  ClipboardAccess
	Player     Player
	Renderer   Renderer
	Last       cache.TranslationCache
	Entries    cache.EntryCache
	// EntryNamespace separates cached entries parsed with different settings
	EntryNamespace string
	// TempDir is used for synthesized audio, empty means OS default
	TempDir string
}

// Service implements translation workflow
type Service struct {
	Deps
}

// IsSingleWord returns true if trimmed content has no spaces
func IsSingleWord(content string) bool {
	return !strings.Contains(strings.TrimSpace(content), " ")
}

// LookupWord returns dictionary entry using entry cache when available
func (s *Service) LookupWord(ctx context.Context, word string) (dictionary.Entry, error) {
	word = strings.TrimSpace(word)
	key := cache.EntryKey(s.EntryNamespace, word)
	if s.Entries != nil {
		entry, err := s.Entries.GetEntry(key)
		if err == nil {
			log.Debug().Str("word", word).Msg("entry cache hit")
			return entry, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			log.Warn().Err(err).Str("word", word).Msg("failed to get cached entry")
		} else {
			log.Debug().Str("word", word).Msg("entry cache miss")
		}
	}
	entry, err := s.Fetcher.Lookup(ctx, word)
	if err != nil {
		return entry, errors.Wrap(err, "failed to lookup word")
	}
	if entry.IsEmpty() {
		return entry, dictionary.ErrNotFound
	}
	if s.Entries != nil {
		if err := s.Entries.SaveEntry(key, entry); err != nil {
			log.Warn().Err(err).Str("word", word).Msg("failed to cache entry")
		}
	}
	return entry, nil
}

// TranslateSentence translates sentence with configured translator
func (s *Service) TranslateSentence(ctx context.Context, sentence string) (string, error) {
	if s.Translator == nil {
		return "", ErrMissingAPIKey
	}
	translation, err := s.Translator.Translate(ctx, sentence)
	if err != nil {
		return "", errors.Wrap(err, "failed to translate sentence")
	}
	return translation, nil
}

// ProcessWord looks up word, renders it and remembers flattened entry as last translation
func (s *Service) ProcessWord(ctx context.Context, word string) (string, error) {
	entry, err := s.LookupWord(ctx, word)
	if err != nil {
		return "", err
	}
	if err := s.Renderer.RenderEntry(entry); err != nil {
		return "", errors.Wrap(err, "failed to render entry")
	}
	flat := dictionary.Flatten(entry)
	if err := s.Last.Save(flat); err != nil {
		return "", errors.Wrap(err, "failed to save translation")
	}
	return flat, nil
}

// ProcessSentence translates sentence, renders it and remembers it as last translation
func (s *Service) ProcessSentence(ctx context.Context, sentence string) (string, error) {
	translation, err := s.TranslateSentence(ctx, sentence)
	if err != nil {
		return "", err
	}
	if err := s.Renderer.RenderTranslation(translation); err != nil {
		return "", errors.Wrap(err, "failed to render translation")
	}
	if err := s.Last.Save(translation); err != nil {
		return "", errors.Wrap(err, "failed to save translation")
	}
	return translation, nil
}

// Process dispatches content to word lookup or sentence translation
func (s *Service) Process(ctx context.Context, content string) (string, error) {
	if IsSingleWord(content) {
		return s.ProcessWord(ctx, content)
	}
	return s.ProcessSentence(ctx, content)
}

// Translate returns text for content without rendering; words are flattened
func (s *Service) Translate(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrNoInput
	}
	var text string
	if IsSingleWord(content) {
		entry, err := s.LookupWord(ctx, content)
		if err != nil {
			return "", err
		}
		text = dictionary.Flatten(entry)
	} else {
		translation, err := s.TranslateSentence(ctx, content)
		if err != nil {
			return "", err
		}
		text = translation
	}
	if err := s.Last.Save(text); err != nil {
		return "", errors.Wrap(err, "failed to save translation")
	}
	return text, nil
}

// LastTranslation returns last saved translation or cache.ErrNotFound
func (s *Service) LastTranslation() (string, error) {
	text, err := s.Last.Load()
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return "", err
		}
		return "", errors.Wrap(err, "failed to load last translation")
	}
	return text, nil
}

// CopyLast copies last translation to clipboard
func (s *Service) CopyLast() error {
	text, err := s.LastTranslation()
	if err != nil {
		return err
	}
	return errors.Wrap(s.Clipboard.Copy(text), "failed to copy translation")
}

// SaveLast writes last translation to path
func (s *Service) SaveLast(path string) error {
	text, err := s.LastTranslation()
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, []byte(text), 0644), "failed to write translation")
}

// TranslateClipboard processes clipboard content and returns it with translation
func (s *Service) TranslateClipboard(ctx context.Context) (content string, translation string, err error) {
	content, err = s.Clipboard.Paste()
	if err != nil {
		return "", "", errors.Wrap(err, "failed to read clipboard")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", "", ErrNoInput
	}
	translation, err = s.Process(ctx, content)
	return content, translation, err
}

// Speak synthesizes text and plays it. Temp audio file is always removed.
func (s *Service) Speak(ctx context.Context, text string) error {
	if s.Speech == nil || s.Player == nil {
		return ErrSpeechUnavailable
	}
	audio, err := s.Speech.Synthesize(ctx, text)
	if err != nil {
		return errors.Wrap(err, "failed to synthesize speech")
	}
	defer audio.Close()

	f, err := os.CreateTemp(s.TempDir, "trs-*.mp3")
	if err != nil {
		return errors.Wrap(err, "failed to create audio file")
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil {
			log.Warn().Err(err).Str("path", f.Name()).Msg("failed to remove audio file")
		}
	}()
	_, err = io.Copy(f, audio)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrap(err, "failed to write audio file")
	}
	return errors.Wrap(s.Player.Play(ctx, f.Name()), "failed to play audio")
}

// History returns newest saved translations if cache keeps them
func (s *Service) History(limit int) ([]cache.Record, error) {
	store, ok := s.Last.(cache.HistoryStore)
	if !ok {
		return nil, ErrHistoryUnsupported
	}
	records, err := store.History(limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get history")
	}
	return records, nil
}

// New creates Service
func New(deps Deps) *Service {
	return &Service{Deps: deps}
}
