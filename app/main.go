package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	log "github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"

	"github.com/rbhz/trs/app/api"
	"github.com/rbhz/trs/app/cache"
	"github.com/rbhz/trs/app/clients/bingdict"
	"github.com/rbhz/trs/app/clients/dashscope"
	"github.com/rbhz/trs/app/clients/mymemory"
	"github.com/rbhz/trs/app/clients/speech"
	"github.com/rbhz/trs/app/clipboard"
	"github.com/rbhz/trs/app/config"
	"github.com/rbhz/trs/app/dictionary"
	"github.com/rbhz/trs/app/player"
	"github.com/rbhz/trs/app/render"
	"github.com/rbhz/trs/app/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, rest, err := config.Parse(os.Args[1:])
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}
	setupLog(opts.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	last, entries, closeCache := getCache(opts)
	defer closeCache()
	svc, err := getService(opts, last, entries)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize")
		return 1
	}

	if opts.Serve {
		if err := api.NewServer(svc).Run(ctx, opts.Port); err != nil {
			log.Error().Err(err).Msg("failed to run API server")
			return 1
		}
		return 0
	}

	req := service.Request{
		Text:          rest,
		Copy:          opts.Copy,
		Save:          opts.Save,
		Voice:         opts.Voice,
		TranslateClip: opts.TranslateClip,
		Output:        opts.Output,
	}
	if err := svc.Run(ctx, req, service.Console{Out: os.Stdout, In: os.Stdin}); err != nil {
		log.Error().Err(err).Msg("failed to translate")
		return 1
	}
	return 0
}

func setupLog(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using warn")
	}
}

func getService(opts config.Opts, last cache.TranslationCache, entries cache.EntryCache) (*service.Service, error) {
	vocabulary := dictionary.DefaultVocabulary()
	if len(opts.POS) > 0 {
		v, err := dictionary.NewVocabulary(append(vocabulary.Tags(), opts.POS...)...)
		if err != nil {
			return nil, err
		}
		vocabulary = v
	}
	repeat := dictionary.RepeatOverwrite
	if opts.MergeRepeated {
		repeat = dictionary.RepeatMerge
	}
	httpClient := &http.Client{Timeout: opts.Timeout}
	parser := dictionary.NewParser(vocabulary, repeat)

	deps := service.Deps{
		Fetcher:        bingdict.NewClient(bingdict.Mode(opts.Mode), parser).WithHTTPClient(httpClient),
		Clipboard:      clipboard.System{},
		Renderer:       render.NewConsole(os.Stdout),
		Last:           last,
		Entries:        entries,
		EntryNamespace: cache.Namespace(opts.Mode + "|" + parser.Signature()),
	}
	switch {
	case opts.Translator == "mymemory":
		var token *string
		if opts.MyMemory != "" {
			token = &opts.MyMemory
		}
		from, to := mymemory.LanguageCode(opts.SourceLang), mymemory.LanguageCode(opts.TargetLang)
		deps.Translator = mymemory.NewClient(from, to, token).WithHTTPClient(httpClient)
	case opts.APIKey != "":
		options := dashscope.TranslationOptions{SourceLang: opts.SourceLang, TargetLang: opts.TargetLang}
		deps.Translator = dashscope.NewClient(opts.APIKey, opts.BaseURL, opts.Model, options, httpClient)
	}
	if opts.TTSKey != "" {
		deps.Speech = speech.NewClient(opts.TTSKey, opts.TTSURL, opts.TTSModel, opts.VoiceName, httpClient)
	}
	if p, err := player.New(opts.Player); err != nil {
		log.Debug().Err(err).Msg("audio playback disabled")
	} else {
		deps.Player = p
	}
	if !(clipboard.System{}).Supported() {
		log.Debug().Msg("system clipboard is not supported")
	}
	return service.New(deps), nil
}

func getCache(opts config.Opts) (cache.TranslationCache, cache.EntryCache, func()) {
	switch opts.Cache {
	case "redis":
		redisCache, err := cache.NewRedisCache(opts.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create redis client")
		}
		return redisCache, redisCache, func() {
			if err := redisCache.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close redis client")
			}
		}
	case "bolt":
		path := opts.BoltDB
		if path == "" {
			path = defaultBoltPath()
		}
		boltDB, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("failed to open boltDB database")
		}
		boltCache, err := cache.NewBoltCache(boltDB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create bolt cache")
		}
		return boltCache, boltCache, func() {
			if err := boltDB.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close boltDB database")
			}
		}
	case "memory":
		memoryCache := cache.NewInMemoryCache()
		return memoryCache, memoryCache, func() {}
	default:
		return cache.NewFileCache(""), nil, func() {}
	}
}

func defaultBoltPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "./trs.data"
	}
	dir = filepath.Join(dir, "trs")
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("failed to create cache directory")
		return "./trs.data"
	}
	return filepath.Join(dir, "trs.data")
}
