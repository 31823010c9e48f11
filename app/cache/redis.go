package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rbhz/trs/app/dictionary"
)

const (
	prefixWord = "word:"
	keyLastTr  = "last_translation"
	keyHistory = "history"
)

// RedisCache implements caches for redis
type RedisCache struct {
	db  *redis.Client
	now func() time.Time
}

// GetEntry from redis
func (s *RedisCache) GetEntry(key string) (dictionary.Entry, error) {
	data, err := s.db.Get(context.Background(), prefixWord+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return dictionary.Entry{}, ErrNotFound
		}
		return dictionary.Entry{}, fmt.Errorf("fetching word: %w", err)
	}
	var entry dictionary.Entry
	if jerr := json.NewDecoder(bytes.NewBufferString(data)).Decode(&entry); jerr != nil {
		return entry, fmt.Errorf("unmarshal word: %w", jerr)
	}
	return entry, nil
}

// SaveEntry to redis
func (s *RedisCache) SaveEntry(key string, entry dictionary.Entry) error {
	jdata, jerr := json.Marshal(entry)
	if jerr != nil {
		return fmt.Errorf("marshal word: %w", jerr)
	}
	if err := s.db.Set(context.Background(), prefixWord+key, string(jdata), 0).Err(); err != nil {
		return fmt.Errorf("saving word: %w", err)
	}
	return nil
}

// Save last translation and push it to history list
func (s *RedisCache) Save(text string) error {
	ctx := context.Background()
	if err := s.db.Set(ctx, keyLastTr, text, 0).Err(); err != nil {
		return fmt.Errorf("saving last translation: %w", err)
	}
	jdata, jerr := json.Marshal(NewRecord(text, s.now().UTC()))
	if jerr != nil {
		return fmt.Errorf("marshal record: %w", jerr)
	}
	if err := s.db.LPush(ctx, keyHistory, string(jdata)).Err(); err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	if err := s.db.LTrim(ctx, keyHistory, 0, maxHistory-1).Err(); err != nil {
		return fmt.Errorf("trimming history: %w", err)
	}
	return nil
}

// Load last translation from redis
func (s *RedisCache) Load() (string, error) {
	text, err := s.db.Get(context.Background(), keyLastTr).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("fetching last translation: %w", err)
	}
	return text, nil
}

// History returns newest records first
func (s *RedisCache) History(limit int) ([]Record, error) {
	stop := int64(limit) - 1
	if limit <= 0 {
		stop = -1
	}
	items, err := s.db.LRange(context.Background(), keyHistory, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}
	records := make([]Record, 0, len(items))
	for _, item := range items {
		var r Record
		if jerr := json.Unmarshal([]byte(item), &r); jerr != nil {
			return nil, fmt.Errorf("unmarshal record: %w", jerr)
		}
		records = append(records, r)
	}
	return records, nil
}

// NewRedisCache creates RedisCache with given url
func NewRedisCache(url string) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{db: rdb, now: time.Now}, nil
}

// Close closes redis client
func (s *RedisCache) Close() error {
	return s.db.Close()
}
