package cache

import (
	"sync"
	"time"

	"github.com/rbhz/trs/app/dictionary"
)

type InMemoryCache struct {
	entries map[string]dictionary.Entry
	history []Record
	mx      sync.RWMutex
}

func (c *InMemoryCache) GetEntry(key string) (dictionary.Entry, error) {
	c.mx.RLock()
	defer c.mx.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return dictionary.Entry{}, ErrNotFound
	}
	return entry, nil
}

func (c *InMemoryCache) SaveEntry(key string, entry dictionary.Entry) error {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.entries[key] = entry
	return nil
}

func (c *InMemoryCache) Save(text string) error {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.history = append(c.history, NewRecord(text, time.Now().UTC()))
	if len(c.history) > maxHistory {
		c.history = c.history[len(c.history)-maxHistory:]
	}
	return nil
}

func (c *InMemoryCache) Load() (string, error) {
	c.mx.RLock()
	defer c.mx.RUnlock()
	if len(c.history) == 0 {
		return "", ErrNotFound
	}
	return c.history[len(c.history)-1].Text, nil
}

func (c *InMemoryCache) History(limit int) ([]Record, error) {
	c.mx.RLock()
	defer c.mx.RUnlock()
	result := make([]Record, 0, len(c.history))
	for i := len(c.history) - 1; i >= 0 && (limit <= 0 || len(result) < limit); i-- {
		result = append(result, c.history[i])
	}
	return result, nil
}

func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{entries: make(map[string]dictionary.Entry)}
}
