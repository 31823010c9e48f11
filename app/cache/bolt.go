package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rbhz/trs/app/dictionary"
	bolt "go.etcd.io/bbolt"
)

const (
	bucketDictionary = "Dictionary"
	bucketHistory    = "History"
	bucketLast       = "Last"

	keyLast = "text"
)

// BoltCache implements caches for BoltDB
type BoltCache struct {
	db  *bolt.DB
	now func() time.Time
}

// GetEntry returns dictionary entry from database
func (b *BoltCache) GetEntry(key string) (dictionary.Entry, error) {
	var res dictionary.Entry
	err := b.db.View(func(tx *bolt.Tx) error {
		jdata := tx.Bucket([]byte(bucketDictionary)).Get([]byte(key))
		if len(jdata) == 0 {
			return ErrNotFound
		}
		if err := json.Unmarshal(jdata, &res); err != nil {
			return fmt.Errorf("failed to unmarshal dictionary entry: %w", err)
		}
		return nil
	})
	return res, err
}

// SaveEntry saves dictionary entry to database
func (b *BoltCache) SaveEntry(key string, entry dictionary.Entry) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		jdata, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}
		if err := tx.Bucket([]byte(bucketDictionary)).Put([]byte(key), jdata); err != nil {
			return fmt.Errorf("failed to put entry: %w", err)
		}
		return nil
	})
}

// Save replaces last translation and appends it to history
func (b *BoltCache) Save(text string) error {
	record := NewRecord(text, b.now().UTC())
	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketLast)).Put([]byte(keyLast), []byte(text)); err != nil {
			return fmt.Errorf("failed to put last translation: %w", err)
		}
		history := tx.Bucket([]byte(bucketHistory))
		jdata, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		if err := history.Put([]byte(record.ID), jdata); err != nil {
			return fmt.Errorf("failed to put record: %w", err)
		}
		// drop oldest records
		var keys [][]byte
		c := history.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for ; len(keys) > maxHistory; keys = keys[1:] {
			if err := history.Delete(keys[0]); err != nil {
				return fmt.Errorf("failed to delete record: %w", err)
			}
		}
		return nil
	})
}

// Load returns last translation
func (b *BoltCache) Load() (string, error) {
	var text string
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketLast)).Get([]byte(keyLast))
		if data == nil {
			return ErrNotFound
		}
		text = string(data)
		return nil
	})
	return text, err
}

// History returns newest records first
func (b *BoltCache) History(limit int) ([]Record, error) {
	records := make([]Record, 0)
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketHistory)).Cursor()
		for k, v := c.Last(); k != nil && (limit <= 0 || len(records) < limit); k, v = c.Prev() {
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			records = append(records, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// NewBoltCache creates BoltCache instance and initialize buckets
func NewBoltCache(db *bolt.DB) (*BoltCache, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{bucketDictionary, bucketHistory, bucketLast} {
			_, err := tx.CreateBucketIfNotExists([]byte(bucket))
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BoltCache{db: db, now: time.Now}, nil
}
