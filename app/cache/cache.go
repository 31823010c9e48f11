package cache

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rbhz/trs/app/dictionary"
)

// ErrNotFound is returned when nothing is cached
var ErrNotFound = errors.New("not found")

// TranslationCache keeps the last translation between invocations
type TranslationCache interface {
	// Save replaces last translation
	Save(text string) error
	// Load returns last translation or ErrNotFound
	Load() (string, error)
}

// EntryCache keeps looked up dictionary entries by word
type EntryCache interface {
	// GetEntry returns cached entry or ErrNotFound
	GetEntry(key string) (dictionary.Entry, error)
	// SaveEntry caches entry under key
	SaveEntry(key string, entry dictionary.Entry) error
}

// HistoryStore returns saved translations, newest first
type HistoryStore interface {
	History(limit int) ([]Record, error)
}

// Record holds a single saved translation
type Record struct {
	ID      string
	Text    string
	Created time.Time
}

// maxHistory limits number of kept history records
const maxHistory = 100

// GenerateID generates new uuid and encodes it to base64
func GenerateID() string {
	id := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// Namespace derives short stable key prefix from parser configuration
func Namespace(config string) string {
	id := [16]byte(uuid.NewSHA1(uuid.NameSpaceOID, []byte(config)))
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// EntryKey returns word cache key, empty namespace means plain word
func EntryKey(namespace, word string) string {
	if namespace == "" {
		return word
	}
	return namespace + ":" + word
}

// NewRecord creates history record with sortable ID
func NewRecord(text string, created time.Time) Record {
	return Record{
		ID:      fmt.Sprintf("%020d-%s", created.UnixNano(), GenerateID()),
		Text:    text,
		Created: created,
	}
}
