package storage

import (
	"crypto/sha1" //nolint:gosec // non-cryptographic key derivation
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wikideck-hq/wikideck-forge/internal/domain"
	bolt "go.etcd.io/bbolt"
)

const (
	articleBucket    = "articles"
	expiryValueBytes = 8
)

// boltCache implements a Cache backed by BoltDB. Values carry an 8-byte
// big-endian expiry prefix followed by the article JSON.
type boltCache struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	articleTTL      time.Duration
	cleanupInterval time.Duration
}

// openBolt initializes a BoltDB-backed Cache.
func openBolt(path string, opts Options) (Cache, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(articleBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	cache := &boltCache{
		db:              db,
		articleTTL:      opts.ArticleTTL,
		cleanupInterval: opts.CleanupInterval,
	}
	cache.lastCleanup.Store(time.Now().Unix())
	return cache, nil
}

// Close closes the BoltDB cache.
func (b *boltCache) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Get returns the cached article for the URL if present and unexpired.
func (b *boltCache) Get(url string) (*domain.Article, bool, error) {
	if b == nil || b.db == nil {
		return nil, false, nil
	}

	if err := b.maybeCleanupExpired(time.Now()); err != nil {
		return nil, false, err
	}

	var article *domain.Article
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(articleBucket))
		if bucket == nil {
			return fmt.Errorf("article bucket missing")
		}

		key := []byte(hashURL(url))
		value := bucket.Get(key)
		if value == nil {
			return nil
		}

		expiry, payload, ok := decodeValue(value)
		if !ok || !expiry.After(time.Now()) {
			return bucket.Delete(key)
		}

		var a domain.Article
		if err := json.Unmarshal(payload, &a); err != nil {
			// Unreadable entries are dropped, not surfaced.
			return bucket.Delete(key)
		}
		article = &a
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return article, article != nil, nil
}

// Put stores the article for the URL with the configured TTL.
func (b *boltCache) Put(url string, article *domain.Article) error {
	if b == nil || b.db == nil || article == nil {
		return nil
	}

	now := time.Now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}

	payload, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("marshal article: %w", err)
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(articleBucket))
		if bucket == nil {
			return fmt.Errorf("article bucket missing")
		}
		buf := make([]byte, expiryValueBytes, expiryValueBytes+len(payload))
		binary.BigEndian.PutUint64(buf, uint64(now.Add(b.articleTTL).Unix()))
		buf = append(buf, payload...)
		return bucket.Put([]byte(hashURL(url)), buf)
	})
}

// maybeCleanupExpired removes expired entries on a fixed cadence to avoid unbounded growth.
func (b *boltCache) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(articleBucket))
		if bucket == nil {
			return fmt.Errorf("article bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			expiry, _, ok := decodeValue(v)
			if !ok || !expiry.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

// decodeValue splits a stored value into expiry and article payload.
func decodeValue(value []byte) (time.Time, []byte, bool) {
	if len(value) < expiryValueBytes {
		return time.Time{}, nil, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:expiryValueBytes]))
	if unix <= 0 {
		return time.Time{}, nil, false
	}
	return time.Unix(unix, 0), value[expiryValueBytes:], true
}

func hashURL(u string) string {
	sum := sha1.Sum([]byte(u))
	return hex.EncodeToString(sum[:])
}
