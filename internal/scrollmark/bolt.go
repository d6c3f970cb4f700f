package scrollmark

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"catalogadmin/internal/logging"
)

var bucketScrollMarks = []byte("scroll_marks")

// BoltStore keeps marks in a bbolt file so they survive restarts.
type BoltStore struct {
	db     *bolt.DB
	logger logging.Logger
}

func OpenBoltStore(path string, logger logging.Logger) (*BoltStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("scroll mark db path is required")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketScrollMarks)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db, logger: logger}, nil
}

func (s *BoltStore) Get(key string) (int, bool) {
	var (
		offset int
		ok     bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScrollMarks)
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(key))
		if len(raw) != 8 {
			return nil
		}
		offset = int(binary.BigEndian.Uint64(raw))
		ok = true
		return nil
	})
	if err != nil {
		s.logger.Warn("scroll_mark_read_failed", logging.F("key", key), logging.Err(err))
		return 0, false
	}
	return offset, ok
}

func (s *BoltStore) Set(key string, offset int) {
	if offset < 0 {
		offset = 0
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(offset))
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScrollMarks)
		if b == nil {
			return errors.New("scroll marks bucket missing")
		}
		return b.Put([]byte(key), raw)
	})
	if err != nil {
		s.logger.Warn("scroll_mark_write_failed", logging.F("key", key), logging.Err(err))
	}
}

func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
