package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"catalogadmin/internal/types"
)

type bboltRepository struct {
	db      *bolt.DB
	catalog CatalogStore
}

func NewBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltRepository{db: db, catalog: &bboltCatalogStore{db: db}}, nil
}

func (r *bboltRepository) Catalog() CatalogStore {
	return r.catalog
}

func (r *bboltRepository) Backend() string {
	return RepositoryBackendBbolt
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		for _, res := range types.Resources() {
			if _, err := tx.CreateBucketIfNotExists(bucketFor(res)); err != nil {
				return err
			}
		}
		return nil
	})
}

func bucketFor(res types.Resource) []byte {
	return []byte(res.Name)
}

// recordKey maps a numeric id onto a big-endian key so cursor order is id
// order. Non-numeric ids never exist in the store.
func recordKey(id types.ID) ([]byte, uint64, bool) {
	seq, err := strconv.ParseUint(strings.TrimSpace(id.String()), 10, 64)
	if err != nil || seq == 0 {
		return nil, 0, false
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key, seq, true
}

type bboltCatalogStore struct {
	db *bolt.DB
}

func (s *bboltCatalogStore) bucket(tx *bolt.Tx, res types.Resource) (*bolt.Bucket, error) {
	b := tx.Bucket(bucketFor(res))
	if b == nil {
		return nil, fmt.Errorf("%s bucket missing", res.Name)
	}
	return b, nil
}

func (s *bboltCatalogStore) Scan(ctx context.Context, res types.Resource, fn func(raw []byte) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b, err := s.bucket(tx, res)
		if err != nil {
			return err
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *bboltCatalogStore) Get(ctx context.Context, res types.Resource, id types.ID) ([]byte, error) {
	key, _, ok := recordKey(id)
	if !ok {
		return nil, ErrNotFound
	}
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := s.bucket(tx, res)
		if err != nil {
			return err
		}
		raw := b.Get(key)
		if len(raw) == 0 {
			return ErrNotFound
		}
		out = append([]byte(nil), raw...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bboltCatalogStore) Insert(ctx context.Context, res types.Resource, build func(id types.ID) (any, error)) ([]byte, error) {
	var out []byte
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := s.bucket(tx, res)
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		id := types.ID(strconv.FormatUint(seq, 10))
		record, err := build(id)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(record)
		if err != nil {
			return err
		}
		key, _, _ := recordKey(id)
		if err := b.Put(key, raw); err != nil {
			return err
		}
		out = raw
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bboltCatalogStore) Replace(ctx context.Context, res types.Resource, id types.ID, update func(current []byte) (any, error)) ([]byte, error) {
	key, _, ok := recordKey(id)
	if !ok {
		return nil, ErrNotFound
	}
	var out []byte
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := s.bucket(tx, res)
		if err != nil {
			return err
		}
		current := b.Get(key)
		if len(current) == 0 {
			return ErrNotFound
		}
		record, err := update(append([]byte(nil), current...))
		if err != nil {
			return err
		}
		raw, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if err := b.Put(key, raw); err != nil {
			return err
		}
		out = raw
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bboltCatalogStore) Restore(ctx context.Context, res types.Resource, id types.ID, record any) error {
	key, seq, ok := recordKey(id)
	if !ok {
		return fmt.Errorf("%s: invalid id %q", res.Singular, id)
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := s.bucket(tx, res)
		if err != nil {
			return err
		}
		if seq > b.Sequence() {
			if err := b.SetSequence(seq); err != nil {
				return err
			}
		}
		return b.Put(key, raw)
	})
}

func (s *bboltCatalogStore) Delete(ctx context.Context, res types.Resource, id types.ID) error {
	key, _, ok := recordKey(id)
	if !ok {
		return ErrNotFound
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := s.bucket(tx, res)
		if err != nil {
			return err
		}
		if b.Get(key) == nil {
			return ErrNotFound
		}
		return b.Delete(key)
	})
}

func (s *bboltCatalogStore) Count(ctx context.Context, res types.Resource) (int, error) {
	count := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := s.bucket(tx, res)
		if err != nil {
			return err
		}
		count = b.Stats().KeyN
		return nil
	})
	return count, err
}
