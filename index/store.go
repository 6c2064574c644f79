// Package index stores TEOS DTOs in badger so storage layers can look
// envelopes up by identifier or mode without decoding them.
package index

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	teos "github.com/torlnapp/teos-go"
)

const keyPrefix = "dto/"

// ErrNotFound is returned when no DTO is stored under an identifier.
var ErrNotFound = errors.New("dto not found")

// Store is a badger-backed DTO index. It is safe for concurrent use.
type Store struct {
	db  *badger.DB
	log *logrus.Logger
}

// Open opens or creates the store described by config.
func Open(config Config) (*Store, error) {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	if err := config.checkConfig(); err != nil {
		return nil, fmt.Errorf("error checking config for index store: %w", err)
	}

	opts := badger.DefaultOptions(config.Path)
	if config.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("error opening index store: %w", err)
	}

	return &Store{db: db, log: config.Logger}, nil
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// Put stores dto under its identifier, replacing any previous entry.
func (s *Store) Put(dto *teos.DTO) error {
	if dto == nil || strings.TrimSpace(dto.ID) == "" {
		return errors.New("dto has no identifier")
	}

	value, err := teos.MarshalDTO(dto)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(dto.ID), value)
	})
	if err != nil {
		return fmt.Errorf("error writing dto %s: %w", dto.ID, err)
	}

	s.log.WithFields(logrus.Fields{"id": dto.ID, "mode": dto.Mode}).Debug("indexed envelope")
	return nil
}

// PutEnvelope projects env into a DTO and stores it.
func (s *Store) PutEnvelope(env *teos.Envelope) (*teos.DTO, error) {
	dto, err := teos.ToDTO(env)
	if err != nil {
		return nil, err
	}
	if err := s.Put(dto); err != nil {
		return nil, err
	}
	return dto, nil
}

// Get returns the DTO stored under id.
func (s *Store) Get(id string) (*teos.DTO, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading dto %s: %w", id, err)
	}

	return teos.UnmarshalDTO(value)
}

// Delete removes the DTO stored under id.
func (s *Store) Delete(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(id)); err != nil {
			return err
		}
		return txn.Delete(key(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("error deleting dto %s: %w", id, err)
	}
	return nil
}

// List returns the stored DTOs of the given mode ordered by timestamp, then
// identifier. An empty mode lists every DTO.
func (s *Store) List(mode teos.Mode) ([]*teos.DTO, error) {
	var dtos []*teos.DTO
	prefix := []byte(keyPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			dto, err := teos.UnmarshalDTO(value)
			if err != nil {
				s.log.WithField("key", string(it.Item().Key())).Warn("skipping undecodable index entry")
				continue
			}
			if mode == "" || dto.Mode == mode {
				dtos = append(dtos, dto)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing dtos: %w", err)
	}

	slices.SortFunc(dtos, func(a, b *teos.DTO) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return dtos, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
