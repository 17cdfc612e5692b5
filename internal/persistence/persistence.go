package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/pidfan/internal/controller"
	"github.com/markusressel/pidfan/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketCycles = "cycles"
)

// History is a diagnostic log of control cycles, it is never read back by the control loop
type History interface {
	Init() error

	SaveCycle(fanId string, result controller.CycleResult) error
	// LoadCycles returns the most recent cycles of the given fan, oldest first.
	// A limit <= 0 returns all stored cycles.
	LoadCycles(fanId string, limit int) ([]controller.CycleResult, error)
	DeleteCycles(fanId string) error
}

type history struct {
	dbPath     string
	maxEntries int
	logger     ui.Logger
}

// NewHistory creates a History stored at dbPath, keeping at most maxEntries cycles per fan (<= 0: unlimited)
func NewHistory(dbPath string, maxEntries int, logger ui.Logger) History {
	return &history{
		dbPath:     dbPath,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

func (p history) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		p.logger.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p history) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", p.dbPath, err)
	}
	return db, nil
}

// SaveCycle appends the given cycle to the history of the given fan and prunes old entries
func (p history) SaveCycle(fanId string, result controller.CycleResult) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists([]byte(BucketCycles))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		b, err := root.CreateBucketIfNotExists([]byte(fanId))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		err = b.Put(sequenceKey(seq), data)
		if err != nil {
			return err
		}

		return p.prune(b)
	})
}

// prune removes the oldest entries of b until at most maxEntries remain
func (p history) prune(b *bolt.Bucket) error {
	if p.maxEntries <= 0 {
		return nil
	}

	count := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		count++
	}

	var toDelete [][]byte
	for k, _ := c.First(); k != nil && count > p.maxEntries; k, _ = c.Next() {
		toDelete = append(toDelete, append([]byte(nil), k...))
		count--
	}
	for _, k := range toDelete {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// LoadCycles loads the most recent cycles of the given fan from persistence
func (p history) LoadCycles(fanId string, limit int) ([]controller.CycleResult, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []controller.CycleResult
	err = db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(BucketCycles))
		if root == nil {
			return os.ErrNotExist
		}
		b := root.Bucket([]byte(fanId))
		if b == nil {
			return os.ErrNotExist
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil && (limit <= 0 || len(result) < limit); k, v = c.Prev() {
			var cycle controller.CycleResult
			err := json.Unmarshal(v, &cycle)
			if err != nil {
				p.logger.Warning("Unable to unmarshal saved cycle %d of %s: %v", binary.BigEndian.Uint64(k), fanId, err)
				continue
			}
			result = append(result, cycle)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// newest last
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}

func (p history) DeleteCycles(fanId string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(BucketCycles))
		if root == nil {
			// no cycles bucket yet
			return nil
		}
		if root.Bucket([]byte(fanId)) == nil {
			// no data for given key
			return nil
		}
		return root.DeleteBucket([]byte(fanId))
	})
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
