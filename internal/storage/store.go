// Package storage keeps a history of validation reports in a bbolt file.
package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"

	"github.com/pders01/jfeed/internal/report"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Layout: reports/<source>/<sequence> -> JSON report, metadata/<key> -> value.
var (
	reportsBucket = []byte("reports")
	metaBucket    = []byte("metadata")

	schemaKey     = []byte("schema_version")
	schemaVersion = []byte("1")
)

type Store struct {
	db *bolt.DB
}

// NewStore opens or creates the database at dbPath, creating parent
// directories as needed.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{reportsBucket, metaBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		meta := tx.Bucket(metaBucket)
		if meta.Get(schemaKey) == nil {
			return meta.Put(schemaKey, schemaVersion)
		}
		return nil
	})

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReport appends r to the history of r.Source.
func (s *Store) SaveReport(r *report.Report) error {
	if r == nil || r.Source == "" {
		return fmt.Errorf("report must have a source")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(reportsBucket).CreateBucketIfNotExists([]byte(r.Source))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		return b.Put(sequenceKey(seq), data)
	})
}

// GetReports returns the reports recorded for source, newest first. An
// empty source returns reports for every source. A positive limit caps
// the result.
func (s *Store) GetReports(source string, limit int) ([]*report.Report, error) {
	var reports []*report.Report
	err := s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(reportsBucket)
		if source != "" {
			b := root.Bucket([]byte(source))
			if b == nil {
				return ErrNoReports
			}
			return collect(b, &reports)
		}
		return root.ForEachBucket(func(name []byte) error {
			return collect(root.Bucket(name), &reports)
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CheckedAt.After(reports[j].CheckedAt)
	})
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

// Sources summarizes every source with recorded reports, sorted by name.
func (s *Store) Sources() ([]SourceSummary, error) {
	var out []SourceSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(reportsBucket)
		return root.ForEachBucket(func(name []byte) error {
			b := root.Bucket(name)
			sum := SourceSummary{Source: string(name), Reports: b.Stats().KeyN}
			// Sequence keys sort chronologically, so the last one is newest
			if _, v := b.Cursor().Last(); v != nil {
				var latest report.Report
				if err := json.Unmarshal(v, &latest); err == nil {
					sum.LastChecked = latest.CheckedAt
					sum.LastValid = latest.Valid
				}
			}
			out = append(out, sum)
			return nil
		})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out, err
}

// DeleteReports drops the whole history of source.
func (s *Store) DeleteReports(source string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(reportsBucket)
		if root.Bucket([]byte(source)) == nil {
			return ErrNoReports
		}
		return root.DeleteBucket([]byte(source))
	})
}

func collect(b *bolt.Bucket, into *[]*report.Report) error {
	return b.ForEach(func(_ []byte, v []byte) error {
		var r report.Report
		if err := json.Unmarshal(v, &r); err != nil {
			// Skip records written by an incompatible version
			return nil
		}
		*into = append(*into, &r)
		return nil
	})
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
