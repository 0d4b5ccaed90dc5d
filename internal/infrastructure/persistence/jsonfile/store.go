// Package jsonfile implements the roster store as a flat JSON file.
//
// The file holds a JSON array of student records:
//
//	[
//	    {"name": "Ada", "roll_number": 1, "grades": {"Math": 95, "CS": 98}}
//	]
//
// There is no envelope and no schema version.
package jsonfile

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
)

const indent = "    "

// Store persists the roster to a single JSON file.
// It remembers the BLAKE2b digest of the content it last read or wrote, so an
// edit made to the file by anything else can be detected before overwriting it.
type Store struct {
	path   string
	log    *logger.Logger
	synced string
}

var (
	_ roster.Store         = (*Store)(nil)
	_ roster.ChangeTracker = (*Store)(nil)
)

// NewStore creates a store for the file at path.
func NewStore(path string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		path: path,
		log:  log.With(logger.Component("jsonfile"), logger.Path(path)),
	}
}

// Location returns the file path.
func (s *Store) Location() string {
	return s.path
}

// Save writes all records as a pretty-printed JSON array, replacing the file.
func (s *Store) Save(ctx context.Context, records []student.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []student.Record{}
	}

	data, err := json.MarshalIndent(records, "", indent)
	if err != nil {
		return fmt.Errorf("jsonfile: failed to encode roster: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("jsonfile: failed to write %s: %w", s.path, err)
	}

	s.synced = Digest(data)
	s.log.Info("roster saved", logger.Count(len(records)), logger.Int("bytes", len(data)), logger.Digest(s.synced))
	return nil
}

// Load reads and decodes the file.
// A missing file yields ErrSnapshotNotFound; undecodable content yields ErrSnapshotCorrupt.
func (s *Store) Load(ctx context.Context) ([]student.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.synced = ""
			return nil, fmt.Errorf("jsonfile: %s: %w", s.path, shared.ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("jsonfile: failed to read %s: %w", s.path, err)
	}

	s.synced = Digest(data)

	var records []student.Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warn("roster file is not a valid record list", logger.Err(err))
		return nil, fmt.Errorf("jsonfile: %w: %w", shared.ErrSnapshotCorrupt, err)
	}

	s.log.Info("roster loaded", logger.Count(len(records)), logger.Digest(s.synced))
	return records, nil
}

// Fingerprint returns the digest of the content last read or written.
// Empty when the file was missing at the last load or nothing was synced yet.
func (s *Store) Fingerprint() string {
	return s.synced
}

// Changed reports whether the file differs from what this store last read or wrote.
// A file that appeared, vanished or was rewritten counts as changed.
func (s *Store) Changed(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s.synced != "", nil
		}
		return false, fmt.Errorf("jsonfile: failed to read %s: %w", s.path, err)
	}
	return Digest(data) != s.synced, nil
}

// Digest returns the hex BLAKE2b-256 digest of a payload.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
