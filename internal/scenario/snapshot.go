// Package scenario saves and reloads computed tax scenarios. The engine knows
// nothing about it; snapshots are opaque JSON documents on disk.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/itax/internal/domain"
)

const fileExt = ".json"

// ErrNotFound is returned when no snapshot matches an ID
var ErrNotFound = errors.New("scenario snapshot not found")

// Snapshot is one saved comparison together with the inputs that produced it
type Snapshot struct {
	ID            uuid.UUID               `json:"id"`
	Name          string                  `json:"name"`
	SavedAt       time.Time               `json:"savedAt"`
	FinancialYear string                  `json:"financialYear"`
	Profile       domain.TaxProfile       `json:"profile"`
	Comparison    domain.RegimeComparison `json:"comparison"`
}

// NewSnapshot stamps a comparison with a fresh ID and the current time
func NewSnapshot(financialYear string, profile domain.TaxProfile, cmp domain.RegimeComparison) *Snapshot {
	name := profile.Name
	if name == "" {
		name = "scenario"
	}
	return &Snapshot{
		ID:            uuid.New(),
		Name:          name,
		SavedAt:       time.Now().UTC().Truncate(time.Second),
		FinancialYear: financialYear,
		Profile:       profile.DeepCopy(),
		Comparison:    cmp,
	}
}

// Store reads and writes snapshots under a directory, one file per snapshot
type Store struct {
	Dir string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Save writes the snapshot and returns the file path
func (s *Store) Save(snap *Snapshot) (string, error) {
	if snap.ID == uuid.Nil {
		return "", fmt.Errorf("snapshot has no ID")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", s.Dir, err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	path := filepath.Join(s.Dir, snap.ID.String()+fileExt)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return path, nil
}

// Load reads a snapshot by ID
func (s *Store) Load(id uuid.UUID) (*Snapshot, error) {
	path := filepath.Join(s.Dir, id.String()+fileExt)
	snap, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return snap, err
}

// LoadFile reads a snapshot from an explicit path
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", filepath.Base(path), err)
	}
	return &snap, nil
}

// List returns every readable snapshot, newest first. Files that are not
// snapshots are skipped. A missing directory yields an empty list.
func (s *Store) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.Dir, err)
	}

	var snaps []Snapshot
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		if _, err := uuid.Parse(strings.TrimSuffix(e.Name(), fileExt)); err != nil {
			continue
		}
		snap, err := LoadFile(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			continue
		}
		snaps = append(snaps, *snap)
	}

	sort.SliceStable(snaps, func(i, j int) bool { return snaps[i].SavedAt.After(snaps[j].SavedAt) })
	return snaps, nil
}

// Delete removes a snapshot by ID
func (s *Store) Delete(id uuid.UUID) error {
	err := os.Remove(filepath.Join(s.Dir, id.String()+fileExt))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}
