package dataset

import (
	"time"

	"github.com/greenfleet/esb-district-metrics/internal/domain"
)

// Snapshot is the loaded dataset. It is immutable after creation and safe to
// share across concurrent readers; all filtering downstream produces new
// slices and never touches the backing records.
type Snapshot struct {
	records  []domain.DistrictRecord
	path     string
	loadedAt time.Time
}

// NewSnapshot wraps an in-memory record set in a Snapshot. Used by fixtures
// and tests; production snapshots come from Load.
func NewSnapshot(records []domain.DistrictRecord) *Snapshot {
	return &Snapshot{
		records:  records,
		loadedAt: domain.Clock().Now(),
	}
}

// Records returns the backing record slice. Callers must treat it as
// read-only.
func (s *Snapshot) Records() []domain.DistrictRecord { return s.records }

// Len returns the number of district rows loaded.
func (s *Snapshot) Len() int { return len(s.records) }

// Path returns the source file the snapshot was loaded from, empty for
// in-memory snapshots.
func (s *Snapshot) Path() string { return s.path }

// LoadedAt returns when the snapshot was created.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }
