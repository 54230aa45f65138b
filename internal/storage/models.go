package storage

import (
	"errors"
	"time"
)

// ErrNoReports is returned when a source has no recorded reports.
var ErrNoReports = errors.New("no reports recorded for source")

// SourceSummary describes the recorded history of one source.
type SourceSummary struct {
	Source      string    `json:"source"`
	Reports     int       `json:"reports"`
	LastChecked time.Time `json:"last_checked"`
	LastValid   bool      `json:"last_valid"`
}
