// Package dataset loads the district-level sheet of the national ESB
// adoption workbook into an immutable in-memory snapshot.
package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/greenfleet/esb-district-metrics/internal/domain"
)

// DefaultSheet is the workbook sheet holding district-level rows.
const DefaultSheet = "1. District-level data"

// Source column labels, verbatim from the workbook header row. Two of them
// carry trailing spaces in the published file; the mapping must match
// byte-for-byte or the column is reported missing.
const (
	colDistrict     = "1b. Local Education Agency (LEA) or entity name"
	colCity         = "1f. City"
	colState        = "1a. State"
	colLatitude     = "1s. Latitude"
	colLongitude    = "1t. Longitude "
	colTotalBuses   = "2a. Total number of buses"
	colCommittedESB = "3a. Number of ESBs committed "
	colFreeLunch    = "4e. Percentage of students in district eligible for free or reduced price lunch"
	colPM25         = "5f. PM2.5 concentration"
	colMedianIncome = "4f. Median household income"
)

var requiredColumns = []string{
	colDistrict, colCity, colState, colLatitude, colLongitude,
	colTotalBuses, colCommittedESB, colFreeLunch, colPM25, colMedianIncome,
}

var (
	// ErrMissingSheet indicates the workbook has no sheet with the expected name.
	ErrMissingSheet = errors.New("sheet not found")
	// ErrMissingColumn indicates a required column label is absent from the header row.
	ErrMissingColumn = errors.New("required column not found")
)

// LoadError wraps any failure to produce a snapshot from a workbook. It is
// fatal at startup: the service cannot run without its dataset.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the given sheet of an xlsx workbook into a Snapshot. The record
// content is a pure function of the file: reloading an unchanged file yields
// identical records. The one-time lunch-eligibility scale correction
// (stored fraction × 100) happens here and nowhere else.
func Load(path, sheet string) (*Snapshot, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close() //nolint:errcheck // read-only handle

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrMissingSheet, sheet)}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: empty sheet %q", ErrMissingSheet, sheet)}
	}

	index, err := mapHeader(rows[0])
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	records := make([]domain.DistrictRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, parseRow(row, index))
	}

	return &Snapshot{
		records:  records,
		path:     path,
		loadedAt: domain.Clock().Now(),
	}, nil
}

// mapHeader locates each required column label in the header row.
func mapHeader(header []string) (map[string]int, error) {
	position := make(map[string]int, len(header))
	for i, label := range header {
		position[label] = i
	}

	index := make(map[string]int, len(requiredColumns))
	for _, label := range requiredColumns {
		i, ok := position[label]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, label)
		}
		index[label] = i
	}
	return index, nil
}

func parseRow(row []string, index map[string]int) domain.DistrictRecord {
	lunch := parseOptionalFloat(cell(row, index[colFreeLunch]))
	if lunch != nil {
		// Source stores a 0-1 fraction.
		*lunch *= 100
	}

	return domain.DistrictRecord{
		District:     strings.TrimSpace(cell(row, index[colDistrict])),
		City:         strings.TrimSpace(cell(row, index[colCity])),
		State:        strings.TrimSpace(cell(row, index[colState])),
		Latitude:     parseOptionalFloat(cell(row, index[colLatitude])),
		Longitude:    parseOptionalFloat(cell(row, index[colLongitude])),
		TotalBuses:   parseCount(cell(row, index[colTotalBuses])),
		CommittedESB: parseCount(cell(row, index[colCommittedESB])),
		FreeLunchPct: lunch,
		PM25:         parseOptionalFloat(cell(row, index[colPM25])),
		MedianIncome: parseOptionalFloat(cell(row, index[colMedianIncome])),
	}
}

// cell returns the value at column i, tolerating the short row slices
// excelize produces when trailing cells are empty.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// parseOptionalFloat parses a cell as float64. Empty or unparseable cells
// are nil: absence of a measurement, never zero.
func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseCount parses a non-negative integer count. Counts may be formatted as
// decimals in the sheet ("12.0"); empty, unparseable, or negative cells
// become 0 (unreported).
func parseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(v)
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
