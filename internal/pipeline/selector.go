package pipeline

import (
	"sort"
	"strings"

	"github.com/greenfleet/esb-district-metrics/internal/domain"
)

// SelectScope filters records for a (state, city) selection. A row matches
// when its field *contains* the query, case-insensitively, so "bakersfield"
// matches "Bakersfield". This substring semantics is the established
// selection behavior and is kept for fidelity; it can over-match when one
// name is a substring of another (a query for state "KANSAS" also matches
// "ARKANSAS"). Picker population should use States and Cities, which
// enumerate exact values.
//
// A selection matching no rows returns an empty cityRows; that is not an
// error, and downstream aggregation yields all-nil metrics for the scope.
func SelectScope(records []domain.DistrictRecord, state, city string) (cityRows, stateRows []domain.DistrictRecord) {
	stateQuery := strings.ToLower(strings.TrimSpace(state))
	cityQuery := strings.ToLower(strings.TrimSpace(city))

	for _, r := range records {
		if !strings.Contains(strings.ToLower(r.State), stateQuery) {
			continue
		}
		stateRows = append(stateRows, r)
		if strings.Contains(strings.ToLower(r.City), cityQuery) {
			cityRows = append(cityRows, r)
		}
	}
	return cityRows, stateRows
}

// States enumerates the distinct non-empty state names across all records,
// sorted ascending.
func States(records []domain.DistrictRecord) []string {
	return distinct(records, func(r domain.DistrictRecord) string { return r.State })
}

// Cities enumerates the distinct non-empty city names of one state, sorted
// ascending. State comparison here is exact equality: the list feeds a
// picker whose entries come verbatim from the dataset.
func Cities(records []domain.DistrictRecord, state string) []string {
	var inState []domain.DistrictRecord
	for _, r := range records {
		if r.State == state {
			inState = append(inState, r)
		}
	}
	return distinct(inState, func(r domain.DistrictRecord) string { return r.City })
}

func distinct(records []domain.DistrictRecord, field func(domain.DistrictRecord) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, r := range records {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
