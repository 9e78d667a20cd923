// Command validate performs integrity checks over a district dataset
// workbook before it is handed to the service: sheet and column presence,
// identity completeness, percentage and coordinate ranges, and aggregate
// sanity per state.
//
// Usage:
//
//	go run ./cmd/validate -dataset data.xlsx
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/greenfleet/esb-district-metrics/internal/dataset"
	"github.com/greenfleet/esb-district-metrics/internal/domain"
	"github.com/greenfleet/esb-district-metrics/internal/pipeline"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	datasetPath := flag.String("dataset", "", "path to the district workbook (xlsx)")
	sheet := flag.String("sheet", dataset.DefaultSheet, "sheet holding district-level rows")
	flag.Parse()

	if *datasetPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*datasetPath, *sheet); code != 0 {
		os.Exit(code)
	}
}

func run(path, sheet string) int {
	fmt.Println("=== ESB District Dataset Validation ===")
	fmt.Println()

	snap, err := dataset.Load(path, sheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	records := snap.Records()
	phases := []*phase{
		validateIdentity(records),
		validateRanges(records),
		validateCoordinates(records),
		validateStateAggregates(records),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-36s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d district rows, %d states\n", len(records), len(pipeline.States(records)))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateIdentity checks every row names a district and a state; the
// selection pipeline keys on those fields.
func validateIdentity(records []domain.DistrictRecord) *phase {
	p := &phase{name: "identity completeness"}
	for i, r := range records {
		if r.District == "" {
			p.errorf("row %d: empty district name", i+1)
		}
		if r.State == "" {
			p.errorf("row %d (%s): empty state", i+1, r.District)
		}
	}
	return p
}

// validateRanges reuses the pipeline's own range check so the CLI and the
// service flag exactly the same rows.
func validateRanges(records []domain.DistrictRecord) *phase {
	p := &phase{name: "percentage and rate ranges"}
	for i, r := range records {
		for _, f := range domain.CheckRanges(r) {
			p.errorf("row %d (%s): %s = %.2f outside [0,100]", i+1, r.District, f.Field, f.Value)
		}
		if r.TotalBuses == 0 && r.CommittedESB > 0 {
			p.errorf("row %d (%s): %d committed ESBs but zero total buses",
				i+1, r.District, r.CommittedESB)
		}
	}
	return p
}

func validateCoordinates(records []domain.DistrictRecord) *phase {
	p := &phase{name: "coordinate sanity"}
	for i, r := range records {
		if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
			p.errorf("row %d (%s): latitude %.4f out of range", i+1, r.District, *r.Latitude)
		}
		if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
			p.errorf("row %d (%s): longitude %.4f out of range", i+1, r.District, *r.Longitude)
		}
		if (r.Latitude == nil) != (r.Longitude == nil) {
			p.errorf("row %d (%s): half a coordinate pair", i+1, r.District)
		}
	}
	return p
}

// validateStateAggregates computes every state's metrics the way the service
// does and checks the scope-level adoption rate lands in [0,100].
func validateStateAggregates(records []domain.DistrictRecord) *phase {
	p := &phase{name: "state aggregate sanity"}
	for _, state := range pipeline.States(records) {
		_, stateRows := pipeline.SelectScope(records, state, "")
		m := domain.ComputeMetrics(stateRows)
		if m.AdoptionRate != nil && (*m.AdoptionRate < 0 || *m.AdoptionRate > 100) {
			p.errorf("state %s: aggregate adoption rate %.2f%% outside [0,100]", state, *m.AdoptionRate)
		}
		if m.Districts == 0 {
			p.errorf("state %s: enumerated but has no rows", state)
		}
	}
	return p
}
