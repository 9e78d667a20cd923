// Command genmock writes a small deterministic district workbook with the
// real source column labels, for local development and manual testing of the
// loader and service without the full national dataset.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/districts.xlsx
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const sheet = "1. District-level data"

// Header labels must match the published workbook byte-for-byte, trailing
// spaces included.
var header = []any{
	"1b. Local Education Agency (LEA) or entity name",
	"1f. City",
	"1a. State",
	"1s. Latitude",
	"1t. Longitude ",
	"2a. Total number of buses",
	"3a. Number of ESBs committed ",
	"4e. Percentage of students in district eligible for free or reduced price lunch",
	"5f. PM2.5 concentration",
	"4f. Median household income",
}

// Lunch eligibility is stored as a 0-1 fraction, as in the source workbook;
// the loader performs the scale correction. Empty cells stay empty to
// exercise null handling, and one row carries an impossible fraction to
// exercise range flagging.
var rows = [][]any{
	{"Kern High School District", "Bakersfield", "CALIFORNIA", 35.3733, -119.0187, 120, 6, 0.72, 12.4, 54851},
	{"Bakersfield City SD", "Bakersfield", "CALIFORNIA", 35.3561, -119.0412, 200, 10, 0.81, 12.1, 48202},
	{"Greenfield Union SD", "Bakersfield", "CALIFORNIA", nil, nil, 0, 0, 0.88, 11.9, 41930},
	{"Fresno Unified", "Fresno", "CALIFORNIA", 36.7378, -119.7871, 300, 45, 0.85, 14.2, 50432},
	{"Sacramento City USD", "Sacramento", "CALIFORNIA", 38.5816, -121.4944, 250, 25, 0.67, 9.8, 62337},
	{"Wichita USD 259", "Wichita", "KANSAS", 37.6872, -97.3301, 180, 2, 0.74, 8.9, 53060},
	{"Little Rock SD", "Little Rock", "ARKANSAS", 34.7465, -92.2896, 140, 0, nil, nil, 49843},
	{"Austin ISD", "Austin", "TEXAS", 30.2672, -97.7431, 400, 12, 0.52, 10.3, 78965},
	{"Suspect Data ISD", "Austin", "TEXAS", nil, nil, 10, 14, 1.4, nil, nil},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the mock workbook")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &rows[i]); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(*out); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	fmt.Printf("wrote %d district rows to %s\n", len(rows), *out)
	return nil
}
