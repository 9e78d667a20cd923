// Package domain models U.S. school-district records from the national
// Electric School Bus (ESB) adoption dataset.
//
// # Data Source
//
// Records come from the district-level sheet of the national ESB adoption
// workbook ("1. District-level data"), one row per Local Education Agency.
// The loader maps the workbook's survey-style column labels (e.g.
// "2a. Total number of buses") onto the semantic field names used here.
//
// # Dataset Conventions
//
// Free/reduced-price lunch eligibility:
//
//	Stored upstream as a 0–1 fraction. The loader multiplies by 100 exactly
//	once, so FreeLunchPct is a percentage in [0,100] for well-formed input.
//	Out-of-range values are flagged by [CheckRanges] but never clamped;
//	the caller decides whether to display or suppress them.
//
// Adoption rate:
//
//	Two distinct figures exist and must not be conflated:
//
//	  - Per-row rate ([DistrictRecord.AdoptionRate]): committed/total×100
//	    for one district. Nil when the district reports zero buses; a zero
//	    fleet has no rate, and the division must never surface as Inf/NaN.
//	  - Scope rate ([AggregateMetrics.AdoptionRate]): ratio of sums over a
//	    row set, which weights districts by fleet size. The mean of per-row
//	    rates ([AggregateMetrics.DistrictAdoptionRateMean]) weights every
//	    district equally and generally differs.
//
// Missing values:
//
//	PM2.5, median income, lunch eligibility, and coordinates may be absent.
//	Absent is nil, never zero: means exclude nil values from both numerator
//	and denominator, and a scope with no usable values yields a nil mean.
package domain
