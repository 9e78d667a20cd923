package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestDistrictRecord_AdoptionRate(t *testing.T) {
	t.Run("normal fleet", func(t *testing.T) {
		r := DistrictRecord{TotalBuses: 10, CommittedESB: 2}
		rate := r.AdoptionRate()
		require.NotNil(t, rate)
		assert.InDelta(t, 20.0, *rate, 1e-9)
	})

	t.Run("zero fleet yields nil, not Inf or NaN", func(t *testing.T) {
		r := DistrictRecord{TotalBuses: 0, CommittedESB: 0}
		assert.Nil(t, r.AdoptionRate())
	})

	t.Run("full adoption", func(t *testing.T) {
		r := DistrictRecord{TotalBuses: 5, CommittedESB: 5}
		rate := r.AdoptionRate()
		require.NotNil(t, rate)
		assert.InDelta(t, 100.0, *rate, 1e-9)
	})
}

func TestComputeMetrics_EmptyScope(t *testing.T) {
	m := ComputeMetrics(nil)

	assert.Nil(t, m.AdoptionRate)
	assert.Nil(t, m.DistrictAdoptionRateMean)
	assert.Nil(t, m.PM25Mean)
	assert.Nil(t, m.MedianIncomeMean)
	assert.Nil(t, m.FreeLunchMean)
	assert.Zero(t, m.Districts)
}

func TestComputeMetrics_BakersfieldScenario(t *testing.T) {
	rows := []DistrictRecord{
		{District: "A", City: "Bakersfield", State: "CALIFORNIA", TotalBuses: 10, CommittedESB: 2, PM25: fp(12.0)},
		{District: "B", City: "Bakersfield", State: "CALIFORNIA", TotalBuses: 20, CommittedESB: 5},
		{District: "C", City: "Bakersfield", State: "CALIFORNIA", TotalBuses: 0, CommittedESB: 0, PM25: fp(8.0)},
	}

	m := ComputeMetrics(rows)

	assert.Equal(t, 3, m.Districts)
	require.NotNil(t, m.AdoptionRate)
	assert.InDelta(t, 7.0/30.0*100, *m.AdoptionRate, 1e-9)
	require.NotNil(t, m.PM25Mean)
	assert.InDelta(t, 10.0, *m.PM25Mean, 1e-9)

	// Per-row rates are [20, 25, nil]; the zero-fleet district contributes
	// nothing to the mean.
	require.NotNil(t, m.DistrictAdoptionRateMean)
	assert.InDelta(t, 22.5, *m.DistrictAdoptionRateMean, 1e-9)
}

func TestComputeMetrics_RatioOfSumsIsNotMeanOfRatios(t *testing.T) {
	// One huge fleet barely electrified, one tiny fleet fully electrified.
	rows := []DistrictRecord{
		{District: "big", TotalBuses: 1000, CommittedESB: 10},
		{District: "small", TotalBuses: 2, CommittedESB: 2},
	}

	m := ComputeMetrics(rows)

	require.NotNil(t, m.AdoptionRate)
	require.NotNil(t, m.DistrictAdoptionRateMean)
	assert.InDelta(t, 12.0/1002.0*100, *m.AdoptionRate, 1e-9)
	assert.InDelta(t, (1.0+100.0)/2.0, *m.DistrictAdoptionRateMean, 1e-9)
	assert.Greater(t, *m.DistrictAdoptionRateMean-*m.AdoptionRate, 40.0,
		"the two rate definitions must visibly diverge on this fixture")
}

func TestComputeMetrics_MeansExcludeNulls(t *testing.T) {
	rows := []DistrictRecord{
		{District: "A", TotalBuses: 1, PM25: fp(10.0), MedianIncome: fp(50000)},
		{District: "B", TotalBuses: 1},
		{District: "C", TotalBuses: 1, PM25: fp(20.0)},
	}

	m := ComputeMetrics(rows)

	require.NotNil(t, m.PM25Mean)
	assert.InDelta(t, 15.0, *m.PM25Mean, 1e-9)
	require.NotNil(t, m.MedianIncomeMean)
	assert.InDelta(t, 50000.0, *m.MedianIncomeMean, 1e-9)
	assert.Nil(t, m.FreeLunchMean, "no row carries a lunch percentage")
}

func TestComputeMetrics_ZeroFleetScope(t *testing.T) {
	rows := []DistrictRecord{
		{District: "A", TotalBuses: 0, PM25: fp(9.0)},
		{District: "B", TotalBuses: 0},
	}

	m := ComputeMetrics(rows)

	assert.Nil(t, m.AdoptionRate, "scope with no buses has no rate")
	assert.Nil(t, m.DistrictAdoptionRateMean)
	require.NotNil(t, m.PM25Mean)
	assert.InDelta(t, 9.0, *m.PM25Mean, 1e-9)
}

func TestComputeMetrics_Deterministic(t *testing.T) {
	rows := []DistrictRecord{
		{District: "A", TotalBuses: 10, CommittedESB: 3, PM25: fp(11.5), FreeLunchPct: fp(62.0)},
		{District: "B", TotalBuses: 4, CommittedESB: 0, MedianIncome: fp(41000)},
	}

	first := ComputeMetrics(rows)
	second := ComputeMetrics(rows)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated computation differs (-first +second):\n%s", diff)
	}
}

func TestCheckRanges(t *testing.T) {
	tests := []struct {
		name   string
		record DistrictRecord
		fields []string
	}{
		{"well-formed", DistrictRecord{TotalBuses: 10, CommittedESB: 2, FreeLunchPct: fp(55.0)}, nil},
		{"lunch above 100", DistrictRecord{TotalBuses: 10, FreeLunchPct: fp(140.0)}, []string{"free_lunch_pct"}},
		{"negative lunch", DistrictRecord{TotalBuses: 10, FreeLunchPct: fp(-3.0)}, []string{"free_lunch_pct"}},
		{"committed exceeds fleet", DistrictRecord{TotalBuses: 4, CommittedESB: 6}, []string{"esb_adoption_rate"}},
		{"zero fleet is not a finding", DistrictRecord{TotalBuses: 0, CommittedESB: 6}, nil},
		{"both out of range", DistrictRecord{TotalBuses: 1, CommittedESB: 2, FreeLunchPct: fp(101.0)}, []string{"free_lunch_pct", "esb_adoption_rate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := CheckRanges(tt.record)
			var got []string
			for _, f := range findings {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}
