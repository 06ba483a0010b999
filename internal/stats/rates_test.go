package stats

import (
	"math"
	"testing"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttackRate_ZeroSusceptible(t *testing.T) {
	rate := AttackRate(5, 0)

	assert.Equal(t, 0.0, rate)
	assert.False(t, math.IsNaN(rate))
	assert.Equal(t, 0.25, AttackRate(25, 100))
	assert.Equal(t, 0.0, CaseFatalityRate(3, 0))
}

func TestSummarize_LineList(t *testing.T) {
	// Подготовка
	cases := []models.OutbreakCase{
		{Species: "Cattle", Susceptible: 150, Cases: 20, Deaths: 3, ObservedOn: time.Now()},
		{Species: "Sheep", Susceptible: 50, Cases: 10, Deaths: 2, ObservedOn: time.Now()},
	}

	// Действие
	s := Summarize(cases)

	// Проверки
	assert.Equal(t, 200, s.Susceptible)
	assert.Equal(t, 30, s.Cases)
	assert.Equal(t, 5, s.Deaths)
	assert.InDelta(t, 0.15, s.AttackRate, 1e-12)
	assert.InDelta(t, 0.1667, s.CaseFatalityRate, 1e-4)
}

func TestAggregateRates(t *testing.T) {
	// Подготовка
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []models.CaseRecord{
		{RegionCode: "ET0101", Date: day, Species: "Cattle", Susceptible: 100, Cases: 25, Deaths: 5},
		{RegionCode: "ET0101", Date: day, Species: "Goat", Susceptible: 100, Cases: 5, Deaths: 0},
		{RegionCode: "ET0102", Date: day, Species: "Cattle", Susceptible: 0, Cases: 0, Deaths: 0},
		{RegionCode: "ET9999", Date: day, Species: "Cattle", Susceptible: 10, Cases: 1, Deaths: 1},
		{RegionCode: "ET9999", Date: day, Species: "Sheep", Susceptible: 10, Cases: 1, Deaths: 1},
	}

	// Действие
	table, err := AggregateRates([]string{"ET0103", "ET0101", "ET0102"}, records)

	// Проверки
	require.NoError(t, err)
	require.Len(t, table.Rates, 3)
	assert.Equal(t, "ET0101", table.Rates[0].RegionCode)
	assert.Equal(t, []string{"ET9999"}, table.Unmatched)

	r, ok := table.Rate("ET0101")
	require.True(t, ok)
	assert.Equal(t, 200, r.Susceptible)
	assert.Equal(t, 30, r.Cases)
	assert.Equal(t, 2, r.Outbreaks)
	assert.InDelta(t, 0.15, r.AttackRate, 1e-12)
	assert.InDelta(t, 5.0/30.0, r.CaseFatalityRate, 1e-12)

	r, ok = table.Rate("ET0102")
	require.True(t, ok)
	assert.Equal(t, 0.0, r.AttackRate)
	assert.Equal(t, 1, r.Outbreaks)

	r, ok = table.Rate("ET0103")
	require.True(t, ok)
	assert.Equal(t, models.RegionRate{RegionCode: "ET0103"}, r)
}

func TestAggregateRates_InvalidRecord(t *testing.T) {
	_, err := AggregateRates([]string{"A"}, []models.CaseRecord{{RegionCode: "A", Cases: -1}})
	assert.True(t, models.IsValidation(err))

	_, err = AggregateRates([]string{"A"}, []models.CaseRecord{{Cases: 1}})
	assert.True(t, models.IsValidation(err))
}

func TestRateTable_Measure(t *testing.T) {
	table, err := AggregateRates([]string{"A", "B"}, []models.CaseRecord{
		{RegionCode: "A", Susceptible: 100, Cases: 25, Deaths: 1},
	})
	require.NoError(t, err)

	m, err := table.Measure(FieldAttackRate)
	require.NoError(t, err)
	assert.Equal(t, models.RegionMeasure{"A": 0.25, "B": 0}, m)

	m, err = table.Measure(FieldOutbreaks)
	require.NoError(t, err)
	assert.Equal(t, models.RegionMeasure{"A": 1, "B": 0}, m)

	_, err = table.Measure("incidence")
	assert.True(t, models.IsValidation(err))
}
