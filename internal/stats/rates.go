package stats

import (
	"fmt"
	"sort"

	"github.com/bayillag/epigeo_surveillance/internal/models"
)

// Поля таблицы показателей, по которым строится мера для анализа горячих точек
const (
	FieldCases            = "cases"
	FieldDeaths           = "deaths"
	FieldSusceptible      = "susceptible"
	FieldOutbreaks        = "outbreaks"
	FieldAttackRate       = "attack_rate"
	FieldCaseFatalityRate = "case_fatality_rate"
)

// RateTable - показатели по всем регионам набора
type RateTable struct {
	Rates []models.RegionRate `json:"rates"`
	// Unmatched - коды регионов из записей, которых нет в наборе
	Unmatched []string `json:"unmatched,omitempty"`
}

// Summary - показатели одной вспышки по её line-list
type Summary struct {
	Susceptible      int     `json:"susceptible"`
	Cases            int     `json:"cases"`
	Deaths           int     `json:"deaths"`
	AttackRate       float64 `json:"attack_rate"`
	CaseFatalityRate float64 `json:"case_fatality_rate"`
}

// AttackRate = cases / susceptible, 0 при susceptible = 0
func AttackRate(cases, susceptible int) float64 {
	if susceptible == 0 {
		return 0
	}
	return float64(cases) / float64(susceptible)
}

// CaseFatalityRate = deaths / cases, 0 при cases = 0
func CaseFatalityRate(deaths, cases int) float64 {
	if cases == 0 {
		return 0
	}
	return float64(deaths) / float64(cases)
}

// AggregateRates суммирует записи по регионам. Каждый регион набора присутствует
// в результате, даже без записей. Таблица отсортирована по коду региона.
func AggregateRates(regionCodes []string, records []models.CaseRecord) (RateTable, error) {
	for i, r := range records {
		if r.RegionCode == "" {
			return RateTable{}, &models.ValidationError{
				Entity: "case_record", ID: fmt.Sprint(i), Field: "region_code", Reason: "is required",
			}
		}
		if r.Susceptible < 0 || r.Cases < 0 || r.Deaths < 0 {
			return RateTable{}, &models.ValidationError{
				Entity: "case_record", ID: fmt.Sprint(i), Field: "counts",
				Reason: fmt.Sprintf("negative count for region %s", r.RegionCode),
			}
		}
	}

	byCode := make(map[string]*models.RegionRate, len(regionCodes))
	for _, code := range regionCodes {
		if _, ok := byCode[code]; !ok {
			byCode[code] = &models.RegionRate{RegionCode: code}
		}
	}

	unmatched := make(map[string]struct{})
	for _, r := range records {
		rate, ok := byCode[r.RegionCode]
		if !ok {
			unmatched[r.RegionCode] = struct{}{}
			continue
		}
		rate.Susceptible += r.Susceptible
		rate.Cases += r.Cases
		rate.Deaths += r.Deaths
		rate.Outbreaks++
	}

	table := RateTable{Rates: make([]models.RegionRate, 0, len(byCode))}
	for _, rate := range byCode {
		rate.AttackRate = AttackRate(rate.Cases, rate.Susceptible)
		rate.CaseFatalityRate = CaseFatalityRate(rate.Deaths, rate.Cases)
		table.Rates = append(table.Rates, *rate)
	}
	sort.Slice(table.Rates, func(i, j int) bool { return table.Rates[i].RegionCode < table.Rates[j].RegionCode })

	for code := range unmatched {
		table.Unmatched = append(table.Unmatched, code)
	}
	sort.Strings(table.Unmatched)
	return table, nil
}

// Rate возвращает показатели региона
func (t RateTable) Rate(code string) (models.RegionRate, bool) {
	i := sort.Search(len(t.Rates), func(i int) bool { return t.Rates[i].RegionCode >= code })
	if i < len(t.Rates) && t.Rates[i].RegionCode == code {
		return t.Rates[i], true
	}
	return models.RegionRate{}, false
}

// Measure извлекает одно поле таблицы как меру для анализа горячих точек
func (t RateTable) Measure(field string) (models.RegionMeasure, error) {
	var get func(r models.RegionRate) float64
	switch field {
	case FieldCases:
		get = func(r models.RegionRate) float64 { return float64(r.Cases) }
	case FieldDeaths:
		get = func(r models.RegionRate) float64 { return float64(r.Deaths) }
	case FieldSusceptible:
		get = func(r models.RegionRate) float64 { return float64(r.Susceptible) }
	case FieldOutbreaks:
		get = func(r models.RegionRate) float64 { return float64(r.Outbreaks) }
	case FieldAttackRate:
		get = func(r models.RegionRate) float64 { return r.AttackRate }
	case FieldCaseFatalityRate:
		get = func(r models.RegionRate) float64 { return r.CaseFatalityRate }
	default:
		return nil, models.NewValidationError("measure", "field", fmt.Sprintf("unknown field %q", field))
	}

	m := make(models.RegionMeasure, len(t.Rates))
	for _, r := range t.Rates {
		m[r.RegionCode] = get(r)
	}
	return m, nil
}

// Summarize считает показатели line-list одной вспышки
func Summarize(cases []models.OutbreakCase) Summary {
	var s Summary
	for _, c := range cases {
		s.Susceptible += c.Susceptible
		s.Cases += c.Cases
		s.Deaths += c.Deaths
	}
	s.AttackRate = AttackRate(s.Cases, s.Susceptible)
	s.CaseFatalityRate = CaseFatalityRate(s.Deaths, s.Cases)
	return s
}
