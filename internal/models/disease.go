package models

import "time"

// Disease - справочная запись о болезни
type Disease struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	IncubationDays int    `json:"incubation_days"`
}

// DiseaseCatalog - справочник болезней, передается в компоненты явно
type DiseaseCatalog struct {
	Diseases              map[string]Disease
	DefaultIncubationDays int
}

// NewDiseaseCatalog собирает справочник из пар код -> инкубационный период
func NewDiseaseCatalog(incubation map[string]int, defaultDays int) DiseaseCatalog {
	c := DiseaseCatalog{
		Diseases:              make(map[string]Disease, len(incubation)),
		DefaultIncubationDays: defaultDays,
	}
	for code, days := range incubation {
		c.Diseases[code] = Disease{Code: code, Name: code, IncubationDays: days}
	}
	return c
}

// Incubation возвращает максимальный инкубационный период для кода болезни
func (c DiseaseCatalog) Incubation(code *string) time.Duration {
	days := c.DefaultIncubationDays
	if code != nil {
		if d, ok := c.Diseases[*code]; ok && d.IncubationDays > 0 {
			days = d.IncubationDays
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

// Name возвращает название болезни или сам код
func (c DiseaseCatalog) Name(code string) string {
	if d, ok := c.Diseases[code]; ok && d.Name != "" {
		return d.Name
	}
	return code
}
