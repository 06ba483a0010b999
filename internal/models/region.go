package models

import (
	"time"

	"github.com/paulmach/orb"
)

// Region - административная единица (вореда) с границей в EPSG:4326
type Region struct {
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	ZoneCode   string       `json:"zone_code,omitempty"`
	ParentCode string       `json:"parent_code,omitempty"`
	Boundary   orb.Geometry `json:"-"`
}

// RegionMeasure - числовая характеристика региона для одного анализа
type RegionMeasure map[string]float64

// CaseRecord - строка случаев, привязанная к региону
type CaseRecord struct {
	RegionCode  string    `json:"region_code"`
	Date        time.Time `json:"date"`
	Species     string    `json:"species"`
	DiseaseCode string    `json:"disease_code,omitempty"`
	Susceptible int       `json:"susceptible"`
	Cases       int       `json:"cases"`
	Deaths      int       `json:"deaths"`
}

// CaseFilter - фильтр записей для анализа (болезнь, период, вид)
type CaseFilter struct {
	DiseaseCode string
	Species     string
	From        *time.Time
	To          *time.Time
}

// RegionRate - агрегированные показатели региона
type RegionRate struct {
	RegionCode       string  `json:"region_code"`
	Susceptible      int     `json:"susceptible"`
	Cases            int     `json:"cases"`
	Deaths           int     `json:"deaths"`
	Outbreaks        int     `json:"outbreaks"`
	AttackRate       float64 `json:"attack_rate"`
	CaseFatalityRate float64 `json:"case_fatality_rate"`
}

// ClusterCategory - категория локальной пространственной ассоциации
type ClusterCategory string

const (
	ClusterHighHigh       ClusterCategory = "High-High"
	ClusterLowHigh        ClusterCategory = "Low-High"
	ClusterLowLow         ClusterCategory = "Low-Low"
	ClusterHighLow        ClusterCategory = "High-Low"
	ClusterNotSignificant ClusterCategory = "NotSignificant"
)

// ClusterResult - результат LISA для одного региона
type ClusterResult struct {
	RegionCode        string          `json:"region_code"`
	Value             float64         `json:"value"`
	StandardizedValue float64         `json:"standardized_value"`
	SpatialLag        float64         `json:"spatial_lag"`
	LocalI            float64         `json:"local_i"`
	PValue            float64         `json:"p_value"`
	Category          ClusterCategory `json:"category"`
	Label             string          `json:"label"`
	Neighbors         int             `json:"neighbors"`
	Isolated          bool            `json:"isolated,omitempty"`
}
