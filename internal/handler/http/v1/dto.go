package v1

import (
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/google/uuid"
)

// ReportOutbreakRequest DTO для регистрации сообщения о вспышке
// @Description DTO для регистрации сообщения о вспышке
type ReportOutbreakRequest struct {
	RegionCode       string     `json:"region_code" validate:"required,max=32"`
	ReporterName     string     `json:"reporter_name,omitempty" validate:"max=255"`
	ReportDate       *time.Time `json:"report_date,omitempty"`
	Latitude         *float64   `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude        *float64   `json:"longitude,omitempty" validate:"omitempty,longitude"`
	SpeciesAffected  []string   `json:"species_affected" validate:"required,min=1,dive,required"`
	InitialComplaint string     `json:"initial_complaint" validate:"required"`
}

// AssignInvestigatorRequest DTO для назначения эпидемиолога
// @Description DTO для назначения эпидемиолога
type AssignInvestigatorRequest struct {
	Investigator string `json:"investigator" validate:"required,min=2,max=255"`
}

// StartInvestigationRequest DTO для начала выезда; без даты используется текущее время
type StartInvestigationRequest struct {
	Date *time.Time `json:"date,omitempty"`
}

// CaseRequest - строка line-list
type CaseRequest struct {
	Species     string    `json:"species" validate:"required"`
	Susceptible int       `json:"susceptible" validate:"gte=0"`
	Cases       int       `json:"cases" validate:"gte=0"`
	Deaths      int       `json:"deaths" validate:"gte=0"`
	ObservedOn  time.Time `json:"observed_on" validate:"required"`
}

// SampleRequest - проба, отобранная при расследовании
type SampleRequest struct {
	FieldID     string     `json:"field_id" validate:"required,max=64"`
	SampleType  string     `json:"sample_type,omitempty"`
	Laboratory  string     `json:"laboratory,omitempty"`
	SubmittedOn *time.Time `json:"submitted_on,omitempty"`
}

// SubmitInvestigationRequest DTO для отчета о расследовании
// @Description DTO для отчета о расследовании
type SubmitInvestigationRequest struct {
	Date        time.Time       `json:"date" validate:"required"`
	Detail      map[string]any  `json:"detail,omitempty"`
	DiseaseCode *string         `json:"disease_code,omitempty" validate:"omitempty,min=1,max=32"`
	Cases       []CaseRequest   `json:"cases" validate:"dive"`
	Samples     []SampleRequest `json:"samples" validate:"dive"`
}

// SampleStatusRequest DTO для продвижения пробы по этапам
type SampleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Collected InTransit Received Testing ResultsAvailable Rejected"`
}

// SampleResultRequest DTO для лабораторного результата
// @Description DTO для лабораторного результата
type SampleResultRequest struct {
	Result      string    `json:"result" validate:"required,oneof=Positive Negative Inconclusive Rejected"`
	Detail      string    `json:"detail,omitempty"`
	Date        time.Time `json:"date" validate:"required"`
	DiseaseCode *string   `json:"disease_code,omitempty" validate:"omitempty,min=1,max=32"`
}

// CloseOutbreakRequest DTO для закрытия вспышки
type CloseOutbreakRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

// TracingLinkRequest DTO для связи прослеживания
// @Description DTO для связи прослеживания
type TracingLinkRequest struct {
	LocationName string    `json:"location_name" validate:"required,max=255"`
	LocationType string    `json:"location_type,omitempty"`
	ContactType  string    `json:"contact_type,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64  `json:"longitude,omitempty" validate:"omitempty,longitude"`
	ContactDate  time.Time `json:"contact_date" validate:"required"`
	Direction    string    `json:"direction" validate:"required,oneof=TraceBack TraceForward"`
	Notes        string    `json:"notes,omitempty"`
}

// HotspotAnalysisRequest DTO для анализа горячих точек
// @Description DTO для анализа горячих точек
type HotspotAnalysisRequest struct {
	DiseaseCode  string     `json:"disease_code,omitempty"`
	Species      string     `json:"species,omitempty"`
	From         *time.Time `json:"from,omitempty"`
	To           *time.Time `json:"to,omitempty"`
	Field        string     `json:"field,omitempty" validate:"omitempty,oneof=susceptible cases deaths outbreaks attack_rate case_fatality_rate"`
	Threshold    float64    `json:"threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	Permutations int        `json:"permutations,omitempty" validate:"omitempty,gte=1,lte=99999"`
	Seed         *uint64    `json:"seed,omitempty"`
}

// CompareHotspotsRequest DTO для сравнения нескольких анализов
type CompareHotspotsRequest struct {
	Analyses []HotspotAnalysisRequest `json:"analyses" validate:"required,min=1,max=8,dive"`
}

// OutbreakResponse DTO для ответа со вспышкой, её случаями и пробами
// @Description DTO для ответа со вспышкой
type OutbreakResponse struct {
	models.Outbreak
	Cases   []models.OutbreakCase `json:"cases"`
	Samples []models.Sample       `json:"samples"`
}

// TransitionResponse DTO для ответа на переход жизненного цикла
// @Description DTO для ответа на переход жизненного цикла
type TransitionResponse struct {
	Event    string                `json:"event"`
	From     models.OutbreakStatus `json:"from,omitempty"`
	To       models.OutbreakStatus `json:"to"`
	Promoted bool                  `json:"promoted"`
	At       time.Time             `json:"at"`
	Outbreak *OutbreakResponse     `json:"outbreak"`
}

// GraphResponse DTO для графа смежности регионов
type GraphResponse struct {
	Fingerprint string                  `json:"fingerprint"`
	Policy      string                  `json:"policy"`
	Regions     int                     `json:"regions"`
	Neighbors   map[string][]string     `json:"neighbors"`
	Rejected    []*models.GeometryError `json:"rejected,omitempty"`
}

// SampleStatsResponse DTO для сводки по этапам проб
type SampleStatsResponse struct {
	Counts map[models.SampleStatus]int `json:"counts"`
	Total  int                         `json:"total"`
}

// LinkResponse DTO для связи прослеживания
type LinkResponse struct {
	ID               uuid.UUID             `json:"id"`
	SourceOutbreakID uuid.UUID             `json:"source_outbreak_id"`
	LocationName     string                `json:"location_name"`
	LocationType     string                `json:"location_type,omitempty"`
	ContactType      string                `json:"contact_type,omitempty"`
	Latitude         *float64              `json:"latitude,omitempty"`
	Longitude        *float64              `json:"longitude,omitempty"`
	ContactDate      time.Time             `json:"contact_date"`
	Direction        models.TraceDirection `json:"direction"`
	Notes            string                `json:"notes,omitempty"`
}

