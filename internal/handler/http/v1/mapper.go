package v1

import (
	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/outbreak"
	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/bayillag/epigeo_surveillance/internal/spatial"
)

// DTOToOutbreakModel преобразует DTO сообщения в черновик вспышки
func DTOToOutbreakModel(dto ReportOutbreakRequest) models.Outbreak {
	o := models.Outbreak{
		RegionCode:       dto.RegionCode,
		ReporterName:     dto.ReporterName,
		Latitude:         dto.Latitude,
		Longitude:        dto.Longitude,
		SpeciesAffected:  dto.SpeciesAffected,
		InitialComplaint: dto.InitialComplaint,
	}
	if dto.ReportDate != nil {
		o.ReportDate = dto.ReportDate.UTC()
	}
	return o
}

// DTOToInvestigation преобразует отчет о расследовании в событие жизненного цикла
func DTOToInvestigation(dto SubmitInvestigationRequest) outbreak.SubmitInvestigation {
	ev := outbreak.SubmitInvestigation{
		Date:        dto.Date.UTC(),
		Detail:      dto.Detail,
		DiseaseCode: dto.DiseaseCode,
		Cases:       make([]models.OutbreakCase, len(dto.Cases)),
		Samples:     make([]models.Sample, len(dto.Samples)),
	}
	for i, c := range dto.Cases {
		ev.Cases[i] = models.OutbreakCase{
			Species:     c.Species,
			Susceptible: c.Susceptible,
			Cases:       c.Cases,
			Deaths:      c.Deaths,
			ObservedOn:  c.ObservedOn.UTC(),
		}
	}
	for i, s := range dto.Samples {
		ev.Samples[i] = models.Sample{
			FieldID:     s.FieldID,
			SampleType:  s.SampleType,
			Laboratory:  s.Laboratory,
			SubmittedOn: s.SubmittedOn,
		}
	}
	return ev
}

func DTOToSampleResult(fieldID string, dto SampleResultRequest) outbreak.RecordSampleResult {
	return outbreak.RecordSampleResult{
		FieldID:     fieldID,
		Result:      models.SampleResult(dto.Result),
		Detail:      dto.Detail,
		Date:        dto.Date.UTC(),
		DiseaseCode: dto.DiseaseCode,
	}
}

func DTOToLinkModel(dto TracingLinkRequest) models.ContactTracingLink {
	return models.ContactTracingLink{
		LocationName: dto.LocationName,
		LocationType: dto.LocationType,
		ContactType:  dto.ContactType,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		ContactDate:  dto.ContactDate.UTC(),
		Direction:    models.TraceDirection(dto.Direction),
		Notes:        dto.Notes,
	}
}

// DTOToHotspotRequest переводит DTO анализа в запрос сервиса
func DTOToHotspotRequest(dto HotspotAnalysisRequest) service.HotspotRequest {
	return service.HotspotRequest{
		Filter: models.CaseFilter{
			DiseaseCode: dto.DiseaseCode,
			Species:     dto.Species,
			From:        dto.From,
			To:          dto.To,
		},
		Field:        dto.Field,
		Threshold:    dto.Threshold,
		Permutations: dto.Permutations,
		Seed:         dto.Seed,
	}
}

// ModelToOutbreakResponse преобразует агрегат вспышки в DTO для ответа
func ModelToOutbreakResponse(agg *models.OutbreakAggregate) *OutbreakResponse {
	resp := &OutbreakResponse{
		Outbreak: agg.Outbreak,
		Cases:    agg.Cases,
		Samples:  agg.Samples,
	}
	if resp.Cases == nil {
		resp.Cases = []models.OutbreakCase{}
	}
	if resp.Samples == nil {
		resp.Samples = []models.Sample{}
	}
	return resp
}

func ModelToTransitionResponse(t *outbreak.Transition) *TransitionResponse {
	return &TransitionResponse{
		Event:    t.Event,
		From:     t.From,
		To:       t.To,
		Promoted: t.Promoted,
		At:       t.At,
		Outbreak: ModelToOutbreakResponse(&t.Aggregate),
	}
}

func ModelToLinkResponse(l *models.ContactTracingLink) *LinkResponse {
	return &LinkResponse{
		ID:               l.ID,
		SourceOutbreakID: l.SourceOutbreakID,
		LocationName:     l.LocationName,
		LocationType:     l.LocationType,
		ContactType:      l.ContactType,
		Latitude:         l.Latitude,
		Longitude:        l.Longitude,
		ContactDate:      l.ContactDate,
		Direction:        l.Direction,
		Notes:            l.Notes,
	}
}

// ModelsToLinkResponses преобразует слайс связей в слайс DTO
func ModelsToLinkResponses(links []models.ContactTracingLink) []*LinkResponse {
	responses := make([]*LinkResponse, len(links))
	for i := range links {
		responses[i] = ModelToLinkResponse(&links[i])
	}
	return responses
}

func ModelToGraphResponse(res *spatial.BuildResult) *GraphResponse {
	snapshot := res.Snapshot()
	return &GraphResponse{
		Fingerprint: snapshot.Fingerprint,
		Policy:      snapshot.Policy,
		Regions:     res.Graph.Len(),
		Neighbors:   snapshot.Neighbors,
		Rejected:    snapshot.Rejected,
	}
}

func ModelToSampleStats(counts map[models.SampleStatus]int) *SampleStatsResponse {
	resp := &SampleStatsResponse{Counts: counts}
	for _, n := range counts {
		resp.Total += n
	}
	return resp
}
