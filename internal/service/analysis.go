package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/config"
	"github.com/bayillag/epigeo_surveillance/internal/metrics"
	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/spatial"
	"github.com/bayillag/epigeo_surveillance/internal/stats"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// HotspotRequest - параметры одного анализа горячих точек
type HotspotRequest struct {
	Filter models.CaseFilter
	// Field - поле таблицы показателей (stats.FieldAttackRate и т.д.)
	Field        string
	Threshold    float64
	Permutations int
	// Seed фиксирует генератор; nil - seed из конфигурации
	Seed *uint64
}

// HotspotReport - результат анализа вместе с контекстом расчета
type HotspotReport struct {
	Field            string                  `json:"field"`
	GraphFingerprint string                  `json:"graph_fingerprint"`
	Contiguity       string                  `json:"contiguity"`
	Result           *stats.HotspotResult    `json:"result"`
	RejectedRegions  []*models.GeometryError `json:"rejected_regions,omitempty"`
	UnmatchedRegions []string                `json:"unmatched_regions,omitempty"`
}

// AnalysisService определяет контракт аналитики по регионам
type AnalysisService interface {
	RegionGraph(ctx context.Context) (*spatial.BuildResult, error)
	Rates(ctx context.Context, filter models.CaseFilter) (*stats.RateTable, error)
	Hotspots(ctx context.Context, req HotspotRequest) (*HotspotReport, error)
	CompareHotspots(ctx context.Context, reqs []HotspotRequest) ([]*HotspotReport, error)
	LocateRegion(ctx context.Context, lat, lon float64) (*models.Region, error)
}

type analysisService struct {
	regions RegionRepository
	store   GraphStore
	builder *spatial.Builder
	cache   *spatial.GraphCache
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

// NewAnalysisService создает сервис аналитики. store может быть nil: тогда графы кэшируются только в памяти процесса.
func NewAnalysisService(regions RegionRepository, store GraphStore, builder *spatial.Builder, cfg *config.Config, m *metrics.Metrics, logger *logrus.Logger) AnalysisService {
	return &analysisService{
		regions: regions,
		store:   store,
		builder: builder,
		cache:   spatial.NewGraphCache(cfg.GraphCacheSize, cfg.GraphCacheTTL),
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}
}

// RegionGraph возвращает граф смежности текущего набора регионов
func (s *analysisService) RegionGraph(ctx context.Context) (*spatial.BuildResult, error) {
	regions, err := s.regions.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list regions: %w", err)
	}
	return s.graphFor(ctx, regions)
}

// graphFor ищет граф в LRU, затем во внешнем кэше и только потом строит его заново
func (s *analysisService) graphFor(ctx context.Context, regions []models.Region) (*spatial.BuildResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "analysis",
		"method":  "RegionGraph",
		"regions": len(regions),
	})
	fp := spatial.RegionsFingerprint(s.builder.Policy(), regions)

	if res, ok := s.cache.Get(fp); ok {
		s.metrics.GraphCache.WithLabelValues("memory", "hit").Inc()
		return res, nil
	}
	s.metrics.GraphCache.WithLabelValues("memory", "miss").Inc()

	if s.store != nil {
		snapshot, err := s.store.LoadGraph(ctx, fp)
		switch {
		case err != nil:
			s.metrics.GraphCache.WithLabelValues("redis", "error").Inc()
			log.WithError(err).Warn("Failed to load region graph from cache")
		case snapshot != nil:
			s.metrics.GraphCache.WithLabelValues("redis", "hit").Inc()
			res := snapshot.Result()
			s.cache.Add(res)
			return res, nil
		default:
			s.metrics.GraphCache.WithLabelValues("redis", "miss").Inc()
		}
	}

	start := time.Now()
	res, err := s.builder.Build(ctx, regions)
	s.metrics.ObserveAnalysis("region_graph", start)
	if err != nil {
		log.WithError(err).Error("Failed to build region graph")
		return nil, fmt.Errorf("service: could not build region graph: %w", err)
	}
	s.metrics.RejectedRegions.Set(float64(len(res.Rejected)))
	s.cache.Add(res)

	if s.store != nil {
		if err := s.store.SaveGraph(ctx, res.Snapshot()); err != nil {
			log.WithError(err).Warn("Failed to save region graph to cache")
		}
	}
	return res, nil
}

// Rates - таблица показателей по всем регионам
func (s *analysisService) Rates(ctx context.Context, filter models.CaseFilter) (*stats.RateTable, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "analysis",
		"method":  "Rates",
		"disease": filter.DiseaseCode,
	})
	if err := validateCaseFilter(filter); err != nil {
		return nil, err
	}
	start := time.Now()
	defer s.metrics.ObserveAnalysis("rates", start)

	var (
		regions []models.Region
		records []models.CaseRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		regions, err = s.regions.ListRegions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.regions.ListCaseRecords(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Failed to load data for rate table")
		return nil, fmt.Errorf("service: could not compute rates: %w", err)
	}

	table, err := stats.AggregateRates(regionCodes(regions), records)
	if err != nil {
		log.WithError(err).Warn("Rate aggregation rejected")
		return nil, fmt.Errorf("service: could not compute rates: %w", err)
	}
	if len(table.Unmatched) > 0 {
		log.WithField("unmatched", table.Unmatched).Warn("Case records reference unknown regions")
	}
	log.WithField("regions", len(table.Rates)).Info("Rate table computed")
	return &table, nil
}

// Hotspots строит таблицу показателей, граф смежности и таблицу кластеров LISA
func (s *analysisService) Hotspots(ctx context.Context, req HotspotRequest) (*HotspotReport, error) {
	if req.Field == "" {
		req.Field = stats.FieldAttackRate
	}
	log := s.logger.WithFields(logrus.Fields{
		"service": "analysis",
		"method":  "Hotspots",
		"field":   req.Field,
		"disease": req.Filter.DiseaseCode,
	})
	if err := validateCaseFilter(req.Filter); err != nil {
		return nil, err
	}
	start := time.Now()
	defer s.metrics.ObserveAnalysis("hotspots", start)

	var (
		graph   *spatial.BuildResult
		records []models.CaseRecord
		regions []models.Region
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		regions, err = s.regions.ListRegions(gctx)
		if err != nil {
			return err
		}
		graph, err = s.graphFor(gctx, regions)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.regions.ListCaseRecords(gctx, req.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Failed to prepare hotspot analysis")
		return nil, fmt.Errorf("service: could not detect hotspots: %w", err)
	}

	table, err := stats.AggregateRates(regionCodes(regions), records)
	if err != nil {
		return nil, fmt.Errorf("service: could not detect hotspots: %w", err)
	}
	measure, err := table.Measure(req.Field)
	if err != nil {
		return nil, fmt.Errorf("service: could not detect hotspots: %w", err)
	}

	result, err := stats.DetectHotspots(ctx, measure, graph.Graph, s.hotspotOptions(req))
	if err != nil {
		log.WithError(err).Warn("Hotspot detection failed")
		return nil, fmt.Errorf("service: could not detect hotspots: %w", err)
	}

	counts := result.Count()
	for _, c := range []models.ClusterCategory{
		models.ClusterHighHigh, models.ClusterLowHigh, models.ClusterLowLow,
		models.ClusterHighLow, models.ClusterNotSignificant,
	} {
		s.metrics.ClusterRegions.WithLabelValues(string(c)).Set(float64(counts[c]))
	}
	log.WithFields(logrus.Fields{
		"regions":  len(result.Results),
		"hotspots": counts[models.ClusterHighHigh],
		"isolated": len(result.Isolated),
	}).Info("Hotspot analysis completed")

	return &HotspotReport{
		Field:            req.Field,
		GraphFingerprint: graph.Graph.Fingerprint(),
		Contiguity:       graph.Graph.Policy(),
		Result:           result,
		RejectedRegions:  graph.Rejected,
		UnmatchedRegions: table.Unmatched,
	}, nil
}

// CompareHotspots выполняет несколько независимых анализов параллельно.
// Порядок отчетов совпадает с порядком запросов.
func (s *analysisService) CompareHotspots(ctx context.Context, reqs []HotspotRequest) ([]*HotspotReport, error) {
	if len(reqs) == 0 {
		return nil, models.NewValidationError("hotspot_request", "analyses", "at least one analysis is required")
	}
	reports := make([]*HotspotReport, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			r, err := s.Hotspots(gctx, req)
			if err != nil {
				return fmt.Errorf("analysis %d: %w", i, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// LocateRegion находит вореду, граница которой содержит точку
func (s *analysisService) LocateRegion(ctx context.Context, lat, lon float64) (*models.Region, error) {
	if lat < -90 || lat > 90 {
		return nil, models.NewValidationError("location", "latitude", "must be within [-90, 90]")
	}
	if lon < -180 || lon > 180 {
		return nil, models.NewValidationError("location", "longitude", "must be within [-180, 180]")
	}
	regions, err := s.regions.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not locate region: %w", err)
	}
	pt := orb.Point{lon, lat}
	for i := range regions {
		if spatial.Contains(regions[i].Boundary, pt) {
			region := regions[i]
			return &region, nil
		}
	}
	return nil, fmt.Errorf("region at %.5f,%.5f: %w", lat, lon, models.ErrNotFound)
}

func (s *analysisService) hotspotOptions(req HotspotRequest) stats.HotspotOptions {
	opts := stats.HotspotOptions{
		Threshold:    s.cfg.HotspotThreshold,
		Permutations: s.cfg.HotspotPermutations,
		Workers:      s.cfg.HotspotWorkers,
	}
	if req.Threshold != 0 {
		opts.Threshold = req.Threshold
	}
	if req.Permutations != 0 {
		opts.Permutations = req.Permutations
	}
	switch {
	case req.Seed != nil:
		opts.Source = stats.SeededSource(*req.Seed)
	case s.cfg.HotspotSeed != nil:
		opts.Source = stats.SeededSource(*s.cfg.HotspotSeed)
	default:
		opts.Source = stats.RandomSource()
	}
	return opts
}

func validateCaseFilter(f models.CaseFilter) error {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return models.NewValidationError("case_filter", "from", "must not be after 'to'")
	}
	return nil
}

func regionCodes(regions []models.Region) []string {
	codes := make([]string, 0, len(regions))
	for _, r := range regions {
		codes = append(codes, r.Code)
	}
	return codes
}
