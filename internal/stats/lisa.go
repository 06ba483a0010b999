package stats

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultThreshold    = 0.05
	DefaultPermutations = 999
	defaultBatchSize    = 100

	tieTolerance = 1e-12
)

// Neighborhood - граф смежности, над которым считается LISA. Реализуется spatial.Graph.
type Neighborhood interface {
	Has(code string) bool
	Neighbors(code string) []string
}

// SourceFactory выдает независимый поток случайных чисел для региона с номером stream
type SourceFactory func(stream uint64) rand.Source

// SeededSource - воспроизводимые потоки PCG, производные от (seed, номер региона)
func SeededSource(seed uint64) SourceFactory {
	return func(stream uint64) rand.Source {
		return rand.NewPCG(seed, stream)
	}
}

// RandomSource - потоки со случайным seed, выбранным один раз на расчет
func RandomSource() SourceFactory {
	return SeededSource(rand.Uint64())
}

// ClusterLabels - отображаемые названия категорий кластеров
type ClusterLabels map[models.ClusterCategory]string

// DefaultLabels - подписи категорий, принятые в отчетах службы
func DefaultLabels() ClusterLabels {
	return ClusterLabels{
		models.ClusterHighHigh:       "High-High (Hotspot)",
		models.ClusterLowHigh:        "Low-High (Doughnut)",
		models.ClusterLowLow:         "Low-Low (Coldspot)",
		models.ClusterHighLow:        "High-Low (Diamond)",
		models.ClusterNotSignificant: "Not Significant",
	}
}

func (l ClusterLabels) label(c models.ClusterCategory) string {
	if s, ok := l[c]; ok {
		return s
	}
	return string(c)
}

// HotspotOptions - параметры расчета локального индекса Морана.
// Нулевые Threshold и Permutations означают значения по умолчанию
// (DefaultThreshold и DefaultPermutations), отрицательные отклоняются.
type HotspotOptions struct {
	Threshold    float64
	Permutations int
	Source       SourceFactory
	Workers      int
	BatchSize    int
	Labels       ClusterLabels
}

func (o HotspotOptions) withDefaults() (HotspotOptions, error) {
	if o.Permutations < 0 {
		return o, models.NewValidationError("hotspot_options", "permutations", "must not be negative")
	}
	if o.Threshold < 0 || o.Threshold > 1 || math.IsNaN(o.Threshold) {
		return o, models.NewValidationError("hotspot_options", "threshold", "must be within [0, 1]")
	}
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Permutations == 0 {
		o.Permutations = DefaultPermutations
	}
	if o.Source == nil {
		o.Source = RandomSource()
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.BatchSize <= 0 {
		o.BatchSize = defaultBatchSize
	}
	if o.Labels == nil {
		o.Labels = DefaultLabels()
	}
	return o, nil
}

// HotspotResult - таблица кластеров по всем регионам меры
type HotspotResult struct {
	Results      []models.ClusterResult `json:"results"`
	Mean         float64                `json:"mean"`
	Variance     float64                `json:"variance"`
	Eligible     int                    `json:"eligible"`
	Isolated     []string               `json:"isolated,omitempty"`
	Permutations int                    `json:"permutations"`
	Threshold    float64                `json:"threshold"`
}

// Result возвращает строку таблицы по коду региона
func (r *HotspotResult) Result(code string) (models.ClusterResult, bool) {
	i := sort.Search(len(r.Results), func(i int) bool { return r.Results[i].RegionCode >= code })
	if i < len(r.Results) && r.Results[i].RegionCode == code {
		return r.Results[i], true
	}
	return models.ClusterResult{}, false
}

// Count возвращает число регионов каждой категории
func (r *HotspotResult) Count() map[models.ClusterCategory]int {
	out := make(map[models.ClusterCategory]int)
	for _, c := range r.Results {
		out[c.Category]++
	}
	return out
}

type lisaInput struct {
	codes     []string
	z         []float64
	neighbors [][]int
	den       float64
}

// DetectHotspots считает локальный индекс Морана с условной перестановкой.
// Регионы без соседей помечаются как изолированные и в расчет не входят.
func DetectHotspots(ctx context.Context, measure models.RegionMeasure, nb Neighborhood, opts HotspotOptions) (*HotspotResult, error) {
	const op = "hotspot detection"
	if len(measure) == 0 {
		return nil, &models.ComputationError{Operation: op, Reason: "empty region set"}
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(measure))
	var invalid []string
	for code, v := range measure {
		codes = append(codes, code)
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			invalid = append(invalid, code)
		}
	}
	sort.Strings(codes)
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, &models.ComputationError{
			Operation: op,
			Regions:   invalid,
			Reason:    "measure must be finite and non-negative",
		}
	}

	// отбор регионов, имеющих хотя бы одного соседа в мере
	eligible := make(map[string]int, len(codes))
	var eligibleCodes []string
	result := &HotspotResult{Permutations: opts.Permutations, Threshold: opts.Threshold}
	for _, code := range codes {
		if !nb.Has(code) || len(neighborsInMeasure(code, measure, nb)) == 0 {
			result.Isolated = append(result.Isolated, code)
			continue
		}
		eligible[code] = len(eligibleCodes)
		eligibleCodes = append(eligibleCodes, code)
	}

	n := len(eligibleCodes)
	in := lisaInput{codes: eligibleCodes, z: make([]float64, n), neighbors: make([][]int, n)}
	for i, code := range eligibleCodes {
		result.Mean += measure[code]
		for _, nc := range neighborsInMeasure(code, measure, nb) {
			if j, ok := eligible[nc]; ok {
				in.neighbors[i] = append(in.neighbors[i], j)
			}
		}
	}
	if n > 0 {
		result.Mean /= float64(n)
	}
	distinct := make(map[float64]struct{})
	for i, code := range eligibleCodes {
		in.z[i] = measure[code] - result.Mean
		in.den += in.z[i] * in.z[i]
		distinct[measure[code]] = struct{}{}
	}
	if n > 0 {
		result.Variance = in.den / float64(n)
	}
	result.Eligible = n

	byCode := make(map[string]models.ClusterResult, len(codes))
	for _, code := range result.Isolated {
		byCode[code] = notSignificant(code, measure[code], 0, opts.Labels, true)
	}

	if n < 2 || len(distinct) < 2 || in.den == 0 {
		for i, code := range eligibleCodes {
			byCode[code] = notSignificant(code, measure[code], len(in.neighbors[i]), opts.Labels, false)
		}
		result.Results = collect(codes, byCode)
		return result, nil
	}

	locals, err := permute(ctx, in, opts)
	if err != nil {
		return nil, err
	}

	sd := math.Sqrt(result.Variance)
	for i, code := range eligibleCodes {
		l := locals[i]
		category := models.ClusterNotSignificant
		if l.p <= opts.Threshold {
			category = quadrant(in.z[i], l.lag)
		}
		byCode[code] = models.ClusterResult{
			RegionCode:        code,
			Value:             measure[code],
			StandardizedValue: in.z[i] / sd,
			SpatialLag:        l.lag / sd,
			LocalI:            l.i,
			PValue:            l.p,
			Category:          category,
			Label:             opts.Labels.label(category),
			Neighbors:         len(in.neighbors[i]),
		}
	}
	result.Results = collect(codes, byCode)
	return result, nil
}

type localStat struct {
	i   float64
	lag float64
	p   float64
}

// permute считает наблюдаемую статистику и псевдо p-value для каждого региона.
// У каждого региона свой поток случайных чисел, поэтому результат не зависит от числа воркеров.
func permute(ctx context.Context, in lisaInput, opts HotspotOptions) ([]localStat, error) {
	n := len(in.z)
	out := make([]localStat, n)
	scale := float64(n-1) / in.den
	var maxAbs float64
	for _, z := range in.z {
		maxAbs = max(maxAbs, math.Abs(z))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			ns := in.neighbors[i]
			k := len(ns)
			var sum float64
			for _, j := range ns {
				sum += in.z[j]
			}
			lag := sum / float64(k)
			observed := scale * in.z[i] * lag
			// суммы одного набора соседей в разном порядке различаются на ошибку округления
			tol := tieTolerance * float64(k) * maxAbs

			// индексы остальных n-1 регионов; частичная перетасовка Фишера-Йетса
			others := make([]int, 0, n-1)
			for j := 0; j < n; j++ {
				if j != i {
					others = append(others, j)
				}
			}
			rng := rand.New(opts.Source(uint64(i)))

			var above, below int
			for done := 0; done < opts.Permutations; {
				if err := gctx.Err(); err != nil {
					return err
				}
				batch := min(opts.BatchSize, opts.Permutations-done)
				for b := 0; b < batch; b++ {
					var psum float64
					for t := 0; t < k; t++ {
						s := t + rng.IntN(len(others)-t)
						others[t], others[s] = others[s], others[t]
						psum += in.z[others[t]]
					}
					switch cmpStat(in.z[i], psum-sum, tol) {
					case 1:
						above++
					case -1:
						below++
					default:
						above++
						below++
					}
				}
				done += batch
			}

			extreme := min(above, below)
			out[i] = localStat{
				i:   observed,
				lag: lag,
				p:   float64(extreme+1) / float64(opts.Permutations+1),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("stats: hotspot permutations: %w", err)
	}
	return out, nil
}

// cmpStat сравнивает статистику перестановки с наблюдаемой по разности сумм соседей d.
// Разность в пределах tol считается равенством.
func cmpStat(z, d, tol float64) int {
	if z == 0 || math.Abs(d) <= tol {
		return 0
	}
	if z*d > 0 {
		return 1
	}
	return -1
}

// quadrant - значение, равное среднему, относится к "низким"
func quadrant(z, lag float64) models.ClusterCategory {
	switch {
	case z > 0 && lag > 0:
		return models.ClusterHighHigh
	case z <= 0 && lag > 0:
		return models.ClusterLowHigh
	case z <= 0 && lag <= 0:
		return models.ClusterLowLow
	default:
		return models.ClusterHighLow
	}
}

func neighborsInMeasure(code string, measure models.RegionMeasure, nb Neighborhood) []string {
	var out []string
	for _, nc := range nb.Neighbors(code) {
		if nc == code {
			continue
		}
		if _, ok := measure[nc]; ok {
			out = append(out, nc)
		}
	}
	return out
}

func notSignificant(code string, value float64, neighbors int, labels ClusterLabels, isolated bool) models.ClusterResult {
	return models.ClusterResult{
		RegionCode: code,
		Value:      value,
		PValue:     1,
		Category:   models.ClusterNotSignificant,
		Label:      labels.label(models.ClusterNotSignificant),
		Neighbors:  neighbors,
		Isolated:   isolated,
	}
}

func collect(codes []string, byCode map[string]models.ClusterResult) []models.ClusterResult {
	out := make([]models.ClusterResult, 0, len(codes))
	for _, code := range codes {
		out = append(out, byCode[code])
	}
	return out
}
