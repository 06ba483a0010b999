package spatial

import (
	"sort"

	"github.com/bayillag/epigeo_surveillance/internal/models"
)

// Graph - симметричный граф смежности регионов без петель.
// После построения не изменяется и безопасен для конкурентного чтения.
type Graph struct {
	policy      string
	fingerprint string
	ids         []string
	neighbors   map[string][]string
}

// GraphSnapshot - сериализуемое представление графа для внешнего кэша
type GraphSnapshot struct {
	Policy      string                  `json:"policy"`
	Fingerprint string                  `json:"fingerprint"`
	Neighbors   map[string][]string     `json:"neighbors"`
	Rejected    []*models.GeometryError `json:"rejected,omitempty"`
}

func newGraph(policy, fingerprint string, ids []string) *Graph {
	g := &Graph{
		policy:      policy,
		fingerprint: fingerprint,
		ids:         ids,
		neighbors:   make(map[string][]string, len(ids)),
	}
	for _, id := range ids {
		g.neighbors[id] = nil
	}
	return g
}

func (g *Graph) link(a, b string) {
	g.neighbors[a] = append(g.neighbors[a], b)
	g.neighbors[b] = append(g.neighbors[b], a)
}

func (g *Graph) finalize() {
	for id := range g.neighbors {
		sort.Strings(g.neighbors[id])
	}
}

// IDs возвращает коды регионов графа в отсортированном порядке
func (g *Graph) IDs() []string {
	out := make([]string, len(g.ids))
	copy(out, g.ids)
	return out
}

// Neighbors возвращает отсортированный список соседей региона
func (g *Graph) Neighbors(code string) []string {
	return g.neighbors[code]
}

// Has сообщает, входит ли регион в граф
func (g *Graph) Has(code string) bool {
	_, ok := g.neighbors[code]
	return ok
}

func (g *Graph) Len() int { return len(g.ids) }

func (g *Graph) Policy() string { return g.policy }

// Fingerprint идентифицирует набор регионов и политику, по которым построен граф
func (g *Graph) Fingerprint() string { return g.fingerprint }

// Adjacent сообщает, являются ли регионы соседями
func (g *Graph) Adjacent(a, b string) bool {
	ns := g.neighbors[a]
	i := sort.SearchStrings(ns, b)
	return i < len(ns) && ns[i] == b
}

// IsSymmetric проверяет, что каждое ребро присутствует в обоих направлениях
func (g *Graph) IsSymmetric() bool {
	for a, ns := range g.neighbors {
		for _, b := range ns {
			if a == b || !g.Adjacent(b, a) {
				return false
			}
		}
	}
	return true
}

// Snapshot копирует граф в сериализуемую форму
func (g *Graph) Snapshot() GraphSnapshot {
	s := GraphSnapshot{
		Policy:      g.policy,
		Fingerprint: g.fingerprint,
		Neighbors:   make(map[string][]string, len(g.neighbors)),
	}
	for id, ns := range g.neighbors {
		cp := make([]string, len(ns))
		copy(cp, ns)
		s.Neighbors[id] = cp
	}
	return s
}

// FromSnapshot восстанавливает граф, заново симметризуя и сортируя списки
func FromSnapshot(s GraphSnapshot) *Graph {
	ids := make([]string, 0, len(s.Neighbors))
	for id := range s.Neighbors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	g := newGraph(s.Policy, s.Fingerprint, ids)
	seen := make(map[[2]string]struct{})
	for _, a := range ids {
		for _, b := range s.Neighbors[a] {
			if a == b || !g.Has(b) {
				continue
			}
			key := [2]string{a, b}
			if a > b {
				key = [2]string{b, a}
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			g.link(key[0], key[1])
		}
	}
	g.finalize()
	return g
}

// Snapshot сохраняет граф вместе со списком исключенных регионов
func (r *BuildResult) Snapshot() GraphSnapshot {
	s := r.Graph.Snapshot()
	s.Rejected = r.Rejected
	return s
}

// Result восстанавливает результат построения из снимка
func (s GraphSnapshot) Result() *BuildResult {
	return &BuildResult{Graph: FromSnapshot(s), Rejected: s.Rejected}
}
