package tracing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/google/uuid"
)

// Типы узлов сети
const (
	NodeOutbreak = "outbreak"
	NodeLocation = "location"
)

// Node - узел сети прослеживания
type Node struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Label        string   `json:"label"`
	LocationType string   `json:"location_type,omitempty"`
	RegionCode   string   `json:"region_code,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	InDegree     int      `json:"in_degree"`
	OutDegree    int      `json:"out_degree"`
	// Centrality - степенная центральность: (in + out) / (n - 1)
	Centrality float64 `json:"centrality"`
}

// Edge - направленная связь; TraceBack: локация -> вспышка, TraceForward: вспышка -> локация
type Edge struct {
	LinkID      uuid.UUID             `json:"link_id"`
	From        string                `json:"from"`
	To          string                `json:"to"`
	Direction   models.TraceDirection `json:"direction"`
	ContactDate time.Time             `json:"contact_date"`
	ContactType string                `json:"contact_type,omitempty"`
	InWindow    bool                  `json:"in_window"`
}

// Network - ориентированный граф прослеживания
type Network struct {
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Window *Window `json:"window,omitempty"`
}

// Node возвращает узел по идентификатору
func (n Network) Node(id string) (Node, bool) {
	for _, node := range n.Nodes {
		if node.ID == id {
			return node, true
		}
	}
	return Node{}, false
}

// OutbreakNodeID - идентификатор узла вспышки
func OutbreakNodeID(id uuid.UUID) string { return NodeOutbreak + ":" + id.String() }

// LocationNodeID - идентификатор узла локации; имена сравниваются без учета регистра
func LocationNodeID(name string) string {
	return NodeLocation + ":" + strings.ToLower(strings.Join(strings.Fields(name), " "))
}

type builder struct {
	nodes map[string]*Node
	edges []Edge
}

func newBuilder() *builder {
	return &builder{nodes: make(map[string]*Node)}
}

func (b *builder) addOutbreak(o models.Outbreak) string {
	id := OutbreakNodeID(o.ID)
	if _, ok := b.nodes[id]; !ok {
		label := fmt.Sprintf("Outbreak %s", o.ID.String()[:8])
		if o.DiseaseCode != nil {
			label = fmt.Sprintf("%s (%s)", label, *o.DiseaseCode)
		}
		b.nodes[id] = &Node{
			ID:         id,
			Kind:       NodeOutbreak,
			Label:      label,
			RegionCode: o.RegionCode,
			Latitude:   o.Latitude,
			Longitude:  o.Longitude,
		}
	}
	return id
}

func (b *builder) addLink(outbreakNode string, l models.ContactTracingLink, w *Window) {
	locID := LocationNodeID(l.LocationName)
	if _, ok := b.nodes[locID]; !ok {
		b.nodes[locID] = &Node{
			ID:           locID,
			Kind:         NodeLocation,
			Label:        strings.TrimSpace(l.LocationName),
			LocationType: l.LocationType,
			Latitude:     l.Latitude,
			Longitude:    l.Longitude,
		}
	}

	e := Edge{
		LinkID:      l.ID,
		Direction:   l.Direction,
		ContactDate: l.ContactDate,
		ContactType: l.ContactType,
		InWindow:    w == nil || w.Contains(l.ContactDate),
	}
	if l.Direction == models.TraceBack {
		e.From, e.To = locID, outbreakNode
	} else {
		e.From, e.To = outbreakNode, locID
	}
	b.nodes[e.From].OutDegree++
	b.nodes[e.To].InDegree++
	b.edges = append(b.edges, e)
}

func (b *builder) network(w *Window) Network {
	n := Network{Window: w, Nodes: make([]Node, 0, len(b.nodes)), Edges: b.edges}
	for _, node := range b.nodes {
		if len(b.nodes) > 1 {
			node.Centrality = float64(node.InDegree+node.OutDegree) / float64(len(b.nodes)-1)
		}
		n.Nodes = append(n.Nodes, *node)
	}
	sort.Slice(n.Nodes, func(i, j int) bool { return n.Nodes[i].ID < n.Nodes[j].ID })
	sort.SliceStable(n.Edges, func(i, j int) bool {
		a, c := n.Edges[i], n.Edges[j]
		if !a.ContactDate.Equal(c.ContactDate) {
			return a.ContactDate.Before(c.ContactDate)
		}
		if a.From != c.From {
			return a.From < c.From
		}
		return a.To < c.To
	})
	if n.Edges == nil {
		n.Edges = []Edge{}
	}
	return n
}

// Build строит сеть одной индексной вспышки. Ребра вне окна прослеживания
// сохраняются с InWindow = false.
func Build(index models.Outbreak, links []models.ContactTracingLink, window Window) Network {
	b := newBuilder()
	root := b.addOutbreak(index)
	for _, l := range links {
		if l.SourceOutbreakID != index.ID {
			continue
		}
		b.addLink(root, l, &window)
	}
	return b.network(&window)
}

// BuildRegional объединяет сети нескольких вспышек; общие локации становятся общими узлами.
// Окно каждой вспышки вычисляется по справочнику болезней.
func BuildRegional(outbreaks []models.Outbreak, links []models.ContactTracingLink, catalog models.DiseaseCatalog) Network {
	b := newBuilder()
	byID := make(map[uuid.UUID]string, len(outbreaks))
	windows := make(map[uuid.UUID]Window, len(outbreaks))
	for _, o := range outbreaks {
		byID[o.ID] = b.addOutbreak(o)
		windows[o.ID] = WindowFor(o, catalog)
	}
	for _, l := range links {
		node, ok := byID[l.SourceOutbreakID]
		if !ok {
			continue
		}
		w := windows[l.SourceOutbreakID]
		b.addLink(node, l, &w)
	}
	return b.network(nil)
}
