package model

// WriteSummary counts what a single write pass did to the graph.
type WriteSummary struct {
	Nodes   map[Label]int   `json:"nodes"`
	Edges   map[RelType]int `json:"edges"`
	Skipped map[Label]int   `json:"skipped"`
}

// NewWriteSummary returns an empty summary.
func NewWriteSummary() *WriteSummary {
	return &WriteSummary{
		Nodes:   map[Label]int{},
		Edges:   map[RelType]int{},
		Skipped: map[Label]int{},
	}
}

func (s *WriteSummary) AddNode(label Label) {
	s.Nodes[label]++
}

func (s *WriteSummary) AddEdge(rel RelType) {
	s.Edges[rel]++
}

func (s *WriteSummary) AddSkip(label Label) {
	s.Skipped[label]++
}

// TotalNodes is the number of nodes upserted or created.
func (s *WriteSummary) TotalNodes() int {
	return sum(s.Nodes)
}

// TotalEdges is the number of edges merged.
func (s *WriteSummary) TotalEdges() int {
	return sum(s.Edges)
}

// TotalSkipped is the number of entities left out for missing required fields.
func (s *WriteSummary) TotalSkipped() int {
	return sum(s.Skipped)
}

func sum[K comparable](m map[K]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}
