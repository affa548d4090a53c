package library

import (
	"os"
	"sort"
)

// Stats holds collection statistics.
type Stats struct {
	DataPath      string      `json:"data_path"`
	DataSizeBytes int64       `json:"data_size_bytes"`
	TotalActions  int         `json:"total_actions"`
	Aliased       int         `json:"aliased"`
	Transitions   int         `json:"transitions"`
	Published     int         `json:"published"`
	Packs         []PackStats `json:"packs"`
}

// PackStats holds per-pack counts.
type PackStats struct {
	Pack  string `json:"pack"`
	Count int    `json:"count"`
}

// Stats returns collection statistics. dataPath is only used to report the
// size of the backing file.
func (l *Library) Stats(dataPath string) *Stats {
	st := &Stats{DataPath: dataPath, TotalActions: len(l.actions), Packs: []PackStats{}}

	if info, err := os.Stat(dataPath); err == nil {
		st.DataSizeBytes = info.Size()
	}

	for _, a := range l.actions {
		if a.Alias != "" {
			st.Aliased++
		}
		st.Transitions += len(a.Transitions)
		for _, t := range a.Transitions {
			st.Published += len(t.Publish)
		}
	}
	st.Packs = l.Packs()
	return st
}

// Packs returns every pack with its action count, most used first.
func (l *Library) Packs() []PackStats {
	counts := map[string]int{}
	for _, a := range l.actions {
		counts[a.Pack]++
	}
	packs := make([]PackStats, 0, len(counts))
	for p, c := range counts {
		packs = append(packs, PackStats{Pack: p, Count: c})
	}
	sort.Slice(packs, func(i, j int) bool {
		if packs[i].Count != packs[j].Count {
			return packs[i].Count > packs[j].Count
		}
		return packs[i].Pack < packs[j].Pack
	})
	return packs
}
