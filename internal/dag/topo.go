package dag

import "slices"

// Topo is the result of ToposortKahn. Absent nodes appear nowhere.
type Topo struct {
	Order   []NodeID
	Batches [][]NodeID // each batch depends only on earlier ones
	Cyclic  bool
	Cycles  []NodeID // present nodes that never reached indegree zero
}

// ToposortKahn peels the graph in waves of ready nodes, each sorted by id.
func ToposortKahn(g *Graph) *Topo {
	pending := slices.Clone(g.Indeg)
	ready := func(ids []NodeID) []NodeID {
		slices.Sort(ids)
		return ids
	}

	var wave []NodeID
	remaining := 0
	for i, present := range g.Present {
		if !present {
			continue
		}
		remaining++
		if pending[i] == 0 {
			wave = append(wave, toID(i))
		}
	}

	topo := &Topo{}
	for wave = ready(wave); len(wave) > 0; {
		topo.Batches = append(topo.Batches, wave)
		topo.Order = append(topo.Order, wave...)
		remaining -= len(wave)

		var next []NodeID
		for _, from := range wave {
			for _, to := range g.Edges[from] {
				if !g.Present[to] {
					continue
				}
				if pending[to]--; pending[to] == 0 {
					next = append(next, to)
				}
			}
		}
		wave = ready(next)
	}

	if remaining > 0 {
		topo.Cyclic = true
		for i, present := range g.Present {
			if present && pending[i] > 0 {
				topo.Cycles = append(topo.Cycles, toID(i))
			}
		}
	}
	return topo
}
