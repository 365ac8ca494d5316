// Package dag orders nodes of a small dependency graph.
package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type NodeID uint16

// Graph stores edges from a dependency to its dependents.
type Graph struct {
	Edges   [][]NodeID
	Indeg   []int
	Present []bool
}

// NewGraph creates a graph with n present nodes and no edges.
func NewGraph(n int) *Graph {
	g := &Graph{
		Edges:   make([][]NodeID, n),
		Indeg:   make([]int, n),
		Present: make([]bool, n),
	}
	for i := range g.Present {
		g.Present[i] = true
	}
	return g
}

// AddEdge records that to depends on from. Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to NodeID) {
	if slices.Contains(g.Edges[from], to) {
		return
	}
	g.Edges[from] = append(g.Edges[from], to)
	slices.Sort(g.Edges[from])
	g.Indeg[to]++
}

// Remove marks a node absent; its edges are skipped by the sort.
func (g *Graph) Remove(id NodeID) {
	if !g.Present[id] {
		return
	}
	g.Present[id] = false
	for _, to := range g.Edges[id] {
		g.Indeg[to]--
	}
}

func toID(i int) NodeID {
	id, err := safecast.Conv[NodeID](i)
	if err != nil {
		panic(fmt.Errorf("node id overflow: %w", err))
	}
	return id
}
