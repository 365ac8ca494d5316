package dag

import (
	"reflect"
	"testing"
)

func TestToposortBatches(t *testing.T) {
	// 0 -> 1 -> 3, 0 -> 2 -> 3, 4 independent
	g := NewGraph(5)
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)
	g.AddEdge(2, 3)

	topo := ToposortKahn(g)
	if topo.Cyclic {
		t.Fatalf("unexpected cycle: %v", topo.Cycles)
	}
	wantBatches := [][]NodeID{{0, 4}, {1, 2}, {3}}
	if !reflect.DeepEqual(topo.Batches, wantBatches) {
		t.Fatalf("batches = %v, want %v", topo.Batches, wantBatches)
	}
	wantOrder := []NodeID{0, 4, 1, 2, 3}
	if !reflect.DeepEqual(topo.Order, wantOrder) {
		t.Fatalf("order = %v, want %v", topo.Order, wantOrder)
	}
}

func TestToposortDetectsCycle(t *testing.T) {
	g := NewGraph(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 1)

	topo := ToposortKahn(g)
	if !topo.Cyclic {
		t.Fatalf("cycle not detected")
	}
	if !reflect.DeepEqual(topo.Cycles, []NodeID{1, 2}) {
		t.Fatalf("cycles = %v, want [1 2]", topo.Cycles)
	}
}

func TestRemoveSkipsNode(t *testing.T) {
	g := NewGraph(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.Remove(0)

	topo := ToposortKahn(g)
	if !reflect.DeepEqual(topo.Order, []NodeID{1, 2}) {
		t.Fatalf("order = %v, want [1 2]", topo.Order)
	}
}
