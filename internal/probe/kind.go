package probe

import (
	"fmt"

	"tmplconfig/internal/dag"
)

// Kind names one probe.
type Kind uint8

const (
	KindWidths Kind = iota
	KindEndianness
	KindSigned
	KindASCII
	KindFloat
	KindDouble
	KindLongDouble
	KindEpsilon
	KindCapabilities

	numKinds
)

var kindNames = [numKinds]string{
	KindWidths:       "widths",
	KindEndianness:   "endianness",
	KindSigned:       "signed",
	KindASCII:        "ascii",
	KindFloat:        "float",
	KindDouble:       "double",
	KindLongDouble:   "long double",
	KindEpsilon:      "epsilon",
	KindCapabilities: "capabilities",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// kindDeps lists the probes each probe reads.
var kindDeps = [numKinds][]Kind{
	KindEndianness:   {KindWidths},
	KindFloat:        {KindWidths},
	KindDouble:       {KindWidths},
	KindLongDouble:   {KindWidths},
	KindCapabilities: {KindWidths, KindEndianness, KindFloat, KindDouble, KindLongDouble},
}

// plan orders the probes so that each runs after what it reads.
func plan() ([]Kind, error) {
	g := dag.NewGraph(int(numKinds))
	for k, deps := range kindDeps {
		for _, d := range deps {
			g.AddEdge(dag.NodeID(d), dag.NodeID(k))
		}
	}
	topo := dag.ToposortKahn(g)
	if topo.Cyclic {
		return nil, fmt.Errorf("probe dependency cycle through %v", topo.Cycles)
	}
	out := make([]Kind, len(topo.Order))
	for i, id := range topo.Order {
		out[i] = Kind(id)
	}
	return out, nil
}
