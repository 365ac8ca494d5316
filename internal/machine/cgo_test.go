//go:build cgo && cgoprobe

package machine

import (
	"math"
	"math/big"
	"testing"
)

func TestCgoEpsilonByHalving(t *testing.T) {
	m := &Cgo{}
	tests := []struct {
		typ  Type
		want float64
	}{
		{Float, math.Ldexp(1, -23)},
		{Double, math.Ldexp(1, -52)},
	}
	for _, tt := range tests {
		eps, ok := m.Epsilon(tt.typ)
		if !ok {
			t.Fatalf("Epsilon(%s) unavailable", tt.typ)
		}
		if eps.Cmp(big.NewFloat(tt.want)) != 0 {
			t.Fatalf("Epsilon(%s) = %s, want %g", tt.typ, eps.Text('g', 20), tt.want)
		}
	}
	ld, ok := m.Epsilon(LongDouble)
	if !ok || ld.Sign() <= 0 || ld.Cmp(big.NewFloat(math.Ldexp(1, -52))) > 0 {
		t.Fatalf("long double epsilon = %v, %v", ld, ok)
	}
}
