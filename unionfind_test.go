package novelins

import (
	"errors"
	"testing"
)

func TestUnionFindSingletons(t *testing.T) {
	uf := NewUnionFind(5)
	for i := 0; i < 5; i++ {
		if uf.Find(i) != i {
			t.Errorf("Find(%d) = %d, want %d", i, uf.Find(i), i)
		}
		if uf.Size(i) != 1 {
			t.Errorf("Size(%d) = %d, want 1", i, uf.Size(i))
		}
	}
}

func TestUnionFindUnion(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		unite [][2]int
		check [][2]int // pairs that must end up in the same component
	}{
		{
			name:  "chain",
			n:     4,
			unite: [][2]int{{0, 1}, {1, 2}, {2, 3}},
			check: [][2]int{{0, 3}, {0, 1}, {1, 3}},
		},
		{
			name:  "two components",
			n:     6,
			unite: [][2]int{{0, 1}, {2, 3}},
			check: [][2]int{{0, 1}, {2, 3}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			uf := NewUnionFind(test.n)
			for _, e := range test.unite {
				uf.Union(e[0], e[1])
			}
			for _, c := range test.check {
				if uf.Find(c[0]) != uf.Find(c[1]) {
					t.Errorf("Find(%d) != Find(%d)", c[0], c[1])
				}
			}
		})
	}
}

func TestUnionFindSizeInRoot(t *testing.T) {
	uf := NewUnionFind(5)
	uf.Union(0, 1)
	uf.Union(1, 2)
	if got := uf.Size(0); got != 3 {
		t.Errorf("Size(0) = %d, want 3", got)
	}
	if got := uf.Size(3); got != 1 {
		t.Errorf("Size(3) = %d, want 1", got)
	}
}

func TestUnionFindWeightedUnionKeepsTreesShallow(t *testing.T) {
	uf := NewUnionFind(8)
	for i := 0; i < 7; i++ {
		uf.Union(0, i+1)
	}
	if got := uf.Size(0); got != 8 {
		t.Errorf("Size(0) = %d, want 8", got)
	}
	root := uf.Find(0)
	for i := 0; i < 8; i++ {
		if uf.Find(i) != root {
			t.Errorf("Find(%d) = %d, want %d", i, uf.Find(i), root)
		}
	}
}

func TestUnionFindTwinClosure(t *testing.T) {
	n := 4
	uf := NewUnionFind(2 * n)
	uf.UnionTwins(0, 1, n)

	if uf.Find(0) != uf.Find(1) {
		t.Fatal("forward pair not joined")
	}
	if uf.Find(rc(0, n)) != uf.Find(rc(1, n)) {
		t.Fatal("twin pair not joined")
	}
	if got, want := uf.Size(0), uf.Size(rc(0, n)); got != want {
		t.Errorf("Size(0) = %d, Size(rc(0)) = %d, want equal (P1)", got, want)
	}
}

func TestUnionFindValidateTwinClosure(t *testing.T) {
	n := 4
	uf := NewUnionFind(2 * n)
	uf.UnionTwins(0, 1, n)
	uf.UnionTwins(1, 2, n)
	if err := uf.ValidateTwinClosure(n); err != nil {
		t.Errorf("ValidateTwinClosure() = %v, want nil after UnionTwins-only merges", err)
	}
}

func TestUnionFindValidateTwinClosureCatchesBrokenInvariant(t *testing.T) {
	n := 4
	uf := NewUnionFind(2 * n)
	// A plain Union bypasses the twin side, breaking P1 on purpose so
	// ValidateTwinClosure has something to catch.
	uf.Union(0, 1)
	err := uf.ValidateTwinClosure(n)
	var invariant *InternalInvariantError
	if !errors.As(err, &invariant) {
		t.Errorf("ValidateTwinClosure() = %v, want *InternalInvariantError", err)
	}
}
