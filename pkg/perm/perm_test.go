package perm

import (
	"math"
	"slices"
	"testing"
)

func TestSeq(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{n: 0, want: []int{}},
		{n: -3, want: []int{}},
		{n: 4, want: []int{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		if got := Seq(tt.n); !slices.Equal(got, tt.want) {
			t.Errorf("Seq(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestFromPartition(t *testing.T) {
	tests := []struct {
		name   string
		part   []int
		nbPart int
		want   []int
	}{
		{
			name:   "already grouped",
			part:   []int{0, 0, 1, 1},
			nbPart: 2,
			want:   []int{0, 1, 2, 3},
		},
		{
			name:   "interleaved is stable",
			part:   []int{1, 0, 1, 0, 2},
			nbPart: 3,
			want:   []int{2, 0, 3, 1, 4},
		},
		{
			name:   "empty partition",
			part:   []int{2, 0, 2},
			nbPart: 3,
			want:   []int{1, 0, 2},
		},
		{
			name:   "no items",
			part:   nil,
			nbPart: 2,
			want:   []int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromPartition(tt.part, tt.nbPart)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("FromPartition(%v) = %v, want %v", tt.part, got, tt.want)
			}
			if !IsBijection(got) {
				t.Errorf("FromPartition(%v) is not a bijection", tt.part)
			}
		})
	}
}

func TestFromPartitionGroupsByID(t *testing.T) {
	part := []int{3, 1, 0, 3, 2, 1, 0, 0, 2, 3}
	p := FromPartition(part, 4)
	inv := Inverse(p)

	prev := -1
	for _, item := range inv {
		if part[item] < prev {
			t.Fatalf("partition ids not ascending in new order: %v", inv)
		}
		prev = part[item]
	}

	sizes := Sizes(part, 4)
	if !slices.Equal(sizes, []int{3, 2, 2, 3}) {
		t.Errorf("Sizes = %v", sizes)
	}
}

func TestInverseAndCompose(t *testing.T) {
	p := []int{2, 0, 3, 1}
	inv := Inverse(p)
	if !slices.Equal(inv, []int{1, 3, 0, 2}) {
		t.Fatalf("Inverse = %v", inv)
	}
	if id := Compose(p, inv); !slices.Equal(id, Seq(4)) {
		t.Errorf("Compose(p, Inverse(p)) = %v, want identity", id)
	}
	if id := Compose(inv, p); !slices.Equal(id, Seq(4)) {
		t.Errorf("Compose(Inverse(p), p) = %v, want identity", id)
	}
}

func TestIsBijection(t *testing.T) {
	tests := []struct {
		perm []int
		want bool
	}{
		{perm: nil, want: true},
		{perm: []int{1, 0, 2}, want: true},
		{perm: []int{1, 1, 2}, want: false},
		{perm: []int{0, 3, 1}, want: false},
		{perm: []int{-1, 0}, want: false},
	}
	for _, tt := range tests {
		if got := IsBijection(tt.perm); got != tt.want {
			t.Errorf("IsBijection(%v) = %v, want %v", tt.perm, got, tt.want)
		}
	}
}

func TestPermute1D(t *testing.T) {
	tab := []int{10, 11, 12, 13}
	Permute1D(tab, []int{3, 0, 1, 2})
	if !slices.Equal(tab, []int{11, 12, 13, 10}) {
		t.Errorf("Permute1D = %v", tab)
	}
}

func TestPermute2D(t *testing.T) {
	tab := []int{
		1, 2,
		3, 4,
		5, 6,
	}
	Permute2D(tab, []int{2, 0, 1}, 2)
	want := []int{
		3, 4,
		5, 6,
		1, 2,
	}
	if !slices.Equal(tab, want) {
		t.Errorf("Permute2D = %v, want %v", tab, want)
	}
}

func TestPermute2DSubRange(t *testing.T) {
	tab := []int{0, 0, 1, 1, 2, 2, 3, 3}
	Permute2D(tab[2:6], []int{1, 0}, 2)
	if !slices.Equal(tab, []int{0, 0, 2, 2, 1, 1, 3, 3}) {
		t.Errorf("Permute2D on sub-slice = %v", tab)
	}
}

func TestPermuteShapeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on shape mismatch")
		}
	}()
	Permute2D([]int{1, 2, 3}, []int{0, 1}, 2)
}

func TestPermuteInverseRoundTrip(t *testing.T) {
	p := FromPartition([]int{2, 1, 0, 1, 2, 0}, 3)
	inv := Inverse(p)

	ints := []int{7, -3, 42, 0, 9, 1}
	orig := slices.Clone(ints)
	Permute1D(ints, p)
	Permute1D(ints, inv)
	if !slices.Equal(ints, orig) {
		t.Errorf("int round trip = %v, want %v", ints, orig)
	}

	floats := []float64{
		0.1, math.Pi,
		-0.0, 1e-300,
		math.Inf(1), 2.5,
		3.3, math.SmallestNonzeroFloat64,
		math.MaxFloat64, -7,
		1.0 / 3.0, 0.2,
	}
	origF := slices.Clone(floats)
	Permute2D(floats, p, 2)
	Permute2D(floats, inv, 2)
	for i := range floats {
		if math.Float64bits(floats[i]) != math.Float64bits(origF[i]) {
			t.Fatalf("float round trip differs at %d: %v != %v", i, floats[i], origF[i])
		}
	}
}

func TestRenumber(t *testing.T) {
	nodePerm := []int{2, 0, 1}

	zero := []int{0, 1, 2, 2}
	Renumber(zero, nodePerm, 0)
	if !slices.Equal(zero, []int{2, 0, 1, 1}) {
		t.Errorf("Renumber base 0 = %v", zero)
	}

	one := []int{1, 2, 3, 3}
	Renumber(one, nodePerm, 1)
	if !slices.Equal(one, []int{3, 1, 2, 2}) {
		t.Errorf("Renumber base 1 = %v", one)
	}
}
