package perm

import "slices"

// Permute1D moves tab[i] to tab[perm[i]] for every i, in place.
// A temporary copy of tab is allocated. len(perm) must equal len(tab).
func Permute1D[T any](tab []T, perm []int) {
	if len(perm) != len(tab) {
		panic("perm: permutation length does not match array length")
	}
	tmp := slices.Clone(tab)
	for i, v := range tmp {
		tab[perm[i]] = v
	}
}

// Permute2D treats tab as a row-major matrix with dim columns and moves row i
// to row perm[i], in place. A temporary copy of tab is allocated.
// len(perm) must equal len(tab)/dim.
func Permute2D[T any](tab []T, perm []int, dim int) {
	if dim <= 0 || len(tab) != len(perm)*dim {
		panic("perm: permutation length does not match array shape")
	}
	tmp := slices.Clone(tab)
	for i, p := range perm {
		copy(tab[p*dim:(p+1)*dim], tmp[i*dim:(i+1)*dim])
	}
}

// Renumber rewrites every index value in tab through perm. base is the
// numbering base of the values (0 or 1): a value v becomes perm[v-base]+base.
// Positions are not changed.
func Renumber(tab []int, perm []int, base int) {
	for i, v := range tab {
		tab[i] = perm[v-base] + base
	}
}
