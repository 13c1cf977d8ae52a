package perm

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// This is the identity permutation on n items.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Sizes returns the number of items assigned to each partition id in [0, nbPart).
// Ids outside that range cause a panic.
func Sizes(part []int, nbPart int) []int {
	sizes := make([]int, nbPart)
	for _, p := range part {
		sizes[p]++
	}
	return sizes
}

// FromPartition returns the permutation that groups items contiguously by
// partition id in ascending id order, preserving the original relative order
// inside each partition.
//
// Partition p starts at the sum of the sizes of partitions 0..p-1; each item
// takes its partition's next free slot. Empty partitions are legal and simply
// occupy no slot.
func FromPartition(part []int, nbPart int) []int {
	offset := make([]int, nbPart+1)
	for _, p := range part {
		offset[p+1]++
	}
	for i := 1; i <= nbPart; i++ {
		offset[i] += offset[i-1]
	}

	perm := make([]int, len(part))
	for i, p := range part {
		perm[i] = offset[p]
		offset[p]++
	}
	return perm
}

// Inverse returns the inverse of perm: Inverse(perm)[perm[i]] == i.
// perm must be a bijection.
func Inverse(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}

// Compose returns the permutation that applies first and then second:
// Compose(first, second)[i] == second[first[i]].
func Compose(first, second []int) []int {
	out := make([]int, len(first))
	for i, p := range first {
		out[i] = second[p]
	}
	return out
}

// IsBijection reports whether perm maps [0, len(perm)) onto itself.
func IsBijection(perm []int) bool {
	seen := make([]bool, len(perm))
	for _, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}
