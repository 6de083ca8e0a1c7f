package bwt

import "sort"

// suffixSort fills sa with the suffix array of data. It sorts by prefix
// doubling: after round h all suffixes are ordered by their first 2h
// bytes, and the ranks of round h order the pairs of round 2h. rank and
// tmp are scratch slices of the same length as data.
func suffixSort(data []byte, sa, rank, tmp []int32) {
	n := len(data)
	for i := 0; i < n; i++ {
		sa[i] = int32(i)
		rank[i] = int32(data[i])
	}
	for h := 1; ; h *= 2 {
		// Suffixes shorter than h+1 bytes have no second rank;
		// -1 sorts them first, matching their lexicographic order.
		key := func(i int32) (int32, int32) {
			if k := int(i) + h; k < n {
				return rank[i], rank[k]
			}
			return rank[i], -1
		}
		sort.Slice(sa, func(a, b int) bool {
			a1, a2 := key(sa[a])
			b1, b2 := key(sa[b])
			if a1 != b1 {
				return a1 < b1
			}
			return a2 < b2
		})
		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			a1, a2 := key(sa[i-1])
			b1, b2 := key(sa[i])
			r := tmp[sa[i-1]]
			if a1 != b1 || a2 != b2 {
				r++
			}
			tmp[sa[i]] = r
		}
		copy(rank, tmp)
		if int(rank[sa[n-1]]) == n-1 {
			return
		}
	}
}
