package sorting

// Selection sorts seq with selection sort. For each position i it scans the
// unsorted suffix for the first minimum and swaps it into place. Only a strictly
// smaller record replaces the current candidate, so ties keep the earliest index.
//
// Not stable. O(n²) comparisons, at most n-1 swaps, one record of scratch.
func Selection(seq []byte, n, size int, cmp Comparator, opts ...Option) error {
	return Sort(SelectionSort, seq, n, size, cmp, opts...)
}

func selectionSort[S store[S]](s S) error {
	n := s.Len()
	if n < 2 {
		return nil
	}

	tmp, release, err := s.Scratch(1)
	if err != nil {
		return err
	}

	defer release()

	for i := 0; i < n-1; i++ {
		minIdx := i

		for j := i + 1; j < n; j++ {
			if s.Compare(j, s, minIdx) < 0 {
				minIdx = j
			}
		}

		if minIdx != i {
			swap(s, tmp, i, minIdx)
		}
	}

	return nil
}
