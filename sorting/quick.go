package sorting

// Quick sorts seq with recursive quicksort using a Lomuto partition around the last
// record of each range. There is no randomization and no median-of-three, so
// already-sorted and reverse-sorted input take O(n²) comparisons and recurse n deep.
//
// Not stable. O(n log n) on average, one record of scratch per partition step.
func Quick(seq []byte, n, size int, cmp Comparator, opts ...Option) error {
	return Sort(QuickSort, seq, n, size, cmp, opts...)
}

func quickSort[S store[S]](s S) error {
	n := s.Len()
	if n < 2 {
		return nil
	}

	return quickRange(s, 0, n-1)
}

func quickRange[S store[S]](s S, low, high int) error {
	if low >= high {
		return nil
	}

	pi, err := partition(s, low, high)
	if err != nil {
		return err
	}

	// Pivot landed on the lowest index: nothing sorts before it.
	if pi > low {
		if err := quickRange(s, low, pi-1); err != nil {
			return err
		}
	}

	return quickRange(s, pi+1, high)
}

// partition moves every record that compares <= the pivot (record high) to the front
// of [low, high], places the pivot right after them and returns its index.
func partition[S store[S]](s S, low, high int) (int, error) {
	tmp, release, err := s.Scratch(1)
	if err != nil {
		return 0, err
	}

	defer release()

	// i is the last slot of the <= pivot region; low-1 means the region is empty.
	i := low - 1

	for j := low; j < high; j++ {
		if s.Compare(j, s, high) <= 0 {
			i++
			swap(s, tmp, i, j)
		}
	}

	swap(s, tmp, i+1, high)

	return i + 1, nil
}
