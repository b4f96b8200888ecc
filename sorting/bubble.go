package sorting

// Bubble sorts seq with bubble sort: n-1 passes over the shrinking unsorted suffix,
// swapping every adjacent pair that is out of order. There is no early exit when a
// pass makes no swaps, so the comparison count is always n(n-1)/2.
//
// Stable. O(n²) time, one record of scratch.
func Bubble(seq []byte, n, size int, cmp Comparator, opts ...Option) error {
	return Sort(BubbleSort, seq, n, size, cmp, opts...)
}

func bubbleSort[S store[S]](s S) error {
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
		for j := 0; j < n-i-1; j++ {
			if s.Compare(j, s, j+1) > 0 {
				swap(s, tmp, j, j+1)
			}
		}
	}

	return nil
}
