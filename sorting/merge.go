package sorting

// Merge sorts seq with top-down merge sort. The range [l, r] splits at
// m = l + (r-l)/2, both halves are sorted recursively, then merged through two
// buffers sized to each half. The left record wins ties, which makes the sort stable.
//
// The merge buffers are acquired per merge step and released before it returns,
// so at most n records of scratch are held at once. O(n log n) time.
func Merge(seq []byte, n, size int, cmp Comparator, opts ...Option) error {
	return Sort(MergeSort, seq, n, size, cmp, opts...)
}

func mergeSort[S store[S]](s S) error {
	n := s.Len()
	if n < 2 {
		return nil
	}

	return mergeRange(s, 0, n-1)
}

func mergeRange[S store[S]](s S, l, r int) error {
	if l >= r {
		return nil
	}

	m := l + (r-l)/2

	if err := mergeRange(s, l, m); err != nil {
		return err
	}

	if err := mergeRange(s, m+1, r); err != nil {
		return err
	}

	return merge(s, l, m, r)
}

// merge combines the sorted runs [l, m] and [m+1, r].
func merge[S store[S]](s S, l, m, r int) error {
	n1 := m - l + 1
	n2 := r - m

	left, releaseLeft, err := s.Scratch(n1)
	if err != nil {
		return err
	}

	defer releaseLeft()

	right, releaseRight, err := s.Scratch(n2)
	if err != nil {
		return err
	}

	defer releaseRight()

	for i := range n1 {
		left.Move(i, s, l+i)
	}

	for j := range n2 {
		right.Move(j, s, m+1+j)
	}

	i, j, k := 0, 0, l

	for i < n1 && j < n2 {
		if left.Compare(i, right, j) <= 0 {
			s.Move(k, left, i)
			i++
		} else {
			s.Move(k, right, j)
			j++
		}

		k++
	}

	for ; i < n1; i, k = i+1, k+1 {
		s.Move(k, left, i)
	}

	for ; j < n2; j, k = j+1, k+1 {
		s.Move(k, right, j)
	}

	return nil
}
