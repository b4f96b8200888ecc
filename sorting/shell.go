package sorting

// Shell sorts seq with shell sort over Knuth's gap sequence (see KnuthGaps). Each gap
// runs an insertion sort over records that far apart; the final gap is always 1.
//
// Not stable. Roughly O(n (log n)²) for this gap sequence, one record of scratch.
func Shell(seq []byte, n, size int, cmp Comparator, opts ...Option) error {
	return Sort(ShellSort, seq, n, size, cmp, opts...)
}

// KnuthGaps returns the gaps shell sort applies to n records, largest first.
// Starting from 1, h = 3h+1 is applied while h < n/3 (integer division), then the
// sequence is walked back down with h /= 3. For n = 10 that is [4 1]; for n = 100 it
// is [40 13 4 1]. It returns nil for n < 2, where there is nothing to sort.
func KnuthGaps(n int) []int {
	if n < 2 {
		return nil
	}

	h := 1
	for h < n/3 {
		h = 3*h + 1
	}

	var gaps []int
	for ; h >= 1; h /= 3 {
		gaps = append(gaps, h)
	}

	return gaps
}

func shellSort[S store[S]](s S) error {
	n := s.Len()
	if n < 2 {
		return nil
	}

	tmp, release, err := s.Scratch(1)
	if err != nil {
		return err
	}

	defer release()

	for _, h := range KnuthGaps(n) {
		for i := h; i < n; i++ {
			tmp.Move(0, s, i)

			j := i
			for j >= h && s.Compare(j-h, tmp, 0) > 0 {
				s.Move(j, s, j-h)
				j -= h
			}

			s.Move(j, tmp, 0)
		}
	}

	return nil
}
