package sorting

// Insertion sorts seq with insertion sort. The sorted prefix grows by one record at
// a time; the new record is held aside while every larger record before it shifts
// one slot right. Equal records are never shifted past each other.
//
// Stable. O(n²) worst case, O(n) on nearly sorted input, one record of scratch.
func Insertion(seq []byte, n, size int, cmp Comparator, opts ...Option) error {
	return Sort(InsertionSort, seq, n, size, cmp, opts...)
}

func insertionSort[S store[S]](s S) error {
	n := s.Len()
	if n < 2 {
		return nil
	}

	key, release, err := s.Scratch(1)
	if err != nil {
		return err
	}

	defer release()

	for i := 1; i < n; i++ {
		key.Move(0, s, i)

		j := i - 1
		for j >= 0 && s.Compare(j, key, 0) > 0 {
			s.Move(j+1, s, j)
			j--
		}

		s.Move(j+1, key, 0)
	}

	return nil
}
