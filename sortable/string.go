package sortable

// String orders by byte-wise comparison, the same order compare.Bytes gives
// NUL-padded word records.
type String string

var _ Sortable[String] = (*String)(nil)

func (s String) Equals(other String) bool {
	return s == other
}

func (s String) LessThan(other String) bool {
	return s < other
}
