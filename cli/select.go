package cli

import (
	"slices"

	"github.com/amp-labs/amp-sort/sortable"
	"github.com/amp-labs/amp-sort/sorting"
)

const doneChoice = "[Done]"

// MultiSelect lets the user pick any number of choices, one at a time, until
// they choose "[Done]" or nothing is left. The picks come back in the order
// of choices.
func MultiSelect(p Prompter, label string, choices ...string) ([]string, error) {
	if len(choices) == 0 {
		return nil, nil
	}

	remaining := slices.Clone(choices)
	if err := sorting.SortSlice(sorting.InsertionSort, remaining, byText); err != nil {
		return nil, err
	}

	remaining = slices.Compact(remaining)

	picked := make(map[string]bool, len(remaining))

	for len(remaining) > 0 {
		items := append([]string{doneChoice}, remaining...)

		idx, err := p.Select(label, items)
		if err != nil {
			return nil, err
		}

		if idx <= 0 || idx >= len(items) {
			break
		}

		picked[items[idx]] = true
		remaining = slices.Delete(remaining, idx-1, idx)
	}

	var out []string

	for _, c := range choices {
		if picked[c] {
			out = append(out, c)
			delete(picked, c)
		}
	}

	return out, nil
}

func byText(a, b string) int {
	return sortable.Compare(sortable.String(a), sortable.String(b))
}
