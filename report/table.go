package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/amp-labs/amp-sort/bench"
	"github.com/amp-labs/amp-sort/cli"
)

const (
	rowFormat    = "| %-15s | %-10s | %-20s | %-10s | %-12s | %-14s | %-18s |\n"
	tableWidth   = 121
	notAvailable = "-"
)

var header = []any{"Algorithm", "Count", "CPU Time (s)", "Memory MB", "Wall (s)", "Comparisons", "Status"} //nolint:gochecknoglobals,lll

// Table writes results as a fixed-width text table under a banner. Time is
// process CPU seconds and Memory MB is the size of the sorted data, as in
// the classic benchmark output. Failed cases show the failure in the time
// column.
func Table(w io.Writer, title string, results []bench.Result) error {
	var sb strings.Builder

	if title != "" {
		sb.WriteString(cli.Banner(title, tableWidth, cli.AlignCenter))
		sb.WriteString("\n")
	}

	divider := strings.Repeat("-", tableWidth) + "\n"

	sb.WriteString(divider)
	fmt.Fprintf(&sb, rowFormat, header...)
	sb.WriteString(divider)

	for _, res := range results {
		fmt.Fprintf(&sb, rowFormat, row(res)...)
	}

	sb.WriteString(divider)

	_, err := io.WriteString(w, sb.String())

	return err
}

func row(res bench.Result) []any {
	count := fmt.Sprint(res.Count)

	switch res.Status {
	case bench.StatusOK:
		return []any{
			res.Algorithm.String(), count,
			seconds(res.CPU.Seconds()), megabytes(res.DataMB()), seconds(res.Wall.Seconds()),
			fmt.Sprint(res.Comparisons), string(res.Status),
		}
	case bench.StatusAllocationFailed:
		return []any{
			res.Algorithm.String(), count,
			"Memory allocation failed", notAvailable, notAvailable,
			fmt.Sprint(res.Comparisons), string(res.Status),
		}
	case bench.StatusNotSorted, bench.StatusNotPermutation:
		return []any{
			res.Algorithm.String(), count,
			"Error: " + capitalize(string(res.Status)), megabytes(res.DataMB()), seconds(res.Wall.Seconds()),
			fmt.Sprint(res.Comparisons), string(res.Status),
		}
	default:
		return []any{
			res.Algorithm.String(), count,
			capitalize(string(res.Status)), notAvailable, notAvailable,
			notAvailable, string(res.Status),
		}
	}
}

func seconds(s float64) string {
	return fmt.Sprintf("%.3f", s)
}

func megabytes(mb float64) string {
	return fmt.Sprintf("%.2f", mb)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
