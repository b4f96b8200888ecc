// Package cli holds the terminal helpers of the sortbench tool: box banners
// for headings and the interactive prompts.
package cli

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/amp-labs/amp-sort/envutil"
	"github.com/amp-labs/amp-sort/lazy"
)

const (
	boxTopLeft     = "╒"
	boxBottomLeft  = "└"
	boxTopRight    = "╕"
	boxBottomRight = "┘"
	boxSide        = "│"
	boxTop         = "═"
	boxBottom      = "─"
	dividerLeft    = "┠"
	dividerMiddle  = "─"
	dividerRight   = "┨"
	ellipsis       = "…"
)

// Alignment positions a line inside a banner.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

const (
	bannerPadding   = 2
	dividerPadding  = 2
	truncateReserve = 1
	halfDivisor     = 2
)

// DefaultTerminalWidth is used when the terminal size can't be determined.
const DefaultTerminalWidth = 80

// nolint:gochecknoglobals
var suppressBanner = lazy.New(func() bool {
	return envutil.Bool("SORTBENCH_NO_BANNER", envutil.Default(false)).ValueOrElse(false)
})

func terminalWidth() int {
	_, w, err := TerminalDimensions()
	if err != nil || w == 0 {
		return DefaultTerminalWidth
	}

	return int(w) //nolint:gosec // Terminal width is bounded by screen size, no overflow risk
}

// DividerAutoWidth is a Divider as wide as the terminal.
func DividerAutoWidth() string {
	return Divider(terminalWidth())
}

// BannerAutoWidth is a Banner as wide as the terminal.
func BannerAutoWidth(s string, a Alignment) string {
	if suppressBanner.Get() {
		return s + "\n"
	}

	return Banner(s, terminalWidth(), a)
}

// Divider is a horizontal rule width columns wide, newline included.
func Divider(width int) string {
	if width < dividerPadding {
		return ""
	}

	return fmt.Sprintf("%s%s%s\n", dividerLeft, strings.Repeat(dividerMiddle, width-dividerPadding), dividerRight)
}

// Banner draws s in a box width columns wide. Each line of s is aligned
// separately and truncated with an ellipsis if it doesn't fit. Setting
// SORTBENCH_NO_BANNER returns s as is.
func Banner(s string, width int, alignment Alignment) string {
	if suppressBanner.Get() {
		return s + "\n"
	}

	lines := getLines(s)
	if len(lines) == 0 || width <= bannerPadding {
		return ""
	}

	inner := width - bannerPadding
	parts := []string{boxTopLeft + strings.Repeat(boxTop, inner) + boxTopRight}

	for _, l := range lines {
		line, ok := pad(l, inner, alignment)
		if !ok {
			return ""
		}

		parts = append(parts, boxSide+line+boxSide)
	}

	parts = append(parts, boxBottomLeft+strings.Repeat(boxBottom, inner)+boxBottomRight)

	return strings.Join(parts, "\n")
}

func getLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.Split(s, "\n")
}

func countGraphic(s string) int {
	count := 0

	for _, r := range s {
		if unicode.IsGraphic(r) {
			count++
		}
	}

	return count
}

// truncateGraphic keeps runes of s until n-1 graphic runes have been kept.
func truncateGraphic(s string, n int) (string, int) {
	var out strings.Builder

	count := 0

	for _, r := range s {
		if unicode.IsGraphic(r) {
			count++
		}

		if count >= n {
			break
		}

		out.WriteRune(r)
	}

	return out.String(), count
}

func pad(text string, width int, alignment Alignment) (string, bool) {
	length := countGraphic(text)

	if length > width {
		text, length = truncateGraphic(text, width-truncateReserve)
		text += ellipsis
	}

	diff := max(width-length, 0)

	switch alignment {
	case AlignLeft:
		return text + strings.Repeat(" ", diff), true
	case AlignRight:
		return strings.Repeat(" ", diff) + text, true
	case AlignCenter:
		left := diff / halfDivisor

		return strings.Repeat(" ", left) + text + strings.Repeat(" ", diff-left), true
	default:
		return "", false
	}
}
