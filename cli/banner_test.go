package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		width     int
		alignment Alignment
		want      string
	}{
		{
			name:      "center",
			text:      "hi",
			width:     8,
			alignment: AlignCenter,
			want:      "╒══════╕\n│  hi  │\n└──────┘",
		},
		{
			name:      "left",
			text:      "hi",
			width:     8,
			alignment: AlignLeft,
			want:      "╒══════╕\n│hi    │\n└──────┘",
		},
		{
			name:      "right",
			text:      "hi",
			width:     8,
			alignment: AlignRight,
			want:      "╒══════╕\n│    hi│\n└──────┘",
		},
		{
			name:      "truncated",
			text:      "abcdefgh",
			width:     7,
			alignment: AlignLeft,
			want:      "╒═════╕\n│abc… │\n└─────┘",
		},
		{
			name:      "multiline",
			text:      "a\r\nbb",
			width:     5,
			alignment: AlignRight,
			want:      "╒═══╕\n│  a│\n│ bb│\n└───┘",
		},
		{
			name:      "too narrow",
			text:      "a",
			width:     2,
			alignment: AlignLeft,
			want:      "",
		},
		{
			name:      "bad alignment",
			text:      "a",
			width:     10,
			alignment: Alignment(42),
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Banner(tt.text, tt.width, tt.alignment))
		})
	}
}

func TestBanner_Width(t *testing.T) {
	t.Parallel()

	for _, line := range strings.Split(Banner("Sorting results: numbers", 40, AlignCenter), "\n") {
		assert.Equal(t, 40, countGraphic(line), line)
	}
}

func TestDivider(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "┠───┨\n", Divider(5))
	assert.Empty(t, Divider(1))
}
