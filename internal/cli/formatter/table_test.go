package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderAlignedTable_RightAlign(t *testing.T) {
	out := stripANSI(RenderAlignedTable(
		[]string{"A", "AMOUNT"},
		[][]string{{"x", "5"}, {"yy", "1,000"}},
		map[int]Align{1: AlignRight},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A   AMOUNT", lines[0])
	assert.Equal(t, "──  ──────", lines[1])
	assert.Equal(t, "x        5", lines[2])
	assert.Equal(t, "yy   1,000", lines[3])
}

func TestRenderTable_ShortRowsPadded(t *testing.T) {
	out := stripANSI(RenderTable([]string{"ID", "NAME"}, [][]string{{"abc"}}))
	assert.Contains(t, out, "abc")
}
