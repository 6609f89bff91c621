package history

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"critique-backend/internal/analyses"
)

func renderString(t *testing.T, v View) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var b strings.Builder
	require.NoError(t, r.Render(&b, v))
	return b.String()
}

func TestRenderTableAndCards(t *testing.T) {
	records := []analyses.Record{{
		ID:     "abc12345xyz",
		Result: &analyses.Result{OverallRating: "9/10 - Great <b>contrast</b>", ColorPalette: []string{"#aabbcc"}},
	}}
	s := New(5).Load(records)

	table := renderString(t, BuildView(s, ViewOptions{}))
	require.Contains(t, table, `class="history-table"`)
	require.Contains(t, table, "9/10")
	require.Contains(t, table, "#aabbcc")
	require.Contains(t, table, `action="/history/abc12345xyz/delete?`)
	require.NotContains(t, table, "<b>contrast</b>")

	cards := renderString(t, BuildView(s.SetLayout(LayoutCards), ViewOptions{}))
	require.Contains(t, cards, `class="history-cards"`)
	require.Contains(t, cards, "#abc12345")
	require.NotContains(t, cards, `class="history-table"`)
}

func TestRenderEmpty(t *testing.T) {
	out := renderString(t, BuildView(New(5), ViewOptions{}))
	require.Contains(t, out, "No analyses yet")
	require.Contains(t, out, "pager disabled")
	require.Contains(t, out, "Page 1 of 1")
}
