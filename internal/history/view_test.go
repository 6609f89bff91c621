package history

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"critique-backend/internal/analyses"
)

func TestBuildViewFormatsItems(t *testing.T) {
	score := 7.34
	rec := analyses.Record{
		ID:        "0123456789abcdef",
		CreatedAt: time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC),
		Result: &analyses.Result{
			OverallRating: "8/10 - Clean layout",
			ColorPalette:  []string{"#AABBCC", "not-a-color", "#123"},
			OtherFeedback: strings.Repeat("a", 120),
			UIScore:       &score,
		},
	}
	v := BuildView(New(5).Load([]analyses.Record{rec}), ViewOptions{})

	require.Len(t, v.Items, 1)
	item := v.Items[0]
	require.Equal(t, "01234567", item.ShortID)
	require.Equal(t, "Mar 4, 2026 09:30", item.Date)
	require.Equal(t, "8", item.Score)
	require.Equal(t, "Clean layout", item.RatingText)
	require.Equal(t, []string{"#aabbcc", "#123"}, item.Palette)
	require.Equal(t, strings.Repeat("a", 100)+"...", item.Summary)
	require.Equal(t, "7.3", item.UIScore)
	require.Equal(t, "/history/0123456789abcdef/view", item.ViewURL)
	require.Equal(t, "/history/0123456789abcdef/delete?layout=table&page=1", item.DeleteURL)
}

func TestBuildViewPlaceholders(t *testing.T) {
	v := BuildView(New(5).Load([]analyses.Record{{ID: "a"}}), ViewOptions{})
	item := v.Items[0]
	require.Equal(t, UnknownScore, item.Score)
	require.Equal(t, NotAvailable, item.RatingText)
	require.Equal(t, NoFeedback, item.Summary)
	require.Equal(t, NotAvailable, item.Date)
	require.Empty(t, item.Palette)
}

func TestBuildViewEmptyListDisablesPager(t *testing.T) {
	v := BuildView(New(5), ViewOptions{})
	require.True(t, v.Empty())
	require.True(t, v.PagerDisabled)
	require.Equal(t, 1, v.TotalPages)
	require.False(t, v.HasPrev)
	require.False(t, v.HasNext)
	require.Len(t, v.Pages, 1)
}

func TestBuildViewPagerLinks(t *testing.T) {
	s := New(5).Load(makeRecords(12)).SetLayout(LayoutCards)
	s, _ = s.GoToPage(2)
	v := BuildView(s, ViewOptions{BasePath: "/history/"})

	require.False(t, v.PagerDisabled)
	require.True(t, v.HasPrev)
	require.True(t, v.HasNext)
	require.Equal(t, "/history?layout=cards&page=1", v.PrevURL)
	require.Equal(t, "/history?layout=cards&page=3", v.NextURL)
	require.Equal(t, "/history?layout=table&page=2", v.TableURL)
	require.Len(t, v.Pages, 3)
	require.True(t, v.Pages[1].Current)
	require.Equal(t, []string{"r05", "r06", "r07", "r08", "r09"}, func() []string {
		out := make([]string, 0, len(v.Items))
		for _, it := range v.Items {
			out = append(out, it.ID)
		}
		return out
	}())
}

func TestPageURL(t *testing.T) {
	require.Equal(t, "/history?layout=cards&page=2", ViewOptions{}.PageURL(2, LayoutCards))
}

func TestBuildViewSinglePageDisablesPager(t *testing.T) {
	v := BuildView(New(5).Load(makeRecords(3)), ViewOptions{})
	require.True(t, v.PagerDisabled)
	require.False(t, v.Empty())
}
