package history

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"critique-backend/internal/analyses"
)

const (
	NotAvailable = "Not available"
	NoFeedback   = "No feedback available"

	defaultDateLayout = "Jan 2, 2006 15:04"
	defaultSummaryLen = 100
	shortIDLen        = 8
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ViewOptions controls formatting and link targets.
type ViewOptions struct {
	BasePath   string
	Location   *time.Location
	DateLayout string
	SummaryLen int
}

// Item is one formatted record.
type Item struct {
	ID         string   `json:"id"`
	ShortID    string   `json:"shortId"`
	Date       string   `json:"date"`
	Score      string   `json:"score"`
	RatingText string   `json:"ratingText"`
	Summary    string   `json:"summary"`
	Palette    []string `json:"palette"`
	UIScore    string   `json:"uiScore,omitempty"`
	ViewURL    string   `json:"viewUrl"`
	DeleteURL  string   `json:"deleteUrl"`
}

// PageLink is one entry in the pager.
type PageLink struct {
	Number  int    `json:"number"`
	URL     string `json:"url"`
	Current bool   `json:"current"`
}

// View is everything a layout needs to paint one page.
type View struct {
	Layout        Layout     `json:"layout"`
	Items         []Item     `json:"items"`
	Total         int        `json:"total"`
	Page          int        `json:"page"`
	PageSize      int        `json:"pageSize"`
	TotalPages    int        `json:"totalPages"`
	HasPrev       bool       `json:"hasPrev"`
	HasNext       bool       `json:"hasNext"`
	PrevURL       string     `json:"prevUrl,omitempty"`
	NextURL       string     `json:"nextUrl,omitempty"`
	Pages         []PageLink `json:"pages"`
	PagerDisabled bool       `json:"pagerDisabled"`
	TableURL      string     `json:"tableUrl"`
	CardsURL      string     `json:"cardsUrl"`
}

// Empty reports whether there is nothing to show.
func (v View) Empty() bool {
	return v.Total == 0
}

// BuildView computes the visible slice and its formatted fields.
func BuildView(s State, opts ViewOptions) View {
	opts = opts.withDefaults()
	total := s.TotalPages()
	layout := s.Layout
	if _, ok := ParseLayout(string(layout)); !ok {
		layout = LayoutTable
	}

	visible := s.Visible()
	items := make([]Item, 0, len(visible))
	for _, rec := range visible {
		items = append(items, buildItem(rec, opts, s.Page, layout))
	}

	pages := make([]PageLink, 0, total)
	for n := 1; n <= total; n++ {
		pages = append(pages, PageLink{Number: n, URL: opts.pageURL(n, layout), Current: n == s.Page})
	}

	v := View{
		Layout:        layout,
		Items:         items,
		Total:         len(s.Records),
		Page:          s.Page,
		PageSize:      s.size(),
		TotalPages:    total,
		HasPrev:       s.Page > 1,
		HasNext:       s.Page < total,
		Pages:         pages,
		PagerDisabled: len(s.Records) == 0 || total == 1,
		TableURL:      opts.pageURL(s.Page, LayoutTable),
		CardsURL:      opts.pageURL(s.Page, LayoutCards),
	}
	if v.HasPrev {
		v.PrevURL = opts.pageURL(s.Page-1, layout)
	}
	if v.HasNext {
		v.NextURL = opts.pageURL(s.Page+1, layout)
	}
	return v
}

func buildItem(rec analyses.Record, opts ViewOptions, page int, layout Layout) Item {
	item := Item{
		ID:         rec.ID,
		ShortID:    shortID(rec.ID),
		Score:      UnknownScore,
		RatingText: NotAvailable,
		Summary:    NoFeedback,
		Palette:    []string{},
		ViewURL:    opts.recordURL(rec.ID, "view"),
		DeleteURL:  opts.recordURL(rec.ID, "delete") + "?" + pageQuery(page, layout),
	}
	if !rec.CreatedAt.IsZero() {
		item.Date = rec.CreatedAt.In(opts.Location).Format(opts.DateLayout)
	} else {
		item.Date = NotAvailable
	}

	res := rec.Result
	if res == nil {
		return item
	}
	if strings.TrimSpace(res.OverallRating) != "" {
		score, rest := ParseRating(res.OverallRating)
		item.Score = score
		if rest != "" {
			item.RatingText = rest
		}
	}
	if fb := strings.TrimSpace(res.OtherFeedback); fb != "" {
		item.Summary = truncate(fb, opts.SummaryLen)
	}
	for _, c := range res.ColorPalette {
		if hexColor.MatchString(strings.TrimSpace(c)) {
			item.Palette = append(item.Palette, strings.ToLower(strings.TrimSpace(c)))
		}
	}
	if res.UIScore != nil {
		item.UIScore = fmt.Sprintf("%.1f", *res.UIScore)
	}
	return item
}

func (o ViewOptions) withDefaults() ViewOptions {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.DateLayout == "" {
		o.DateLayout = defaultDateLayout
	}
	if o.SummaryLen < 1 {
		o.SummaryLen = defaultSummaryLen
	}
	o.BasePath = strings.TrimSuffix(o.BasePath, "/")
	if o.BasePath == "" {
		o.BasePath = "/history"
	}
	return o
}

// PageURL links to page in layout under BasePath.
func (o ViewOptions) PageURL(page int, layout Layout) string {
	return o.withDefaults().pageURL(page, layout)
}

func (o ViewOptions) pageURL(page int, layout Layout) string {
	return o.BasePath + "?" + pageQuery(page, layout)
}

func pageQuery(page int, layout Layout) string {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("layout", string(layout))
	return q.Encode()
}

func (o ViewOptions) recordURL(id, action string) string {
	return o.BasePath + "/" + url.PathEscape(id) + "/" + action
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}
