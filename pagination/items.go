package pagination

import (
	"fmt"

	"github.com/cuiweiyuan/explorer/jsonx"
)

type ItemType string

const (
	First         ItemType = "first"
	Previous      ItemType = "previous"
	Page          ItemType = "page"
	StartEllipsis ItemType = "start-ellipsis"
	EndEllipsis   ItemType = "end-ellipsis"
	Next          ItemType = "next"
	Last          ItemType = "last"
)

// ListingPath is the route every generated link points at.
const ListingPath = "/transactions"

// Options shape the navigation bar. SiblingCount pages are shown on each
// side of the current one, BoundaryCount pages are always shown at each end.
type Options struct {
	SiblingCount  int64
	BoundaryCount int64
}

var DefaultOptions = Options{SiblingCount: 4, BoundaryCount: 0}

// Item is one control of the navigation bar. Ellipses carry no link.
type Item struct {
	Type     ItemType `json:"type"`
	Page     uint64   `json:"page,omitempty"`
	Start    uint64   `json:"start"`
	Selected bool     `json:"selected,omitempty"`
	Disabled bool     `json:"disabled,omitempty"`
	Rel      string   `json:"rel,omitempty"`
	Href     string   `json:"href,omitempty"`
}

func (i Item) IsEllipsis() bool {
	return i.Type == StartEllipsis || i.Type == EndEllipsis
}

// MarshalJSON leaves start out for ellipses. Start 0 is a real link target,
// so omitempty can't tell the two apart.
func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	out := struct {
		plain
		Start *uint64 `json:"start,omitempty"`
	}{plain: plain(i)}
	if !i.IsEllipsis() {
		start := i.Start
		out.Start = &start
	}
	return jsonx.Marshal(out)
}

// LinkFor returns the listing href for a window start.
func LinkFor(start uint64) string {
	return fmt.Sprintf("%s?start=%d", ListingPath, start)
}

// Items lays out the navigation bar for the window starting at start with
// DefaultOptions.
func Items(start, limit, maxVersion uint64) []Item {
	return ItemsWith(DefaultOptions, start, limit, maxVersion)
}

// ItemsWith lays out first, previous, the page numbers around the current
// page (with ellipses where pages are skipped), next and last. Each linked
// item's start is recomputed from the current start and clamped into
// [0, MaxStart], so a stale or out-of-range start still yields valid links.
func ItemsWith(opts Options, start, limit, maxVersion uint64) []Item {
	count := int64(PageCount(maxVersion, limit))
	if count < 1 {
		count = 1
	}
	current := CurrentPage(start, limit, maxVersion)
	page := int64(current)
	boundary := opts.BoundaryCount
	siblings := opts.SiblingCount

	startPages := pageRange(1, min(boundary, count))
	endPages := pageRange(max(count-boundary+1, boundary+1), count)

	siblingsStart := max(min(page-siblings, count-boundary-siblings*2-1), boundary+2)
	endLimit := count - 1
	if len(endPages) > 0 {
		endLimit = endPages[0] - 2
	}
	siblingsEnd := min(max(page+siblings, boundary+siblings*2+2), endLimit)

	var layout []any
	layout = append(layout, First, Previous)
	for _, p := range startPages {
		layout = append(layout, p)
	}
	if siblingsStart > boundary+2 {
		layout = append(layout, StartEllipsis)
	} else if boundary+1 < count-boundary {
		layout = append(layout, boundary+1)
	}
	for _, p := range pageRange(siblingsStart, siblingsEnd) {
		layout = append(layout, p)
	}
	if siblingsEnd < count-boundary-1 {
		layout = append(layout, EndEllipsis)
	} else if count-boundary > boundary {
		layout = append(layout, count-boundary)
	}
	for _, p := range endPages {
		layout = append(layout, p)
	}
	layout = append(layout, Next, Last)

	items := make([]Item, 0, len(layout))
	for _, entry := range layout {
		var item Item
		switch v := entry.(type) {
		case int64:
			item = Item{Type: Page, Page: uint64(v), Selected: v == page}
		case ItemType:
			item = Item{Type: v}
			switch v {
			case First:
				item.Page = 1
				item.Disabled = page <= 1
			case Previous:
				item.Page = uint64(page - 1)
				item.Disabled = page <= 1
				item.Rel = "prev"
			case Next:
				item.Page = uint64(page + 1)
				item.Disabled = page >= count
				item.Rel = "next"
			case Last:
				item.Page = uint64(count)
				item.Disabled = page >= count
			}
		}
		if !item.IsEllipsis() {
			// pages grow toward older versions, so moving to a higher page
			// number moves the start down
			item.Start = NeighborPages(start, limit, page-int64(item.Page), maxVersion).Start
			item.Href = LinkFor(item.Start)
		}
		items = append(items, item)
	}
	return items
}

func pageRange(from, to int64) []int64 {
	if to < from {
		return nil
	}
	result := make([]int64, 0, to-from+1)
	for p := from; p <= to; p++ {
		result = append(result, p)
	}
	return result
}
