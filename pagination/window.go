// Package pagination maps the ledger's unbounded version space onto pages of
// a fixed size.
//
// The node API has no page cursor, only a start version and a limit, so a
// page is addressed by its start version and every page number is derived
// from how far that window sits from the newest version. Page 1 is the
// newest window, the last page holds version 0.
package pagination

import (
	"github.com/holiman/uint256"
)

// Window is the version range [Start, Start+Limit-1].
type Window struct {
	Start uint64 `json:"start"`
	Limit uint64 `json:"limit"`
}

// End returns the last version inside the window.
func (w Window) End() uint64 {
	if w.Limit == 0 {
		return w.Start
	}
	return w.Start + w.Limit - 1
}

// PageDescriptor is everything a listing needs to label the current page.
type PageDescriptor struct {
	CurrentPage uint64 `json:"current_page"`
	TotalPages  uint64 `json:"total_pages"`
	MaxVersion  uint64 `json:"max_version"`
	Window      Window `json:"window"`
}

// MaxStart is the start of the newest page: 1 + maxVersion - limit, never
// below zero.
func MaxStart(maxVersion, limit uint64) uint64 {
	if limit > maxVersion {
		// 1 + maxVersion - limit <= 0
		return 0
	}
	return 1 + maxVersion - limit
}

// PageCount is ceil(maxVersion / limit).
func PageCount(maxVersion, limit uint64) uint64 {
	if limit == 0 {
		return 0
	}
	count := maxVersion / limit
	if maxVersion%limit != 0 {
		count++
	}
	return count
}

// CurrentPage derives the page number of the window starting at start:
//
//	progress = 1 - (start + limit - 1) / maxVersion
//	page     = 1 + floor(progress * PageCount)
//
// computed exactly in integers. The result is clamped to [1, PageCount], so
// a window past the newest version reads as page 1.
func CurrentPage(start, limit, maxVersion uint64) uint64 {
	count := PageCount(maxVersion, limit)
	if maxVersion == 0 || count == 0 {
		return 1
	}

	end := new(uint256.Int).SetUint64(start)
	end.Add(end, uint256.NewInt(limit))
	end.SubUint64(end, 1)

	mv := uint256.NewInt(maxVersion)
	if !end.Lt(mv) {
		return 1
	}

	// floor((maxVersion - end) * count / maxVersion)
	num := new(uint256.Int).Sub(mv, end)
	num.Mul(num, uint256.NewInt(count))
	num.Div(num, mv)

	page := 1 + num.Uint64()
	if page > count {
		return count
	}
	return page
}

// NeighborWindow moves currentStart by delta versions and clamps the result
// into [0, MaxStart]. Page-relative moves must be pre-multiplied by limit;
// NeighborPages does that for you.
func NeighborWindow(currentStart, limit uint64, delta int64, maxVersion uint64) Window {
	var shift *uint256.Int
	backwards := delta < 0
	if backwards {
		// -(delta+1)+1 avoids overflowing on math.MinInt64
		shift = uint256.NewInt(uint64(-(delta + 1)))
		shift.AddUint64(shift, 1)
	} else {
		shift = uint256.NewInt(uint64(delta))
	}
	return Window{
		Start: clampShift(currentStart, shift, backwards, MaxStart(maxVersion, limit)),
		Limit: limit,
	}
}

// NeighborPages moves currentStart by pages whole pages toward the newest
// version (positive) or the oldest (negative).
func NeighborPages(currentStart, limit uint64, pages int64, maxVersion uint64) Window {
	backwards := pages < 0
	var n *uint256.Int
	if backwards {
		n = uint256.NewInt(uint64(-(pages + 1)))
		n.AddUint64(n, 1)
	} else {
		n = uint256.NewInt(uint64(pages))
	}
	n.Mul(n, uint256.NewInt(limit))
	return Window{
		Start: clampShift(currentStart, n, backwards, MaxStart(maxVersion, limit)),
		Limit: limit,
	}
}

func clampShift(start uint64, amount *uint256.Int, backwards bool, maxStart uint64) uint64 {
	s := uint256.NewInt(start)
	if backwards {
		if !amount.Lt(s) {
			return 0
		}
		s.Sub(s, amount)
	} else {
		s.Add(s, amount)
	}
	if s.GtUint64(maxStart) {
		return maxStart
	}
	return s.Uint64()
}

// Describe builds the PageDescriptor for a listing. A nil start selects the
// newest window. A non-nil start is used verbatim, even when it lies outside
// the version space: the data source is expected to reject it.
func Describe(maxVersion, limit uint64, start *uint64) PageDescriptor {
	s := MaxStart(maxVersion, limit)
	if start != nil {
		s = *start
	}
	total := PageCount(maxVersion, limit)
	if total == 0 {
		total = 1
	}
	return PageDescriptor{
		CurrentPage: CurrentPage(s, limit, maxVersion),
		TotalPages:  total,
		MaxVersion:  maxVersion,
		Window:      Window{Start: s, Limit: limit},
	}
}
