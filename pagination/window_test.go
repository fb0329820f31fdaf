package pagination_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cuiweiyuan/explorer/pagination"
)

func TestMaxStartAndPageCount(t *testing.T) {
	assert.Equal(t, uint64(981), pagination.MaxStart(1000, 20))
	assert.Equal(t, uint64(50), pagination.PageCount(1000, 20))
	assert.Equal(t, uint64(51), pagination.PageCount(1001, 20))
	assert.Equal(t, uint64(0), pagination.MaxStart(5, 20))
	assert.Equal(t, uint64(0), pagination.MaxStart(19, 20))
	assert.Equal(t, uint64(1), pagination.MaxStart(20, 20))
	assert.Equal(t, uint64(0), pagination.PageCount(1000, 0))
}

func TestCurrentPage(t *testing.T) {
	assert.Equal(t, uint64(1), pagination.CurrentPage(981, 20, 1000))
	assert.Equal(t, uint64(50), pagination.CurrentPage(0, 20, 1000))
	assert.Equal(t, uint64(2), pagination.CurrentPage(961, 20, 1000))
	assert.Equal(t, uint64(50), pagination.CurrentPage(1, 20, 1000))
}

func TestCurrentPageClampsOutOfRangeStarts(t *testing.T) {
	assert.Equal(t, uint64(1), pagination.CurrentPage(5000, 20, 1000))
	assert.Equal(t, uint64(1), pagination.CurrentPage(math.MaxUint64, 20, 1000))
	assert.Equal(t, uint64(1), pagination.CurrentPage(0, 20, 0))
}

func TestCurrentPageLargeLedger(t *testing.T) {
	const maxVersion = uint64(3_000_000_000_000)
	start := pagination.MaxStart(maxVersion, 20)
	assert.Equal(t, uint64(1), pagination.CurrentPage(start, 20, maxVersion))
	assert.Equal(t, pagination.PageCount(maxVersion, 20), pagination.CurrentPage(0, 20, maxVersion))
}

func TestNeighborWindowAlwaysClamps(t *testing.T) {
	deltas := []int64{math.MinInt64, -1_000_000, -981, -20, -1, 0, 1, 20, 1_000_000, math.MaxInt64}
	starts := []uint64{0, 1, 500, 981, 5000}
	for _, s := range starts {
		for _, d := range deltas {
			w := pagination.NeighborWindow(s, 20, d, 1000)
			assert.LessOrEqual(t, w.Start, uint64(981), "start %d delta %d", s, d)
			assert.Equal(t, uint64(20), w.Limit)
		}
	}
	assert.Equal(t, uint64(961), pagination.NeighborWindow(981, 20, -20, 1000).Start)
	assert.Equal(t, uint64(0), pagination.NeighborWindow(10, 20, -20, 1000).Start)
	assert.Equal(t, uint64(981), pagination.NeighborWindow(975, 20, 20, 1000).Start)
}

func TestNeighborPages(t *testing.T) {
	assert.Equal(t, uint64(941), pagination.NeighborPages(981, 20, -2, 1000).Start)
	assert.Equal(t, uint64(981), pagination.NeighborPages(0, 20, 1000, 1000).Start)
	assert.Equal(t, uint64(0), pagination.NeighborPages(981, 20, math.MinInt64, 1000).Start)
}

func TestDescribeDefaultsToNewestWindow(t *testing.T) {
	d := pagination.Describe(1_000_000, 20, nil)
	assert.Equal(t, uint64(999_981), d.Window.Start)
	assert.Equal(t, uint64(1_000_000), d.Window.End())
	assert.Equal(t, uint64(1), d.CurrentPage)
	assert.Equal(t, uint64(50_000), d.TotalPages)
}

func TestDescribeKeepsExplicitStartVerbatim(t *testing.T) {
	start := uint64(2_000_000)
	d := pagination.Describe(1_000_000, 20, &start)
	assert.Equal(t, start, d.Window.Start)
	assert.Equal(t, uint64(1), d.CurrentPage)

	start = 0
	d = pagination.Describe(1000, 20, &start)
	assert.Equal(t, uint64(0), d.Window.Start)
	assert.Equal(t, uint64(50), d.CurrentPage)
}
