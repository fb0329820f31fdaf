package txlist

import (
	"context"
	"fmt"
	"sync"

	"github.com/cuiweiyuan/explorer/common"
	"github.com/cuiweiyuan/explorer/logx"
	"github.com/cuiweiyuan/explorer/pagination"
	"github.com/cuiweiyuan/explorer/util/monitor"
)

// Session is an open listing: the page on display plus a ledger monitor
// polling in the background for as long as the session is open. Polled
// snapshots never touch the page on display; they are picked up by the
// next navigation.
type Session struct {
	orch    *Orchestrator
	monitor *monitor.LedgerMonitor

	mu      sync.Mutex
	current *Page
}

func NewSession(orch *Orchestrator, lm *monitor.LedgerMonitor) *Session {
	if lm == nil {
		lm = monitor.NewLedgerMonitor(orch.Network(), orch.Source(), monitor.DefaultInterval)
	}
	return &Session{orch: orch, monitor: lm}
}

// Open starts polling and loads the page at start, nil meaning the newest.
// Close must be called once the session is done, even when Open fails.
func (s *Session) Open(ctx context.Context, start *uint64) (*Page, error) {
	if err := s.monitor.Start(ctx); err != nil {
		return nil, err
	}
	return s.Navigate(ctx, start)
}

// Close stops polling.
func (s *Session) Close() {
	s.monitor.Stop()
}

// Current returns the page on display, nil before the first successful
// load.
func (s *Session) Current() *Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Navigate loads the page at start. It uses the newest polled snapshot
// when one exists and fetches ledger info itself otherwise. The page on
// display only changes when the load succeeds.
func (s *Session) Navigate(ctx context.Context, start *uint64) (*Page, error) {
	var (
		page *Page
		err  error
	)
	if snapshot, ok := s.monitor.Latest(); ok {
		page, err = s.orch.LoadAt(ctx, snapshot, start)
	} else {
		page, err = s.orch.Load(ctx, start)
	}
	if err != nil {
		logx.Warn("TXLIST", "navigation on ", s.orch.Network(), " failed: ", err)
		return nil, err
	}

	s.mu.Lock()
	s.current = page
	s.mu.Unlock()
	return page, nil
}

// Follow navigates along the current page's navigation item of type t
// (first, previous, next or last). A disabled item is an error.
func (s *Session) Follow(ctx context.Context, t pagination.ItemType) (*Page, error) {
	cur := s.Current()
	if cur == nil {
		return nil, fmt.Errorf("no page loaded")
	}
	it, found := cur.Item(t)
	if !found {
		return nil, common.NewError(common.InvalidInput, "page has no %s control", t)
	}
	if it.Disabled {
		return nil, common.NewError(common.InvalidInput, "%s is not available from page %d", t, cur.Descriptor.CurrentPage)
	}
	start := it.Start
	return s.Navigate(ctx, &start)
}

// GoToPage navigates to page number n as numbered on the current page.
func (s *Session) GoToPage(ctx context.Context, n uint64) (*Page, error) {
	cur := s.Current()
	if cur == nil {
		return nil, fmt.Errorf("no page loaded")
	}
	if n < 1 || n > cur.Descriptor.TotalPages {
		return nil, common.NewError(common.InvalidInput, "page %d is out of range 1..%d", n, cur.Descriptor.TotalPages)
	}
	start := cur.StartOf(n)
	return s.Navigate(ctx, &start)
}
