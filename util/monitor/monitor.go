// Package monitor keeps a periodically refreshed view of a ledger's latest
// version.
package monitor

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cuiweiyuan/explorer/common"
	"github.com/cuiweiyuan/explorer/exception"
	"github.com/cuiweiyuan/explorer/logx"
	"github.com/cuiweiyuan/explorer/monitoring"
)

const DefaultInterval = 10 * time.Second

// LedgerSource is anything that can report ledger info, usually a
// reader.NodeReader.
type LedgerSource interface {
	LedgerInfo(ctx context.Context) (*common.LedgerInfo, error)
}

// LedgerMonitor polls a LedgerSource on a fixed interval between Start and
// Stop. Latest never goes backwards: a poll answered by a node that lags
// behind an earlier answer is ignored.
type LedgerMonitor struct {
	source   LedgerSource
	network  string
	interval time.Duration

	mu            sync.RWMutex
	latest        *common.LedgerInfo
	latestVersion uint64
	lastErr       error

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewLedgerMonitor(network string, source LedgerSource, interval time.Duration) *LedgerMonitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &LedgerMonitor{
		source:   source,
		network:  network,
		interval: interval,
	}
}

// Start polls once right away and then every interval until Stop or until
// ctx is done.
func (lm *LedgerMonitor) Start(ctx context.Context) error {
	lm.runMu.Lock()
	defer lm.runMu.Unlock()
	if lm.cancel != nil {
		return fmt.Errorf("ledger monitor for %s is already running", lm.network)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	lm.cancel = cancel
	lm.done = done

	exception.SafeGo("ledger-monitor-"+lm.network, func() {
		defer close(done)
		lm.periodicCheck(ctx)
	})
	return nil
}

// Stop cancels polling and waits for the polling goroutine to exit. It is a
// no-op on a monitor that is not running.
func (lm *LedgerMonitor) Stop() {
	lm.runMu.Lock()
	cancel, done := lm.cancel, lm.done
	lm.cancel, lm.done = nil, nil
	lm.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (lm *LedgerMonitor) periodicCheck(ctx context.Context) {
	ticker := time.NewTicker(lm.interval)
	defer ticker.Stop()
	lm.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			lm.Poll(ctx)
		}
	}
}

// Poll fetches ledger info once and records it if it is not older than what
// is already held.
func (lm *LedgerMonitor) Poll(ctx context.Context) {
	info, err := lm.source.LedgerInfo(ctx)
	if ctx.Err() != nil {
		return
	}
	monitoring.RecordLedgerPoll(lm.network, err == nil)

	lm.mu.Lock()
	defer lm.mu.Unlock()
	if err != nil {
		lm.lastErr = err
		logx.Warn("MONITOR", "ledger poll on ", lm.network, " failed: ", err)
		return
	}
	lm.lastErr = nil
	if info == nil {
		return
	}

	version, perr := strconv.ParseUint(info.LedgerVersion, 10, 64)
	if perr != nil {
		// keep an unusable snapshot only until a usable one arrives
		if lm.latest == nil {
			lm.latest = info
		}
		return
	}
	if lm.latest != nil && version < lm.latestVersion {
		logx.Debug("MONITOR", fmt.Sprintf("ignoring stale ledger version %d < %d on %s", version, lm.latestVersion, lm.network))
		return
	}
	lm.latest = info
	lm.latestVersion = version
	monitoring.SetLedgerVersion(lm.network, version)
}

// Latest returns a copy of the newest snapshot, false when no poll has
// succeeded yet.
func (lm *LedgerMonitor) Latest() (*common.LedgerInfo, bool) {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	if lm.latest == nil {
		return nil, false
	}
	snapshot := *lm.latest
	return &snapshot, true
}

// LastError is the error of the most recent poll, nil after a success.
func (lm *LedgerMonitor) LastError() error {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return lm.lastErr
}
