package monitor

import (
	"context"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuiweiyuan/explorer/common"
	"github.com/cuiweiyuan/explorer/logx"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type scriptedSource struct {
	mu      sync.Mutex
	answers []*common.LedgerInfo
	errs    []error
	calls   int
}

func (s *scriptedSource) LedgerInfo(ctx context.Context) (*common.LedgerInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i >= len(s.answers) {
		i = len(s.answers) - 1
	}
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return s.answers[i], err
}

func (s *scriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func ledger(v string) *common.LedgerInfo {
	return &common.LedgerInfo{LedgerVersion: v}
}

func TestPollIsMonotonic(t *testing.T) {
	src := &scriptedSource{answers: []*common.LedgerInfo{ledger("100"), ledger("90"), ledger("120")}}
	lm := NewLedgerMonitor("test", src, time.Hour)

	_, ok := lm.Latest()
	assert.False(t, ok)

	lm.Poll(context.Background())
	got, ok := lm.Latest()
	require.True(t, ok)
	assert.Equal(t, "100", got.LedgerVersion)

	lm.Poll(context.Background())
	got, _ = lm.Latest()
	assert.Equal(t, "100", got.LedgerVersion)

	lm.Poll(context.Background())
	got, _ = lm.Latest()
	assert.Equal(t, "120", got.LedgerVersion)
}

func TestPollErrorKeepsSnapshot(t *testing.T) {
	src := &scriptedSource{
		answers: []*common.LedgerInfo{ledger("100"), nil},
		errs:    []error{nil, common.NewError(common.Transport, "down")},
	}
	lm := NewLedgerMonitor("test", src, time.Hour)
	lm.Poll(context.Background())
	lm.Poll(context.Background())

	got, ok := lm.Latest()
	require.True(t, ok)
	assert.Equal(t, "100", got.LedgerVersion)
	assert.ErrorIs(t, lm.LastError(), common.ErrTransport)
}

func TestUnparsableSnapshotReplacedByUsableOne(t *testing.T) {
	src := &scriptedSource{answers: []*common.LedgerInfo{ledger(""), ledger("5")}}
	lm := NewLedgerMonitor("test", src, time.Hour)
	lm.Poll(context.Background())
	got, ok := lm.Latest()
	require.True(t, ok)
	assert.Equal(t, "", got.LedgerVersion)

	lm.Poll(context.Background())
	got, _ = lm.Latest()
	assert.Equal(t, "5", got.LedgerVersion)
}

func TestStartStop(t *testing.T) {
	src := &scriptedSource{answers: []*common.LedgerInfo{ledger("1")}}
	lm := NewLedgerMonitor("test", src, 5*time.Millisecond)

	require.NoError(t, lm.Start(context.Background()))
	assert.Error(t, lm.Start(context.Background()))

	assert.Eventually(t, func() bool { return src.Calls() >= 3 }, time.Second, time.Millisecond)
	lm.Stop()

	after := src.Calls()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, src.Calls())

	lm.Stop()
	require.NoError(t, lm.Start(context.Background()))
	lm.Stop()
}
