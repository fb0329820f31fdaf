package resolver

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/common"
	"github.com/cuiweiyuan/explorer/logx"
	"github.com/cuiweiyuan/explorer/networks"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type answer struct {
	resources []common.Resource
	err       error
}

type fakeSource struct {
	mu        sync.Mutex
	accounts  map[string]error
	resources map[string]answer
	gates     map[string]chan struct{}
	panics    bool
	calls     int32
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		accounts:  map[string]error{},
		resources: map[string]answer{},
		gates:     map[string]chan struct{}{},
	}
}

func (f *fakeSource) wait(ctx context.Context, addr address.Address) {
	f.mu.Lock()
	gate := f.gates[addr.String()]
	f.mu.Unlock()
	if gate == nil {
		return
	}
	select {
	case <-gate:
	case <-ctx.Done():
	}
}

func (f *fakeSource) Account(ctx context.Context, addr address.Address) (*common.AccountInfo, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.panics {
		panic("node client blew up")
	}
	f.wait(ctx, addr)
	f.mu.Lock()
	err, known := f.accounts[addr.String()]
	f.mu.Unlock()
	if !known {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return &common.AccountInfo{SequenceNumber: "0"}, nil
}

func (f *fakeSource) Resources(ctx context.Context, addr address.Address) ([]common.Resource, error) {
	atomic.AddInt32(&f.calls, 1)
	f.wait(ctx, addr)
	f.mu.Lock()
	a, known := f.resources[addr.String()]
	f.mu.Unlock()
	if !known {
		return nil, notFound
	}
	return a.resources, a.err
}

func (f *fakeSource) Calls() int32 {
	return atomic.LoadInt32(&f.calls)
}

func newTestResolver(src *fakeSource) *Resolver {
	return NewResolver(func(networks.Network) Source { return src }, address.DefaultMaxMissingChars)
}

func TestResolveAccount(t *testing.T) {
	src := newFakeSource()
	src.accounts[testAddr.String()] = nil
	src.resources[testAddr.String()] = answer{resources: []common.Resource{{Type: "0x1::account::Account"}}}

	res, err := newTestResolver(src).Resolve(context.Background(), networks.Local, "0xA11CE", AccountView)
	require.NoError(t, err)
	assert.Equal(t, Account, res.Kind)
	assert.Equal(t, testAddr, res.Address)
	assert.Equal(t, "0xA11CE", res.Input)
	assert.NoError(t, res.Err)
	assert.Empty(t, res.Redirect)
}

func TestRedirectFiresOncePerAddressAndMode(t *testing.T) {
	src := newFakeSource()
	src.resources[testAddr.String()] = answer{resources: liveObject}
	r := newTestResolver(src)

	first, err := r.Resolve(context.Background(), networks.Local, "0xa11ce", AccountView)
	require.NoError(t, err)
	assert.Equal(t, Object, first.Kind)
	assert.Equal(t, "/object/"+testAddr.String(), first.Redirect)

	second, err := r.Resolve(context.Background(), networks.Local, testAddr.String(), AccountView)
	require.NoError(t, err)
	assert.Equal(t, Object, second.Kind)
	assert.Empty(t, second.Redirect)

	objectView, err := r.Resolve(context.Background(), networks.Local, "0xa11ce", ObjectView)
	require.NoError(t, err)
	assert.Equal(t, Object, objectView.Kind)
	assert.Empty(t, objectView.Redirect)
}

func TestRedirectTrackedPerNetwork(t *testing.T) {
	src := newFakeSource()
	src.resources[testAddr.String()] = answer{resources: liveObject}
	r := newTestResolver(src)

	a, _ := r.Resolve(context.Background(), networks.Local, "0xa11ce", AccountView)
	b, _ := r.Resolve(context.Background(), networks.Testnet, "0xa11ce", AccountView)
	assert.NotEmpty(t, a.Redirect)
	assert.NotEmpty(t, b.Redirect)
}

func TestInvalidInputSkipsProbes(t *testing.T) {
	src := newFakeSource()
	res, err := newTestResolver(src).Resolve(context.Background(), networks.Local, "0xnothex", AccountView)
	require.NoError(t, err)
	assert.Equal(t, Invalid, res.Kind)
	assert.ErrorIs(t, res.Err, common.ErrInvalidAddress)
	assert.Equal(t, int32(0), src.Calls())
}

func TestToleranceIsConfigurable(t *testing.T) {
	src := newFakeSource()
	r := NewResolver(func(networks.Network) Source { return src }, 0)
	res, err := r.Resolve(context.Background(), networks.Local, "0x1", AccountView)
	require.NoError(t, err)
	assert.Equal(t, Invalid, res.Kind)
}

func TestBothMissingIsUnresolved(t *testing.T) {
	src := newFakeSource()
	res, err := newTestResolver(src).Resolve(context.Background(), networks.Local, "0xa11ce", AccountView)
	require.NoError(t, err)
	assert.Equal(t, Unresolved, res.Kind)
	assert.True(t, common.IsNotFound(res.Err))
	assert.Nil(t, Tabs(res.Kind, true))
}

func TestPanickingProbeSettlesAsTransportError(t *testing.T) {
	src := newFakeSource()
	src.panics = true
	src.resources[testAddr.String()] = answer{resources: liveObject}

	res, err := newTestResolver(src).Resolve(context.Background(), networks.Local, "0xa11ce", AccountView)
	require.NoError(t, err)
	assert.Equal(t, Unresolved, res.Kind)
	assert.ErrorIs(t, res.Err, common.ErrTransport)
	assert.Empty(t, res.Redirect)
}

func TestNewerLookupSupersedesOlder(t *testing.T) {
	slow := address.MustNormalize("0x5107")
	src := newFakeSource()
	gate := make(chan struct{})
	src.gates[slow.String()] = gate
	src.resources[slow.String()] = answer{resources: liveObject}
	src.accounts[testAddr.String()] = nil
	r := newTestResolver(src)

	type outcome struct {
		res *Resolution
		err error
	}
	older := make(chan outcome, 1)
	go func() {
		res, err := r.Resolve(context.Background(), networks.Local, slow.String(), AccountView)
		older <- outcome{res, err}
	}()

	assert.Eventually(t, func() bool { return src.Calls() >= 2 }, time.Second, time.Millisecond)

	newer, err := r.Resolve(context.Background(), networks.Local, "0xa11ce", AccountView)
	require.NoError(t, err)
	assert.Equal(t, Account, newer.Kind)

	select {
	case o := <-older:
		assert.ErrorIs(t, o.err, common.ErrSuperseded)
		assert.Nil(t, o.res)
	case <-time.After(time.Second):
		t.Fatal("superseded lookup did not return")
	}

	// the old probes settling later must not leak into anything
	close(gate)
	again, err := r.Resolve(context.Background(), networks.Local, "0xa11ce", AccountView)
	require.NoError(t, err)
	assert.Equal(t, Account, again.Kind)
}

func TestCancelledContext(t *testing.T) {
	src := newFakeSource()
	src.gates[testAddr.String()] = make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestResolver(src).Resolve(ctx, networks.Local, "0xa11ce", AccountView)
	require.Error(t, err)
}

func TestSourceReceivesNetwork(t *testing.T) {
	src := newFakeSource()
	var got string
	r := NewResolver(func(n networks.Network) Source {
		got = n.GetName()
		return src
	}, address.DefaultMaxMissingChars)

	_, err := r.Resolve(context.Background(), networks.Testnet, "0x1", ObjectView)
	require.NoError(t, err)
	assert.Equal(t, "testnet", got)
}
