package resolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/common"
	"github.com/cuiweiyuan/explorer/exception"
	"github.com/cuiweiyuan/explorer/logx"
	"github.com/cuiweiyuan/explorer/monitoring"
	"github.com/cuiweiyuan/explorer/networks"
	"github.com/cuiweiyuan/explorer/util/reader"
)

// Source answers the two existence probes. reader.NodeReader implements it.
type Source interface {
	Account(ctx context.Context, addr address.Address) (*common.AccountInfo, error)
	Resources(ctx context.Context, addr address.Address) ([]common.Resource, error)
}

// SourceFor returns the Source serving network.
type SourceFor func(network networks.Network) Source

func NodeSource(network networks.Network) Source {
	return reader.NewNetworkReader(network)
}

type redirectKey struct {
	network string
	addr    address.Address
	mode    ViewMode
}

// Resolver runs lookups for one viewer. Starting a lookup supersedes the one
// before it: the earlier Resolve call returns common.ErrSuperseded and its
// probe results are dropped. Use one Resolver per independent viewer.
type Resolver struct {
	sourceFor       SourceFor
	maxMissingChars int

	mu         sync.Mutex
	cycle      uint64
	supersede  chan struct{}
	redirected map[redirectKey]bool
}

func NewResolver(sourceFor SourceFor, maxMissingChars int) *Resolver {
	if sourceFor == nil {
		sourceFor = NodeSource
	}
	return &Resolver{
		sourceFor:       sourceFor,
		maxMissingChars: maxMissingChars,
		redirected:      map[redirectKey]bool{},
	}
}

// begin starts a new cycle and signals the previous one, if still running,
// that it is no longer current.
func (r *Resolver) begin() (uint64, <-chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.supersede != nil {
		close(r.supersede)
	}
	r.cycle++
	r.supersede = make(chan struct{})
	return r.cycle, r.supersede
}

func (r *Resolver) current(cycle uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycle == cycle
}

// claimRedirect reports whether the redirect for key has not fired before,
// and marks it fired.
func (r *Resolver) claimRedirect(key redirectKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.redirected[key] {
		return false
	}
	r.redirected[key] = true
	return true
}

// Resolve normalizes raw and, if it is a valid address, probes network for
// an account and an object at it. The returned Resolution carries the
// consolidated error, if any; the error return is only for a lookup that
// was superseded or whose ctx ended first.
func (r *Resolver) Resolve(ctx context.Context, network networks.Network, raw string, mode ViewMode) (*Resolution, error) {
	cycle, superseded := r.begin()

	addr, err := address.Normalize(raw, r.maxMissingChars)
	if err != nil {
		monitoring.RecordResolution(string(Invalid))
		return InvalidResolution(raw, mode, err), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, common.WrapTransport(err, "lookup of %s interrupted", addr.Short())
	}

	results := make(chan ProbeResult, 2)
	r.dispatch(ctx, cycle, r.sourceFor(network), addr, results)

	m := NewMachine(raw, addr, mode)
	for m.Loading() {
		select {
		case <-superseded:
			return nil, common.ErrSuperseded
		case <-ctx.Done():
			return nil, common.WrapTransport(ctx.Err(), "lookup of %s interrupted", addr.Short())
		case res := <-results:
			if res.Cycle != cycle || !r.current(cycle) {
				monitoring.RecordProbe(string(res.Kind), monitoring.ProbeStale)
				return nil, common.ErrSuperseded
			}
			recordProbe(res)
			m.Apply(res)
		}
	}

	res, _ := m.Resolution()
	monitoring.RecordResolution(string(res.Kind))
	if res.Redirect != "" {
		key := redirectKey{network: network.GetName(), addr: addr, mode: mode}
		if r.claimRedirect(key) {
			monitoring.IncreaseRedirectCount()
			logx.Info("RESOLVER", fmt.Sprintf("%s on %s is object only, redirecting to %s", addr.String(), network.GetName(), res.Redirect))
		} else {
			res.Redirect = ""
		}
	}
	return res, nil
}

// dispatch starts both probes. results must have room for two values so a
// probe never blocks on an abandoned cycle.
func (r *Resolver) dispatch(ctx context.Context, cycle uint64, source Source, addr address.Address, results chan<- ProbeResult) {
	exception.SafeGo("account-probe", func() {
		res := ProbeResult{Cycle: cycle, Kind: AccountProbe, Err: errAborted}
		defer func() { results <- res }()
		res.Account, res.Err = source.Account(ctx, addr)
	})
	exception.SafeGo("object-probe", func() {
		res := ProbeResult{Cycle: cycle, Kind: ObjectProbe, Err: errAborted}
		defer func() { results <- res }()
		res.Resources, res.Err = source.Resources(ctx, addr)
	})
}

var errAborted = common.NewError(common.Transport, "probe aborted")

func recordProbe(res ProbeResult) {
	switch {
	case res.Err == nil:
		monitoring.RecordProbe(string(res.Kind), monitoring.ProbeFound)
	case common.IsNotFound(res.Err):
		monitoring.RecordProbe(string(res.Kind), monitoring.ProbeNotFound)
	default:
		monitoring.RecordProbe(string(res.Kind), monitoring.ProbeFailed)
	}
}
