// Package txlist loads pages of the ledger's transaction list. A page load
// is two sequential fetches: ledger info to learn the newest version, then
// the transactions of the window derived from it.
package txlist

import (
	"context"
	"strconv"
	"strings"

	"github.com/cuiweiyuan/explorer/common"
	"github.com/cuiweiyuan/explorer/networks"
	"github.com/cuiweiyuan/explorer/pagination"
	"github.com/cuiweiyuan/explorer/util/reader"
)

const (
	MainLimit    uint64 = 20
	PreviewLimit uint64 = 10
)

// Source is the part of the node API a listing needs.
type Source interface {
	LedgerInfo(ctx context.Context) (*common.LedgerInfo, error)
	Transactions(ctx context.Context, start *uint64, limit uint64) ([]common.Transaction, error)
}

// Page is one rendered listing. It is never modified after Load returns,
// later ledger growth only affects pages loaded afterwards.
type Page struct {
	Network      string                    `json:"network"`
	Ledger       common.LedgerInfo         `json:"ledger"`
	Descriptor   pagination.PageDescriptor `json:"page"`
	Transactions []common.Transaction      `json:"transactions"`
	Items        []pagination.Item         `json:"navigation"`
}

// StartOf returns the window start of page number n as seen from p,
// clamped into the version space.
func (p *Page) StartOf(n uint64) uint64 {
	d := p.Descriptor
	return pagination.NeighborPages(d.Window.Start, d.Window.Limit, int64(d.CurrentPage)-int64(n), d.MaxVersion).Start
}

// Item returns the first navigation item of type t.
func (p *Page) Item(t pagination.ItemType) (pagination.Item, bool) {
	for _, it := range p.Items {
		if it.Type == t {
			return it, true
		}
	}
	return pagination.Item{}, false
}

// MaxVersion extracts the upper bound of the version space from a ledger
// snapshot. A missing snapshot is common.ErrNoLedgerData; a version that is
// absent, zero or not a number is common.ErrNoMaxVersion.
func MaxVersion(snapshot *common.LedgerInfo) (uint64, error) {
	if snapshot == nil {
		return 0, common.ErrNoLedgerData
	}
	v, err := strconv.ParseUint(strings.TrimSpace(snapshot.LedgerVersion), 10, 64)
	if err != nil || v == 0 {
		return 0, common.ErrNoMaxVersion
	}
	return v, nil
}

type Orchestrator struct {
	network string
	source  Source
	limit   uint64
	options pagination.Options
}

func NewOrchestrator(network string, source Source, limit uint64) *Orchestrator {
	if limit == 0 {
		limit = MainLimit
	}
	return &Orchestrator{
		network: network,
		source:  source,
		limit:   limit,
		options: pagination.DefaultOptions,
	}
}

// ForNetwork builds an Orchestrator reading network's node.
func ForNetwork(network networks.Network, limit uint64) *Orchestrator {
	return NewOrchestrator(network.GetName(), reader.NewNetworkReader(network), limit)
}

func (o *Orchestrator) Limit() uint64 {
	return o.limit
}

func (o *Orchestrator) Network() string {
	return o.network
}

func (o *Orchestrator) Source() Source {
	return o.source
}

// Load fetches a fresh ledger snapshot and then the page starting at start,
// or the newest page when start is nil.
func (o *Orchestrator) Load(ctx context.Context, start *uint64) (*Page, error) {
	snapshot, err := o.source.LedgerInfo(ctx)
	if err != nil {
		return nil, err
	}
	return o.LoadAt(ctx, snapshot, start)
}

// LoadAt is Load against a snapshot the caller already holds. A non-nil
// start is passed to the node as is, so an out of range start surfaces as
// the node's error instead of being corrected.
func (o *Orchestrator) LoadAt(ctx context.Context, snapshot *common.LedgerInfo, start *uint64) (*Page, error) {
	maxVersion, err := MaxVersion(snapshot)
	if err != nil {
		return nil, err
	}

	desc := pagination.Describe(maxVersion, o.limit, start)
	s := desc.Window.Start
	txs, err := o.source.Transactions(ctx, &s, o.limit)
	if err != nil {
		return nil, err
	}

	return &Page{
		Network:      o.network,
		Ledger:       *snapshot,
		Descriptor:   desc,
		Transactions: txs,
		Items:        pagination.ItemsWith(o.options, desc.Window.Start, o.limit, maxVersion),
	}, nil
}

// Preview returns the latest PreviewLimit transactions. It needs no ledger
// snapshot because it never paginates.
func (o *Orchestrator) Preview(ctx context.Context) ([]common.Transaction, error) {
	return o.source.Transactions(ctx, nil, PreviewLimit)
}

// ParseStart reads the start query value. Empty means no start.
func ParseStart(raw string) (*uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, common.NewError(common.InvalidInput, "start '%s' is not a version", raw)
	}
	return &v, nil
}
