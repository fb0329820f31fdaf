// Package resolver decides whether an address is an account, an object or
// neither, from two independent existence probes.
package resolver

import (
	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/common"
)

type EntityKind string

const (
	Account    EntityKind = "account"
	Object     EntityKind = "object"
	Unresolved EntityKind = "unresolved"
	Invalid    EntityKind = "invalid"
)

// ViewMode is how the caller is looking at the address, i.e. which route it
// came in through.
type ViewMode string

const (
	AccountView ViewMode = "account"
	ObjectView  ViewMode = "object"
)

func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(s) {
	case AccountView, ObjectView:
		return ViewMode(s), true
	}
	return "", false
}

// Path is the canonical route of addr in this view.
func (v ViewMode) Path(addr address.Address) string {
	return "/" + string(v) + "/" + addr.String()
}

// ProbeKind names the entity type a probe checks for.
type ProbeKind string

const (
	AccountProbe ProbeKind = "account"
	ObjectProbe  ProbeKind = "object"
)

// Probe is the state of one existence check. Loading is true until the
// check settles; after that exactly one of Found or Err describes it, Err
// being a not-found error when the entity is absent.
type Probe struct {
	Kind    ProbeKind
	Found   bool
	Err     error
	Loading bool
}

// NotFound reports whether the probe settled with a not-found answer.
func (p Probe) NotFound() bool {
	return !p.Loading && !p.Found && common.IsNotFound(p.Err)
}

// ProbeResult is what a probe goroutine reports when it settles.
type ProbeResult struct {
	Cycle     uint64
	Kind      ProbeKind
	Account   *common.AccountInfo
	Resources []common.Resource
	Err       error
}

// Resolution is the settled outcome of one lookup. When Err is set the
// caller shows only the error.
type Resolution struct {
	Input   string          `json:"input"`
	Address address.Address `json:"address"`
	Mode    ViewMode        `json:"mode"`
	Kind    EntityKind      `json:"kind"`
	Err     error           `json:"-"`
	// Deleted is set when the address once held an object but its
	// ObjectCore resource is gone. It is computed for every kind; only
	// objects should present it.
	Deleted bool `json:"deleted"`
	// Redirect is the path the caller should replace the current one with,
	// empty when no redirect applies.
	Redirect  string              `json:"redirect,omitempty"`
	Account   *common.AccountInfo `json:"account,omitempty"`
	Resources []common.Resource   `json:"resources,omitempty"`
}

// IsDeleted reports whether a successful object probe that returned
// resources describes a deleted object.
func IsDeleted(objectFound bool, resources []common.Resource) bool {
	return objectFound && !common.HasResource(resources, common.ObjectCoreResource)
}
