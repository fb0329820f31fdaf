package resolver

import (
	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/common"
)

// Phase is where a Machine is in its resolution cycle.
type Phase int

const (
	BothPending Phase = iota
	AccountSettled
	ObjectSettled
	Resolved
)

func (p Phase) String() string {
	switch p {
	case BothPending:
		return "both-pending"
	case AccountSettled:
		return "account-settled"
	case ObjectSettled:
		return "object-settled"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// Machine folds the two probe results of one cycle into a Resolution. It
// is not safe for concurrent use; one loop owns it.
//
//	BothPending --account--> AccountSettled --object--> Resolved
//	BothPending --object---> ObjectSettled --account--> Resolved
//
// The Resolution, including any redirect, only exists once Resolved is
// reached.
type Machine struct {
	input string
	addr  address.Address
	mode  ViewMode
	phase Phase

	account   Probe
	object    Probe
	info      *common.AccountInfo
	resources []common.Resource

	resolution *Resolution
}

func NewMachine(input string, addr address.Address, mode ViewMode) *Machine {
	return &Machine{
		input:   input,
		addr:    addr,
		mode:    mode,
		phase:   BothPending,
		account: Probe{Kind: AccountProbe, Loading: true},
		object:  Probe{Kind: ObjectProbe, Loading: true},
	}
}

func (m *Machine) Phase() Phase {
	return m.phase
}

// Loading is true while either probe is outstanding.
func (m *Machine) Loading() bool {
	return m.phase != Resolved
}

func (m *Machine) AccountProbe() Probe {
	return m.account
}

func (m *Machine) ObjectProbe() Probe {
	return m.object
}

// Apply records a settled probe and reports whether this result moved the
// machine into Resolved. A second result for an already settled probe and
// any result after Resolved are ignored.
func (m *Machine) Apply(r ProbeResult) bool {
	switch {
	case r.Kind == AccountProbe && m.account.Loading:
		m.account = settle(AccountProbe, r.Err)
		m.info = r.Account
	case r.Kind == ObjectProbe && m.object.Loading:
		m.object = settle(ObjectProbe, r.Err)
		m.resources = r.Resources
	default:
		return false
	}

	switch {
	case !m.account.Loading && !m.object.Loading:
		m.phase = Resolved
		m.resolution = m.resolve()
		return true
	case !m.account.Loading:
		m.phase = AccountSettled
	default:
		m.phase = ObjectSettled
	}
	return false
}

func settle(kind ProbeKind, err error) Probe {
	return Probe{Kind: kind, Found: err == nil, Err: err}
}

// Resolution returns the outcome, or false while still loading.
func (m *Machine) Resolution() (*Resolution, bool) {
	if m.phase != Resolved {
		return nil, false
	}
	return m.resolution, true
}

func (m *Machine) resolve() *Resolution {
	res := &Resolution{
		Input:     m.input,
		Address:   m.addr,
		Mode:      m.mode,
		Deleted:   IsDeleted(m.object.Found, m.resources),
		Account:   m.info,
		Resources: m.resources,
	}

	switch {
	case m.mode == ObjectView:
		res.Kind = Object
		res.Err = m.object.Err
	case m.account.Found:
		res.Kind = Account
	case m.account.NotFound() && m.object.Found:
		res.Kind = Object
		res.Redirect = ObjectView.Path(m.addr)
	default:
		res.Kind = Unresolved
		res.Err = m.account.Err
		if res.Err == nil {
			res.Err = m.object.Err
		}
	}
	return res
}

// InvalidResolution is the outcome for input that failed normalization. No
// probe runs for it.
func InvalidResolution(input string, mode ViewMode, err error) *Resolution {
	return &Resolution{
		Input: input,
		Mode:  mode,
		Kind:  Invalid,
		Err:   err,
	}
}
