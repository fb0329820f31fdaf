// Package addrbook provides the AddressResolver interface and ready-made
// implementations for labelling addresses.
//
// Production code uses [Default], backed by the db address book. Tests inject
// [Map], a plain map that resolves to deterministic names without touching
// the user's files.
package addrbook

import (
	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/common"
)

// AddressResolver labels an address.
//
// Contract: if the address is not known, Desc must be common.UnknownLabel.
type AddressResolver interface {
	Resolve(addr address.Address) common.Label
}
