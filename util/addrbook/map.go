package addrbook

import (
	"strings"

	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/common"
)

// Map is a lightweight AddressResolver for tests. Keys are canonical
// lower-case addresses; anything not in the map resolves to "unknown".
//
// Example:
//
//	r := addrbook.Map{
//	    address.MustNormalize("0x1").String(): "aptos framework",
//	}
type Map map[string]string

func (m Map) Resolve(addr address.Address) common.Label {
	if desc, ok := m[strings.ToLower(addr.String())]; ok {
		return common.Label{Address: addr.String(), Desc: desc}
	}
	return common.Label{Address: addr.String(), Desc: common.UnknownLabel}
}
