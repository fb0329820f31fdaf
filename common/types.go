package common

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ObjectCoreResource is the resource type every live object carries. An
// address that once held an object but no longer has this resource is a
// deleted object.
const ObjectCoreResource = "0x1::object::ObjectCore"

const GenesisTransaction = "genesis_transaction"

// LedgerInfo is the node's view of the ledger at request time. Versions come
// over the wire as decimal strings.
type LedgerInfo struct {
	ChainID             int    `json:"chain_id"`
	Epoch               string `json:"epoch"`
	LedgerVersion       string `json:"ledger_version"`
	OldestLedgerVersion string `json:"oldest_ledger_version"`
	LedgerTimestamp     string `json:"ledger_timestamp"`
	NodeRole            string `json:"node_role"`
	OldestBlockHeight   string `json:"oldest_block_height"`
	BlockHeight         string `json:"block_height"`
}

type AccountInfo struct {
	SequenceNumber    string `json:"sequence_number"`
	AuthenticationKey string `json:"authentication_key"`
}

type Resource struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HasResource reports whether a resource of type t is present.
func HasResource(resources []Resource, t string) bool {
	for _, r := range resources {
		if r.Type == t {
			return true
		}
	}
	return false
}

// Transaction is the subset of an on-chain transaction the explorer lists
// and shows. Fields absent for a transaction type are left empty.
type Transaction struct {
	Type                string `json:"type"`
	Version             string `json:"version"`
	Hash                string `json:"hash"`
	StateChangeHash     string `json:"state_change_hash"`
	EventRootHash       string `json:"event_root_hash"`
	AccumulatorRootHash string `json:"accumulator_root_hash"`
	GasUsed             string `json:"gas_used"`
	Success             bool   `json:"success"`
	VMStatus            string `json:"vm_status"`
	Timestamp           string `json:"timestamp,omitempty"`
	Sender              string `json:"sender,omitempty"`
	SequenceNumber      string `json:"sequence_number,omitempty"`
	MaxGasAmount        string `json:"max_gas_amount,omitempty"`
	GasUnitPrice        string `json:"gas_unit_price,omitempty"`
}

func (t Transaction) VersionNumber() (uint64, error) {
	v, err := strconv.ParseUint(t.Version, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("transaction version %q is not an unsigned integer: %w", t.Version, err)
	}
	return v, nil
}
