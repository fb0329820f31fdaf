package txlist

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/cuiweiyuan/explorer/common"
)

var hashPattern = regexp.MustCompile(`^(0[xX])?[0-9a-fA-F]{64}$`)

// TxnRef is the parsed /txn/{txnHashOrVersion} segment. Exactly one of
// Version and Hash is set.
type TxnRef struct {
	Version *uint64
	Hash    string
}

func (r TxnRef) String() string {
	if r.Version != nil {
		return strconv.FormatUint(*r.Version, 10)
	}
	return r.Hash
}

// ParseTxnRef treats a decimal string as a version and a 64 character hex
// string, with or without 0x, as a hash.
func ParseTxnRef(raw string) (TxnRef, error) {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return TxnRef{Version: &v}, nil
	}
	if hashPattern.MatchString(raw) {
		h := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X"))
		return TxnRef{Hash: "0x" + h}, nil
	}
	return TxnRef{}, common.NewError(common.InvalidInput, "'%s' is neither a transaction version nor a hash", raw)
}

// TxnSource is the part of the node API that looks up one transaction.
type TxnSource interface {
	TransactionByVersion(ctx context.Context, version uint64) (*common.Transaction, error)
	TransactionByHash(ctx context.Context, hash string) (*common.Transaction, error)
}

// LookupTransaction resolves raw with ParseTxnRef and fetches it.
func LookupTransaction(ctx context.Context, src TxnSource, raw string) (*common.Transaction, error) {
	ref, err := ParseTxnRef(raw)
	if err != nil {
		return nil, err
	}
	if ref.Version != nil {
		return src.TransactionByVersion(ctx, *ref.Version)
	}
	return src.TransactionByHash(ctx, ref.Hash)
}
