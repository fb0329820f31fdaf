// Package address parses user supplied account and object addresses into
// their canonical 32-byte form.
//
// Users type addresses short ("0x1"), without prefix ("a55..."), or in mixed
// case. Normalize accepts all of these as long as no more than
// maxMissingChars leading hex characters were dropped, and always returns
// the long lowercase form:
//
//	a, _ := address.Normalize("0x1", address.DefaultMaxMissingChars)
//	a.String() // "0x0000...0001"
package address

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	explorercommon "github.com/cuiweiyuan/explorer/common"
)

const (
	// Length is the size of an address in bytes.
	Length = common.HashLength
	// HexLength is the number of hex characters in the long form.
	HexLength = 2 * Length
	// DefaultMaxMissingChars lets any non-empty hex string through, so "0x1"
	// is accepted.
	DefaultMaxMissingChars = HexLength - 1
)

var longFormPattern = regexp.MustCompile("0x[0-9a-fA-F]{64}([^0-9a-fA-F]|$)")

// Address is a normalized, immutable 32-byte address.
type Address struct {
	h common.Hash
}

// Normalize parses raw into an Address. Up to maxMissingChars leading hex
// characters may be omitted; more than that, an empty string, more than 64
// characters or any non-hex character fail with common.ErrInvalidAddress.
func Normalize(raw string, maxMissingChars int) (Address, error) {
	input := strings.TrimSpace(raw)
	digits := input
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}

	if maxMissingChars < 0 {
		maxMissingChars = 0
	}

	switch {
	case len(digits) == 0:
		return Address{}, invalid(raw, "address is empty")
	case len(digits) > HexLength:
		return Address{}, invalid(raw, fmt.Sprintf("address is longer than %d hex characters", HexLength))
	case len(digits) < HexLength-maxMissingChars:
		return Address{}, invalid(raw, fmt.Sprintf(
			"address is missing %d leading characters, at most %d may be omitted",
			HexLength-len(digits), maxMissingChars,
		))
	}

	padded := strings.Repeat("0", HexLength-len(digits)) + digits
	b, err := hexutil.Decode("0x" + padded)
	if err != nil {
		return Address{}, invalid(raw, "address contains non-hex characters")
	}
	return Address{h: common.BytesToHash(b)}, nil
}

// MustNormalize is Normalize for constants. It panics on invalid input.
func MustNormalize(raw string) Address {
	a, err := Normalize(raw, DefaultMaxMissingChars)
	if err != nil {
		panic(err)
	}
	return a
}

func invalid(raw, reason string) error {
	return &explorercommon.ResponseError{
		Type:    explorercommon.InvalidInput,
		Message: fmt.Sprintf("Invalid address '%s': %s", raw, reason),
	}
}

// String returns the canonical long form: "0x" followed by 64 lowercase hex
// characters.
func (a Address) String() string {
	return a.h.Hex()
}

// Short drops leading zeros, "0x0...01" becomes "0x1".
func (a Address) Short() string {
	trimmed := strings.TrimLeft(a.h.Hex()[2:], "0")
	if trimmed == "" {
		return "0x0"
	}
	return "0x" + trimmed
}

func (a Address) Hash() common.Hash {
	return a.h
}

func (a Address) IsZero() bool {
	return a.h == common.Hash{}
}

// IsSpecial reports whether a is one of the reserved addresses 0x0 to 0xf.
func (a Address) IsSpecial() bool {
	for _, b := range a.h[:Length-1] {
		if b != 0 {
			return false
		}
	}
	return a.h[Length-1] < 0x10
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Normalize(string(text), DefaultMaxMissingChars)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ScanForAddresses returns every long-form address found in para, in
// canonical form.
func ScanForAddresses(para string) []Address {
	found := longFormPattern.FindAllString(para, -1)
	result := []Address{}
	for _, s := range found {
		a, err := Normalize(s[0:HexLength+2], 0)
		if err != nil {
			continue
		}
		result = append(result, a)
	}
	return result
}
