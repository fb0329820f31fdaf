package addrbook

import (
	"strings"

	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/bleve"
	"github.com/cuiweiyuan/explorer/common"
	"github.com/cuiweiyuan/explorer/db"
)

// Default resolves labels from a db.Book.
type Default struct {
	book *db.Book
}

// NewDefault returns a resolver over book, or over db.Default() when book
// is nil.
func NewDefault(book *db.Book) Default {
	if book == nil {
		book = db.Default()
	}
	return Default{book: book}
}

func (r Default) Resolve(addr address.Address) common.Label {
	if name, found := r.book.GetName(addr); found {
		return common.Label{Address: addr.String(), Desc: name}
	}
	return common.Label{Address: addr.String(), Desc: common.UnknownLabel}
}

// Expand turns user input into something address.Normalize can parse. Input
// that already looks like an address is returned unchanged; otherwise it
// is looked up as a label, first fuzzily in the book, then in the full text
// index. Input matching nothing is returned unchanged so that normalization
// reports it as invalid.
func (r Default) Expand(input string) string {
	trimmed := strings.TrimSpace(input)
	if _, err := address.Normalize(trimmed, address.DefaultMaxMissingChars); err == nil || trimmed == "" {
		return input
	}
	if found, err := r.book.Find(trimmed); err == nil {
		return found.Address
	}
	idx, err := bleve.NewIndex(r.book)
	if err != nil {
		return input
	}
	defer idx.Close()
	if found, err := idx.GetAddress(trimmed); err == nil {
		return found.Address
	}
	return input
}
