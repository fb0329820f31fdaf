package addrbook

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/common"
	"github.com/cuiweiyuan/explorer/db"
	"github.com/cuiweiyuan/explorer/logx"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testBook(t *testing.T) *db.Book {
	t.Helper()
	book := db.NewBook()
	require.NoError(t, book.Register("0x1", "aptos framework"))
	require.NoError(t, book.Register("0xbeef", "treasury multisig"))
	return book
}

func TestDefaultResolve(t *testing.T) {
	r := NewDefault(testBook(t))

	known := r.Resolve(address.MustNormalize("0x1"))
	assert.Equal(t, "aptos framework", known.Desc)
	assert.True(t, known.Known())

	unknown := r.Resolve(address.MustNormalize("0x2"))
	assert.Equal(t, common.UnknownLabel, unknown.Desc)
	assert.Equal(t, address.MustNormalize("0x2").String(), unknown.Address)
}

func TestExpand(t *testing.T) {
	r := NewDefault(testBook(t))

	assert.Equal(t, "0x1", r.Expand("0x1"))
	assert.Equal(t, "cafe", r.Expand("cafe"))
	assert.Equal(t, address.MustNormalize("0xbeef").String(), r.Expand("treasury"))
	assert.Equal(t, "no such label!", r.Expand("no such label!"))
	assert.Equal(t, "", r.Expand(""))
}

func TestMapResolver(t *testing.T) {
	one := address.MustNormalize("0x1")
	r := Map{one.String(): "framework"}
	assert.Equal(t, "framework", r.Resolve(one).Desc)
	assert.Equal(t, common.UnknownLabel, r.Resolve(address.MustNormalize("0x2")).Desc)
}
