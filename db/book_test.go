package db

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/logx"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func wellKnownBook(t *testing.T) *Book {
	t.Helper()
	b := NewBook()
	for addr, name := range WellKnown {
		require.NoError(t, b.Register(addr, name))
	}
	return b
}

func TestRegisterNormalizes(t *testing.T) {
	b := NewBook()
	require.NoError(t, b.Register("0X1", "framework"))
	name, found := b.GetName(address.MustNormalize("0x0001"))
	assert.True(t, found)
	assert.Equal(t, "framework", name)

	assert.Error(t, b.Register("not an address", "x"))
	assert.Equal(t, 1, b.Len())
}

func TestSearch(t *testing.T) {
	b := wellKnownBook(t)
	matches, scores := b.Search("framework")
	require.NotEmpty(t, matches)
	assert.Len(t, scores, len(matches))
	assert.Equal(t, address.MustNormalize("0x1").String(), matches[0].Address)

	found, err := b.Find("framework")
	require.NoError(t, err)
	assert.Equal(t, "aptos framework", found.Desc)

	_, err = b.Find("zzzzzz")
	assert.Error(t, err)
}

func TestAllIsSorted(t *testing.T) {
	all := wellKnownBook(t).All()
	require.Len(t, all, len(WellKnown))
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Address, all[i].Address)
	}
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "addresses.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"0xbeef": "my wallet", "garbage": "skipped"}`), 0644))

	b := NewBook()
	require.NoError(t, b.LoadFile(file))
	name, found := b.GetName(address.MustNormalize("0xbeef"))
	assert.True(t, found)
	assert.Equal(t, "my wallet", name)
	assert.Equal(t, 1, b.Len())

	require.NoError(t, os.WriteFile(file, []byte(`[1,2]`), 0644))
	assert.Error(t, NewBook().LoadFile(file))
}
