package networks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempNetworksDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := CustomNetworksDir
	CustomNetworksDir = dir
	Reload()
	t.Cleanup(func() {
		CustomNetworksDir = old
		Reload()
	})
	return dir
}

func TestBuiltinNetworksByNameAndAlias(t *testing.T) {
	useTempNetworksDir(t)

	n, err := GetNetwork("mainnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n.GetChainID())

	alias, err := GetNetwork("test")
	require.NoError(t, err)
	assert.Equal(t, "testnet", alias.GetName())

	byID, err := GetNetworkByID(4)
	require.NoError(t, err)
	assert.Equal(t, "local", byID.GetName())

	_, err = GetNetwork("nope")
	assert.ErrorIs(t, err, ErrNetworkNotFound)
}

func TestDevnetHasNoChainID(t *testing.T) {
	useTempNetworksDir(t)
	_, err := GetNetworkByID(0)
	assert.Error(t, err)
}

func TestNodeURLEnvOverride(t *testing.T) {
	t.Setenv("TESTNET_NODE", "http://localhost:9999/v1/")
	assert.Equal(t, "http://localhost:9999/v1", Testnet.GetNodeURL())
	assert.Equal(t, "https://api.testnet.aptoslabs.com/v1", Testnet.GetDefaultNodeURL())
}

func TestIndexerURLEmptyWhenUnset(t *testing.T) {
	n := NewGenericNetwork(GenericNetworkConfig{Name: "bare", DefaultNodeURL: "http://x"})
	assert.Equal(t, "", n.GetIndexerURL())
}

func TestAddNetworkPersistsAndReloads(t *testing.T) {
	dir := useTempNetworksDir(t)

	custom := NewGenericNetwork(GenericNetworkConfig{
		Name:             "staging",
		AlternativeNames: []string{"stg"},
		ChainID:          77,
		DefaultNodeURL:   "http://staging:8080/v1",
	})
	require.NoError(t, AddNetwork(custom))

	_, err := os.Stat(filepath.Join(dir, "staging.json"))
	require.NoError(t, err)

	Reload()
	n, err := GetNetwork("stg")
	require.NoError(t, err)
	assert.Equal(t, "http://staging:8080/v1", n.GetNodeURL())
	assert.Contains(t, GetSupportedNetworkNames(), "staging")
}

func TestAddNetworkRejectsTakenAlias(t *testing.T) {
	useTempNetworksDir(t)
	err := AddNetwork(NewGenericNetwork(GenericNetworkConfig{
		Name:             "other",
		AlternativeNames: []string{"main"},
		DefaultNodeURL:   "http://x",
	}))
	assert.Error(t, err)
}

func TestNewNetworkFromJSONValidates(t *testing.T) {
	_, err := NewNetworkFromJSON([]byte(`{"chain_id": 9}`))
	assert.Error(t, err)
	_, err = NewNetworkFromJSON([]byte(`{"name": "x"}`))
	assert.Error(t, err)
	n, err := NewNetworkFromJSON([]byte(`{"name": "x", "default_node_url": "http://n"}`))
	require.NoError(t, err)
	assert.Equal(t, "x", n.GetName())
}
