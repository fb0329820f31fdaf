package networks

import (
	"os"
	"strings"

	"github.com/cuiweiyuan/explorer/jsonx"
)

type GenericNetworkConfig struct {
	Name                string   `json:"name"`
	AlternativeNames    []string `json:"alternative_names"`
	ChainID             uint64   `json:"chain_id"`
	NativeTokenSymbol   string   `json:"native_token_symbol"`
	NativeTokenDecimal  uint64   `json:"native_token_decimal"`
	NodeVariableName    string   `json:"node_variable_name"`
	DefaultNodeURL      string   `json:"default_node_url"`
	IndexerVariableName string   `json:"indexer_variable_name"`
	DefaultIndexerURL   string   `json:"default_indexer_url"`
}

// GenericNetwork is a Network fully described by its config. Built-in and
// custom networks are both GenericNetworks.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericNetwork) GetNativeTokenDecimal() uint64 {
	return gn.config.NativeTokenDecimal
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodeURL() string {
	return gn.config.DefaultNodeURL
}

func (gn *GenericNetwork) GetNodeURL() string {
	return envOr(gn.config.NodeVariableName, gn.config.DefaultNodeURL)
}

func (gn *GenericNetwork) GetIndexerVariableName() string {
	return gn.config.IndexerVariableName
}

func (gn *GenericNetwork) GetIndexerURL() string {
	return envOr(gn.config.IndexerVariableName, gn.config.DefaultIndexerURL)
}

func (gn *GenericNetwork) MarshalJSON() ([]byte, error) {
	return jsonx.MarshalIndent(gn.config, "", "  ")
}

func envOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return strings.TrimRight(v, "/")
	}
	return fallback
}
