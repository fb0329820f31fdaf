package networks

var Mainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:                "mainnet",
	AlternativeNames:    []string{"main"},
	ChainID:             1,
	NativeTokenSymbol:   "APT",
	NativeTokenDecimal:  8,
	NodeVariableName:    "MAINNET_NODE",
	DefaultNodeURL:      "https://api.mainnet.aptoslabs.com/v1",
	IndexerVariableName: "MAINNET_INDEXER",
	DefaultIndexerURL:   "https://api.mainnet.aptoslabs.com/v1/graphql",
})
