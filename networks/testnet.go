package networks

var Testnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:                "testnet",
	AlternativeNames:    []string{"test"},
	ChainID:             2,
	NativeTokenSymbol:   "APT",
	NativeTokenDecimal:  8,
	NodeVariableName:    "TESTNET_NODE",
	DefaultNodeURL:      "https://api.testnet.aptoslabs.com/v1",
	IndexerVariableName: "TESTNET_INDEXER",
	DefaultIndexerURL:   "https://api.testnet.aptoslabs.com/v1/graphql",
})
