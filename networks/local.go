package networks

var Local Network = NewGenericNetwork(GenericNetworkConfig{
	Name:                "local",
	AlternativeNames:    []string{"localnet"},
	ChainID:             4,
	NativeTokenSymbol:   "APT",
	NativeTokenDecimal:  8,
	NodeVariableName:    "LOCAL_NODE",
	DefaultNodeURL:      "http://127.0.0.1:8080/v1",
	IndexerVariableName: "LOCAL_INDEXER",
	DefaultIndexerURL:   "http://127.0.0.1:8090/v1/graphql",
})
