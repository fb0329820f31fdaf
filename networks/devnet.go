package networks

// Devnet is reset regularly and gets a fresh chain id each time, so it is
// registered without one.
var Devnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:                "devnet",
	AlternativeNames:    []string{"dev"},
	NativeTokenSymbol:   "APT",
	NativeTokenDecimal:  8,
	NodeVariableName:    "DEVNET_NODE",
	DefaultNodeURL:      "https://api.devnet.aptoslabs.com/v1",
	IndexerVariableName: "DEVNET_INDEXER",
	DefaultIndexerURL:   "https://api.devnet.aptoslabs.com/v1/graphql",
})
