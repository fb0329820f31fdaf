package networks

// Network is one ledger the explorer can read from. Every fetch takes the
// Network explicitly; there is no process wide "current" network.
type Network interface {
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetNativeTokenDecimal() uint64

	// GetNodeVariableName is the env var that overrides the node URL.
	GetNodeVariableName() string
	GetDefaultNodeURL() string
	// GetNodeURL is the node REST endpoint to use: the env override when
	// set, the default otherwise.
	GetNodeURL() string

	GetIndexerVariableName() string
	// GetIndexerURL is the GraphQL indexer endpoint, empty when the network
	// has none.
	GetIndexerURL() string

	MarshalJSON() ([]byte, error)
}
