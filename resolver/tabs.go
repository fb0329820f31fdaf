package resolver

type Tab string

const (
	TabTransactions Tab = "transactions"
	TabCoins        Tab = "coins"
	TabTokens       Tab = "tokens"
	TabResources    Tab = "resources"
	TabModules      Tab = "modules"
	TabInfo         Tab = "info"
)

var (
	accountTabsExtended = []Tab{TabTransactions, TabCoins, TabTokens, TabResources, TabModules, TabInfo}
	accountTabs         = []Tab{TabTransactions, TabResources, TabModules, TabInfo}
	objectTabsExtended  = []Tab{TabTransactions, TabCoins, TabTokens, TabResources, TabModules}
	objectTabs          = []Tab{TabTransactions, TabResources, TabModules}
)

// Tabs lists the detail tabs shown for kind, in display order. Coin and
// token tabs need the indexer, so they only appear when extendedQuery is
// set. Kinds other than Account and Object have no tabs.
func Tabs(kind EntityKind, extendedQuery bool) []Tab {
	var src []Tab
	switch {
	case kind == Account && extendedQuery:
		src = accountTabsExtended
	case kind == Account:
		src = accountTabs
	case kind == Object && extendedQuery:
		src = objectTabsExtended
	case kind == Object:
		src = objectTabs
	default:
		return nil
	}
	return append([]Tab(nil), src...)
}
