package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabs(t *testing.T) {
	tests := []struct {
		kind     EntityKind
		extended bool
		want     []Tab
	}{
		{Account, true, []Tab{TabTransactions, TabCoins, TabTokens, TabResources, TabModules, TabInfo}},
		{Account, false, []Tab{TabTransactions, TabResources, TabModules, TabInfo}},
		{Object, true, []Tab{TabTransactions, TabCoins, TabTokens, TabResources, TabModules}},
		{Object, false, []Tab{TabTransactions, TabResources, TabModules}},
		{Unresolved, true, nil},
		{Invalid, false, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Tabs(tt.kind, tt.extended), "%s extended=%v", tt.kind, tt.extended)
	}
}

func TestTabsReturnsCopy(t *testing.T) {
	tabs := Tabs(Account, true)
	tabs[0] = "mutated"
	assert.Equal(t, TabTransactions, Tabs(Account, true)[0])
}
