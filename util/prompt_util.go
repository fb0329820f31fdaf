package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cuiweiyuan/explorer/pagination"
	"github.com/cuiweiyuan/explorer/ui"
)

const NavigationHelp = "f: first, p: previous, n: next, l: last, <number>: go to page, r: reload, q: quit"

var navigationKeys = map[string]pagination.ItemType{
	"f": pagination.First,
	"p": pagination.Previous,
	"n": pagination.Next,
	"l": pagination.Last,
}

// Navigation is one command typed at the listing prompt. Exactly one of
// its fields is set.
type Navigation struct {
	Quit   bool
	Reload bool
	Item   pagination.ItemType
	Page   uint64
}

// ParseNavigation reads a listing command. Empty input quits, as it is what
// a closed stdin reads as.
func ParseNavigation(input string) (Navigation, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	switch input {
	case "", "q", "quit":
		return Navigation{Quit: true}, nil
	case "r":
		return Navigation{Reload: true}, nil
	}
	if t, found := navigationKeys[input]; found {
		return Navigation{Item: t}, nil
	}
	page, err := strconv.ParseUint(input, 10, 64)
	if err != nil || page == 0 {
		return Navigation{}, fmt.Errorf("unknown command %q, %s", input, NavigationHelp)
	}
	return Navigation{Page: page}, nil
}

// PromptNavigation shows the help line and loops until a valid listing
// command is entered. End of input quits.
func PromptNavigation(u ui.UI) Navigation {
	u.Info(NavigationHelp)
	nav := Navigation{Quit: true}
	u.Ask(func(s string) error {
		n, err := ParseNavigation(s)
		if err != nil {
			return err
		}
		nav = n
		return nil
	})
	return nav
}
