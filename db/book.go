// Package db holds the address book: human readable labels for well known
// framework addresses plus whatever the user keeps in
// ~/.explorer/addresses.json.
package db

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/jsonx"
	"github.com/cuiweiyuan/explorer/logx"
)

// WellKnown labels framework addresses that exist on every network.
var WellKnown = map[string]string{
	"0x0":       "core resources",
	"0x1":       "aptos framework",
	"0x3":       "legacy token",
	"0x4":       "token objects",
	"0x7":       "randomness",
	"0xa":       "aptos coin fungible asset",
	"0xa550c18": "core resources account",
}

type AddressDesc struct {
	Address string `json:"address"`
	Desc    string `json:"desc"`
}

// Book maps canonical addresses to labels.
type Book struct {
	data map[address.Address]string
}

func NewBook() *Book {
	return &Book{data: map[address.Address]string{}}
}

// Register adds or replaces the label of addr. addr may be in any form
// address.Normalize accepts.
func (b *Book) Register(addr string, name string) error {
	a, err := address.Normalize(addr, address.DefaultMaxMissingChars)
	if err != nil {
		return err
	}
	b.data[a] = name
	return nil
}

// GetName returns the label of addr, false when addr has none.
func (b *Book) GetName(addr address.Address) (string, bool) {
	name, found := b.data[addr]
	return name, found
}

func (b *Book) Len() int {
	return len(b.data)
}

// All returns every entry sorted by address.
func (b *Book) All() []AddressDesc {
	result := make([]AddressDesc, 0, len(b.data))
	for addr, desc := range b.data {
		result = append(result, AddressDesc{Address: addr.String(), Desc: desc})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Address < result[j].Address })
	return result
}

// FuzzySource adapts a list of entries to sahilm/fuzzy.
type FuzzySource []AddressDesc

func (self FuzzySource) Len() int {
	return len(self)
}

func (self FuzzySource) String(i int) string {
	return fmt.Sprintf("%s_%s", strings.Replace(self[i].Desc, " ", "_", -1), self[i].Address)
}

// Search fuzzy matches input against labels and addresses and returns at
// most 10 entries with their scores, best first.
func (b *Book) Search(input string) ([]AddressDesc, []int) {
	source := FuzzySource(b.All())
	matches := fuzzy.FindFrom(strings.Replace(input, " ", "_", -1), source)
	result := []AddressDesc{}
	scores := []int{}
	for i := 0; i < 10 && i < len(matches); i++ {
		result = append(result, source[matches[i].Index])
		scores = append(scores, matches[i].Score)
	}
	return result, scores
}

// Find returns the best Search match.
func (b *Book) Find(input string) (AddressDesc, error) {
	matches, _ := b.Search(input)
	if len(matches) == 0 {
		return AddressDesc{}, fmt.Errorf("no address is found with '%s'", input)
	}
	return matches[0], nil
}

// AddressesPath is the user's address book file. Empty means
// ~/.explorer/addresses.json.
var AddressesPath string

func addressesPath() string {
	if AddressesPath != "" {
		return AddressesPath
	}
	usr, err := user.Current()
	if err != nil {
		return ""
	}
	return filepath.Join(usr.HomeDir, ".explorer", "addresses.json")
}

// LoadFile registers every entry of a JSON object mapping address to label.
// Entries with an invalid address are skipped.
func (b *Book) LoadFile(file string) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	entries := map[string]string{}
	if err := jsonx.Unmarshal(content, &entries); err != nil {
		return fmt.Errorf("couldn't parse %s: %w", file, err)
	}
	for addr, name := range entries {
		if err := b.Register(addr, name); err != nil {
			logx.Warn("DB", fmt.Sprintf("skipping address book entry %q: %s", addr, err))
		}
	}
	return nil
}

var (
	defaultBook *Book
	once        sync.Once
)

// Default is the process wide address book: WellKnown plus the user's file.
// A missing or broken user file only costs its entries.
func Default() *Book {
	once.Do(func() {
		defaultBook = NewBook()
		for addr, name := range WellKnown {
			_ = defaultBook.Register(addr, name)
		}
		file := addressesPath()
		if file == "" {
			return
		}
		if err := defaultBook.LoadFile(file); err != nil && !os.IsNotExist(err) {
			logx.Warn("DB", "reading addresses from ", file, " failed: ", err)
		}
	})
	return defaultBook
}
