package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cuiweiyuan/explorer/bleve"
	"github.com/cuiweiyuan/explorer/db"
	"github.com/cuiweiyuan/explorer/ui"
)

var newBook = db.Default

// searchAddresses shows the address book entries matching keywords. Full
// text hits come first; when there are none the fuzzy matcher is tried.
func searchAddresses(u ui.UI, book *db.Book, keywords string) (int, error) {
	idx, err := bleve.NewIndex(book)
	if err != nil {
		return 0, err
	}
	defer idx.Close()

	rows := [][]string{}
	hits, scores := idx.Search(keywords)
	for i, h := range hits {
		rows = append(rows, []string{h.Address, h.Desc, strconv.Itoa(scores[i])})
	}
	if len(rows) == 0 {
		matches, fuzzyScores := book.Search(keywords)
		for i, m := range matches {
			rows = append(rows, []string{m.Address, m.Desc, strconv.Itoa(fuzzyScores[i])})
		}
	}

	if len(rows) == 0 {
		u.Warn("No address matches %q", keywords)
		return 0, nil
	}
	u.Table([]string{"Address", "Label", "Score"}, rows)
	return len(rows), nil
}

var searchCmd = &cobra.Command{
	Use:   "search [keywords]",
	Short: "Search the address book by label",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := searchAddresses(appUI, newBook(), strings.Join(args, " ")); err != nil {
			appUI.Error("Search failed: %s", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
