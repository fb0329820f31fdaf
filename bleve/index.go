// Package bleve is a full text index over the address book, used by the
// search command to find addresses by words in their labels.
package bleve

import (
	"fmt"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"

	"github.com/cuiweiyuan/explorer/db"
	"github.com/cuiweiyuan/explorer/logx"
)

type AddressDesc struct {
	Address string
	Desc    string
}

// Index is an in-memory bleve index. It is rebuilt from the address book on
// every run, the book being small.
type Index struct {
	index bleve.Index
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = en.AnalyzerName

	addressFieldMapping := bleve.NewTextFieldMapping()
	addressFieldMapping.Analyzer = keyword.Name

	defaultMapping := bleve.NewDocumentMapping()
	defaultMapping.AddFieldMappingsAt("desc", textFieldMapping)
	defaultMapping.AddFieldMappingsAt("address", addressFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", defaultMapping)
	indexMapping.TypeField = "type"
	indexMapping.DefaultAnalyzer = "en"
	return indexMapping
}

// NewIndex indexes every entry of book.
func NewIndex(book *db.Book) (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("couldn't create address index: %w", err)
	}
	if err := indexAddresses(index, book.All()); err != nil {
		return nil, err
	}
	return &Index{index: index}, nil
}

func indexAddresses(i bleve.Index, addrs []db.AddressDesc) error {
	batch := i.NewBatch()
	batchCount := 0
	for _, a := range addrs {
		err := batch.Index(a.Address, map[string]interface{}{
			"address": a.Address,
			"desc":    a.Desc,
		})
		if err != nil {
			return err
		}
		batchCount++

		if batchCount >= 1000 {
			if err := i.Batch(batch); err != nil {
				return err
			}
			batch = i.NewBatch()
			batchCount = 0
		}
	}
	// flush the last batch
	if batchCount > 0 {
		if err := i.Batch(batch); err != nil {
			return err
		}
	}
	logx.Debug("BLEVE", fmt.Sprintf("indexed %d addresses", len(addrs)))
	return nil
}

// Search matches input as a phrase or, allowing one edit, as a term against
// the labels. Scores are bleve scores scaled to integers, best first.
func (idx *Index) Search(input string) ([]AddressDesc, []int) {
	matchQuery := bleve.NewMatchPhraseQuery(input)
	matchQuery.SetField("desc")
	fuzzyQuery := bleve.NewFuzzyQuery(input)
	fuzzyQuery.SetField("desc")
	fuzzyQuery.Fuzziness = 1
	query := bleve.NewDisjunctionQuery(matchQuery, fuzzyQuery)

	request := bleve.NewSearchRequest(query)
	request.Fields = []string{"address", "desc"}
	searchResults, err := idx.index.Search(request)
	if err != nil {
		logx.Warn("BLEVE", "address search failed: ", err)
		return []AddressDesc{}, []int{}
	}

	results := []AddressDesc{}
	resultScores := []int{}
	for _, hit := range searchResults.Hits {
		addr, _ := hit.Fields["address"].(string)
		desc, _ := hit.Fields["desc"].(string)
		if addr == "" {
			addr = hit.ID
		}
		resultScores = append(resultScores, int(hit.Score*1000000))
		results = append(results, AddressDesc{Address: addr, Desc: desc})
	}
	return results, resultScores
}

// GetAddress returns the best Search hit.
func (idx *Index) GetAddress(input string) (AddressDesc, error) {
	results, _ := idx.Search(input)
	if len(results) == 0 {
		return AddressDesc{}, fmt.Errorf("couldn't find address for: %s", input)
	}
	return results[0], nil
}

func (idx *Index) Close() error {
	return idx.index.Close()
}
