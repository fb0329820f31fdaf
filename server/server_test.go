package server

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/common"
	"github.com/cuiweiyuan/explorer/jsonx"
	"github.com/cuiweiyuan/explorer/logx"
	"github.com/cuiweiyuan/explorer/networks"
	"github.com/cuiweiyuan/explorer/resolver"
	"github.com/cuiweiyuan/explorer/txlist"
	"github.com/cuiweiyuan/explorer/util/addrbook"
	"github.com/cuiweiyuan/explorer/util/indexer"
	"github.com/cuiweiyuan/explorer/util/reader"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

var (
	accountAddr = address.MustNormalize("0x1")
	objectAddr  = address.MustNormalize("0xabc")
)

// fakeNode serves a ledger at version 1000 with one account (0x1) and one
// object (0xabc). Everything else is not found.
func fakeNode(t *testing.T) *httptest.Server {
	t.Helper()
	notFound := func(w http.ResponseWriter, msg string) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, `{"message":%q}`, msg)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/v1")
		switch {
		case path == "":
			_, _ = io.WriteString(w, `{"chain_id":4,"ledger_version":"1000"}`)
		case path == "/accounts/"+accountAddr.String():
			_, _ = io.WriteString(w, `{"sequence_number":"7","authentication_key":"0x01"}`)
		case path == "/accounts/"+accountAddr.String()+"/resources":
			_, _ = io.WriteString(w, `[{"type":"0x1::account::Account","data":{}}]`)
		case path == "/accounts/"+objectAddr.String()+"/resources":
			_, _ = io.WriteString(w, `[{"type":"0x1::object::ObjectCore","data":{}}]`)
		case strings.HasPrefix(path, "/accounts/"):
			notFound(w, "Account not found by Address")
		case path == "/transactions":
			start, _ := strconv.ParseUint(r.URL.Query().Get("start"), 10, 64)
			limit, _ := strconv.ParseUint(r.URL.Query().Get("limit"), 10, 64)
			if start > 1000 {
				notFound(w, "Ledger version not found")
				return
			}
			txs := []common.Transaction{}
			for v := start; v < start+limit && v <= 1000; v++ {
				txs = append(txs, common.Transaction{Type: "user_transaction", Version: strconv.FormatUint(v, 10)})
			}
			_ = jsonx.NewEncoder(w).Encode(txs)
		case path == "/transactions/by_version/5":
			_, _ = io.WriteString(w, `{"type":"user_transaction","version":"5","success":true}`)
		default:
			notFound(w, "not found")
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *Server {
	node := fakeNode(t)
	return New(Options{
		DefaultNetwork: networks.Local,
		Sources: func(networks.Network) NodeSource {
			return reader.NewNodeReader("test", node.URL+"/v1")
		},
		Capabilities: indexer.Fixed(true),
		Labels:       addrbook.Map{accountAddr.String(): "aptos framework"},
	})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

type resolutionBody struct {
	Kind    resolver.EntityKind `json:"kind"`
	Address string              `json:"address"`
	Deleted bool                `json:"deleted"`
	Label   common.Label        `json:"label"`
	Tabs    []resolver.Tab      `json:"tabs"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, jsonx.Unmarshal(rec.Body.Bytes(), v))
}

func TestAccountLookup(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/account/0x1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body resolutionBody
	decode(t, rec, &body)
	assert.Equal(t, resolver.Account, body.Kind)
	assert.Equal(t, accountAddr.String(), body.Address)
	assert.Equal(t, "aptos framework", body.Label.Desc)
	assert.False(t, body.Deleted)
	assert.Equal(t, []resolver.Tab{
		resolver.TabTransactions, resolver.TabCoins, resolver.TabTokens,
		resolver.TabResources, resolver.TabModules, resolver.TabInfo,
	}, body.Tabs)
}

func TestAccountLookupRedirectsToObject(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/account/0xabc?network=localnet")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/object/"+objectAddr.String()+"?network=localnet", rec.Header().Get("Location"))

	rec = get(t, s, "/object/"+objectAddr.String())
	require.Equal(t, http.StatusOK, rec.Code)
	var body resolutionBody
	decode(t, rec, &body)
	assert.Equal(t, resolver.Object, body.Kind)
	assert.False(t, body.Deleted)
	assert.NotContains(t, body.Tabs, resolver.TabInfo)
}

func TestUnknownAddressIsNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/account/0xdead")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorResponse
	decode(t, rec, &body)
	require.NotNil(t, body.Error)
	assert.Equal(t, common.NotFound, body.Error.Type)
}

func TestInvalidAddressIsBadRequest(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/account/not-an-address")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	decode(t, rec, &body)
	assert.Equal(t, common.InvalidInput, body.Error.Type)
}

func TestUnknownNetworkIsBadRequest(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/transactions?network=nowhere")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionsNewestPage(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/transactions")
	require.Equal(t, http.StatusOK, rec.Code)

	var page txlist.Page
	decode(t, rec, &page)
	assert.Equal(t, uint64(1000), page.Descriptor.MaxVersion)
	assert.Equal(t, uint64(981), page.Descriptor.Window.Start)
	assert.Equal(t, uint64(1), page.Descriptor.CurrentPage)
	assert.Len(t, page.Transactions, 20)
	assert.NotEmpty(t, page.Items)
}

func TestTransactionsStart(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/transactions?start=100")
	require.Equal(t, http.StatusOK, rec.Code)
	var page txlist.Page
	decode(t, rec, &page)
	assert.Equal(t, uint64(100), page.Descriptor.Window.Start)
	assert.Equal(t, "100", page.Transactions[0].Version)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/transactions?start=abc").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/transactions?start=5000").Code)
}

func TestLatestTransactions(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/transactions/latest")
	require.Equal(t, http.StatusOK, rec.Code)
	var body latestResponse
	decode(t, rec, &body)
	assert.Equal(t, networks.Local.GetName(), body.Network)
	assert.Len(t, body.Transactions, int(txlist.PreviewLimit))
}

func TestTransactionByVersion(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/txn/5")
	require.Equal(t, http.StatusOK, rec.Code)
	var tx common.Transaction
	decode(t, rec, &tx)
	assert.Equal(t, "5", tx.Version)
	assert.True(t, tx.Success)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/txn/xyz").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/txn/6").Code)
}

func TestNodeDownIsBadGateway(t *testing.T) {
	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(node.Close)
	s := New(Options{
		DefaultNetwork: networks.Local,
		Sources: func(networks.Network) NodeSource {
			return reader.NewNodeReader("down", node.URL)
		},
		Capabilities: indexer.Fixed(false),
		Labels:       addrbook.Map{},
	})

	assert.Equal(t, http.StatusBadGateway, get(t, s, "/transactions").Code)
	assert.Equal(t, http.StatusBadGateway, get(t, s, "/account/0x1").Code)
}

func TestNetworksAndMetrics(t *testing.T) {
	s := newTestServer(t)
	get(t, s, "/transactions/latest")

	rec := get(t, s, "/networks")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []networkResponse
	decode(t, rec, &list)
	require.NotEmpty(t, list)
	defaults := 0
	for _, n := range list {
		if n.Default {
			defaults++
			assert.Equal(t, networks.Local.GetName(), n.Name)
		}
	}
	assert.Equal(t, 1, defaults)

	rec = get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "explorer_http_requests_total")
}
