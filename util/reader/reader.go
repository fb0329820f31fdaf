// Package reader talks to a ledger node's REST API. It only reads: the
// explorer never submits anything.
package reader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/common"
	"github.com/cuiweiyuan/explorer/jsonx"
	"github.com/cuiweiyuan/explorer/logx"
	"github.com/cuiweiyuan/explorer/monitoring"
	"github.com/cuiweiyuan/explorer/networks"
)

const TIMEOUT time.Duration = 10 * time.Second

const RequestIDHeader = "X-Request-ID"

// NodeReader reads one node. It holds no per-request state and is safe for
// concurrent use.
type NodeReader struct {
	nodeName string
	nodeURL  string
	client   *http.Client
}

func NewNodeReader(name, nodeURL string) *NodeReader {
	return &NodeReader{
		nodeName: name,
		nodeURL:  strings.TrimRight(nodeURL, "/"),
		client:   &http.Client{Timeout: TIMEOUT},
	}
}

// NewNetworkReader reads the node configured for network.
func NewNetworkReader(network networks.Network) *NodeReader {
	return NewNodeReader(network.GetName(), network.GetNodeURL())
}

// WithHTTPClient replaces the underlying client, mostly to change timeouts.
func (nr *NodeReader) WithHTTPClient(c *http.Client) *NodeReader {
	nr.client = c
	return nr
}

func (nr *NodeReader) NodeName() string {
	return nr.nodeName
}

func (nr *NodeReader) NodeURL() string {
	return nr.nodeURL
}

// nodeError is the body the node sends with non-2xx responses.
type nodeError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

func (nr *NodeReader) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	started := time.Now()
	defer func() {
		monitoring.RecordFetchLatency(op, time.Since(started))
	}()

	err := nr.do(ctx, op, path, query, out)
	if err != nil {
		monitoring.RecordFetchError(op, string(common.TypeOf(err)))
		logx.Warn("READER", fmt.Sprintf("%s %s%s failed: %s", op, nr.nodeName, path, err))
	}
	return err
}

func (nr *NodeReader) do(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	target := nr.nodeURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return common.WrapTransport(err, "couldn't build %s request", op)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := nr.client.Do(req)
	if err != nil {
		return common.WrapTransport(err, "couldn't reach %s", nr.nodeName)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return common.WrapTransport(err, "couldn't read %s response", op)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(op, resp.StatusCode, body)
	}

	if err := jsonx.Unmarshal(body, out); err != nil {
		return common.WrapTransport(err, "couldn't decode %s response", op)
	}
	return nil
}

func statusError(op string, status int, body []byte) error {
	ne := nodeError{}
	msg := ""
	if jsonx.Unmarshal(body, &ne) == nil && ne.Message != "" {
		msg = ne.Message
	} else {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	t := common.Transport
	if status == http.StatusNotFound {
		t = common.NotFound
	}
	return &common.ResponseError{
		Type:    t,
		Message: fmt.Sprintf("%s: %s", op, msg),
		Status:  status,
	}
}

// LedgerInfo returns the node's current ledger summary.
func (nr *NodeReader) LedgerInfo(ctx context.Context) (*common.LedgerInfo, error) {
	info := common.LedgerInfo{}
	if err := nr.get(ctx, "ledger_info", "", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Account fails with common.ErrNotFound when no account lives at addr.
func (nr *NodeReader) Account(ctx context.Context, addr address.Address) (*common.AccountInfo, error) {
	info := common.AccountInfo{}
	if err := nr.get(ctx, "account", "/accounts/"+addr.String(), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Resources lists every resource stored under addr.
func (nr *NodeReader) Resources(ctx context.Context, addr address.Address) ([]common.Resource, error) {
	resources := []common.Resource{}
	if err := nr.get(ctx, "account_resources", "/accounts/"+addr.String()+"/resources", nil, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// Transactions fetches up to limit transactions starting at version start.
// A nil start asks the node for the latest ones.
func (nr *NodeReader) Transactions(ctx context.Context, start *uint64, limit uint64) ([]common.Transaction, error) {
	q := url.Values{}
	if start != nil {
		q.Set("start", strconv.FormatUint(*start, 10))
	}
	if limit > 0 {
		q.Set("limit", strconv.FormatUint(limit, 10))
	}
	txs := []common.Transaction{}
	if err := nr.get(ctx, "transactions", "/transactions", q, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (nr *NodeReader) TransactionByVersion(ctx context.Context, version uint64) (*common.Transaction, error) {
	tx := common.Transaction{}
	path := "/transactions/by_version/" + strconv.FormatUint(version, 10)
	if err := nr.get(ctx, "transaction_by_version", path, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (nr *NodeReader) TransactionByHash(ctx context.Context, hash string) (*common.Transaction, error) {
	tx := common.Transaction{}
	if err := nr.get(ctx, "transaction_by_hash", "/transactions/by_hash/"+url.PathEscape(hash), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
