// Package server exposes the explorer over HTTP as JSON: address lookups,
// the paged transaction list and single transactions.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/common"
	"github.com/cuiweiyuan/explorer/jsonx"
	"github.com/cuiweiyuan/explorer/logx"
	"github.com/cuiweiyuan/explorer/monitoring"
	"github.com/cuiweiyuan/explorer/networks"
	"github.com/cuiweiyuan/explorer/resolver"
	"github.com/cuiweiyuan/explorer/txlist"
	"github.com/cuiweiyuan/explorer/util/addrbook"
	"github.com/cuiweiyuan/explorer/util/indexer"
	"github.com/cuiweiyuan/explorer/util/reader"
)

// NodeSource is every node call the server makes.
type NodeSource interface {
	resolver.Source
	txlist.Source
	txlist.TxnSource
}

func DefaultNodeSource(network networks.Network) NodeSource {
	return reader.NewNetworkReader(network)
}

type Options struct {
	DefaultNetwork  networks.Network
	Sources         func(networks.Network) NodeSource
	Capabilities    *indexer.Capabilities
	Labels          addrbook.AddressResolver
	MaxMissingChars int
	PageLimit       uint64
}

type Server struct {
	opts   Options
	router *mux.Router
}

func New(opts Options) *Server {
	if opts.DefaultNetwork == nil {
		opts.DefaultNetwork = networks.Mainnet
	}
	if opts.Sources == nil {
		opts.Sources = DefaultNodeSource
	}
	if opts.Capabilities == nil {
		opts.Capabilities = indexer.NewCapabilities()
	}
	if opts.Labels == nil {
		opts.Labels = addrbook.NewDefault(nil)
	}
	if opts.MaxMissingChars == 0 {
		opts.MaxMissingChars = address.DefaultMaxMissingChars
	}
	if opts.PageLimit == 0 {
		opts.PageLimit = txlist.MainLimit
	}
	s := &Server{opts: opts, router: mux.NewRouter()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.observe)

	s.router.HandleFunc("/account/{address}", s.lookup(resolver.AccountView)).Methods("GET")
	s.router.HandleFunc("/object/{address}", s.lookup(resolver.ObjectView)).Methods("GET")
	s.router.HandleFunc("/transactions", s.getTransactions).Methods("GET")
	s.router.HandleFunc("/transactions/latest", s.getLatestTransactions).Methods("GET")
	s.router.HandleFunc("/txn/{txnHashOrVersion}", s.getTransaction).Methods("GET")
	s.router.HandleFunc("/networks", s.getNetworks).Methods("GET")
	s.router.Handle("/metrics", monitoring.Handler()).Methods("GET")
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logx.Info("SERVER", "listening on ", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		monitoring.RecordHTTPRequest(route, rec.status, time.Since(started))
		logx.Debug("SERVER", r.Method, " ", r.URL.String(), " ", rec.status, " ", time.Since(started))
	})
}

// network picks the ?network= network, falling back to the default one.
func (s *Server) network(r *http.Request) (networks.Network, error) {
	name := r.URL.Query().Get("network")
	if name == "" {
		return s.opts.DefaultNetwork, nil
	}
	n, err := networks.GetNetwork(name)
	if err != nil {
		return nil, common.NewError(common.InvalidInput, "unknown network '%s'", name)
	}
	return n, nil
}

type errorResponse struct {
	Error *common.ResponseError `json:"error"`
}

func statusOf(t common.ErrorType) int {
	switch t {
	case common.InvalidInput:
		return http.StatusBadRequest
	case common.NotFound:
		return http.StatusNotFound
	case common.NoLedgerData, common.NoMaxVersion:
		return http.StatusServiceUnavailable
	case common.Superseded:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var re *common.ResponseError
	if !errors.As(err, &re) {
		re = common.WrapTransport(err, "request failed")
	}
	s.writeJSONStatus(w, statusOf(re.Type), errorResponse{Error: re})
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	s.writeJSONStatus(w, http.StatusOK, data)
}

func (s *Server) writeJSONStatus(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := jsonx.NewEncoder(w).Encode(data); err != nil {
		logx.Error("SERVER", "failed to encode response: ", err)
	}
}

type resolutionResponse struct {
	*resolver.Resolution
	// Deleted only means something for objects. An account carries no
	// ObjectCore, so the raw flag would read true for every account.
	Deleted bool           `json:"deleted"`
	Label   common.Label   `json:"label"`
	Tabs    []resolver.Tab `json:"tabs"`
}

func (s *Server) lookup(mode resolver.ViewMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		network, err := s.network(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		src := s.opts.Sources(network)
		rv := resolver.NewResolver(func(networks.Network) resolver.Source { return src }, s.opts.MaxMissingChars)

		res, err := rv.Resolve(r.Context(), network, mux.Vars(r)["address"], mode)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if res.Redirect != "" {
			target := res.Redirect
			if q := r.URL.Query().Get("network"); q != "" {
				target += "?network=" + q
			}
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		if res.Err != nil {
			s.writeError(w, res.Err)
			return
		}

		extended := s.opts.Capabilities.ExtendedQuery(r.Context(), network)
		s.writeJSON(w, resolutionResponse{
			Resolution: res,
			Deleted:    res.Kind == resolver.Object && res.Deleted,
			Label:      s.opts.Labels.Resolve(res.Address),
			Tabs:       resolver.Tabs(res.Kind, extended),
		})
	}
}

func (s *Server) getTransactions(w http.ResponseWriter, r *http.Request) {
	network, err := s.network(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	start, err := txlist.ParseStart(r.URL.Query().Get("start"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	orch := txlist.NewOrchestrator(network.GetName(), s.opts.Sources(network), s.opts.PageLimit)
	page, err := orch.Load(r.Context(), start)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, page)
}

type latestResponse struct {
	Network      string               `json:"network"`
	Transactions []common.Transaction `json:"transactions"`
}

func (s *Server) getLatestTransactions(w http.ResponseWriter, r *http.Request) {
	network, err := s.network(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	orch := txlist.NewOrchestrator(network.GetName(), s.opts.Sources(network), s.opts.PageLimit)
	txs, err := orch.Preview(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, latestResponse{Network: network.GetName(), Transactions: txs})
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	network, err := s.network(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	tx, err := txlist.LookupTransaction(r.Context(), s.opts.Sources(network), mux.Vars(r)["txnHashOrVersion"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, tx)
}

type networkResponse struct {
	Name       string `json:"name"`
	ChainID    uint64 `json:"chain_id"`
	NodeURL    string `json:"node_url"`
	IndexerURL string `json:"indexer_url,omitempty"`
	Default    bool   `json:"default"`
}

func (s *Server) getNetworks(w http.ResponseWriter, r *http.Request) {
	response := []networkResponse{}
	for _, n := range networks.GetSupportedNetworks() {
		response = append(response, networkResponse{
			Name:       n.GetName(),
			ChainID:    n.GetChainID(),
			NodeURL:    n.GetNodeURL(),
			IndexerURL: n.GetIndexerURL(),
			Default:    n.GetName() == s.opts.DefaultNetwork.GetName(),
		})
	}
	s.writeJSON(w, response)
}
