// Package indexer checks whether a network's GraphQL indexer answers. The
// result gates the extended detail tabs and is taken once per session.
package indexer

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/cuiweiyuan/explorer/jsonx"
	"github.com/cuiweiyuan/explorer/logx"
	"github.com/cuiweiyuan/explorer/networks"
)

const TIMEOUT time.Duration = 3 * time.Second

const probeQuery = `{ __typename }`

type graphQLResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Prober asks one indexer endpoint for its schema root type.
type Prober struct {
	url    string
	client *http.Client
}

func NewProber(url string) *Prober {
	return &Prober{url: url, client: &http.Client{Timeout: TIMEOUT}}
}

// Probe reports whether the indexer answered a trivial query without
// errors. Any failure, including an empty url, is false.
func (p *Prober) Probe(ctx context.Context) bool {
	if p.url == "" {
		return false
	}
	body, err := jsonx.Marshal(map[string]string{"query": probeQuery})
	if err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		logx.Info("INDEXER", "indexer unreachable at ", p.url, ": ", err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logx.Info("INDEXER", "indexer at ", p.url, " answered ", resp.Status)
		return false
	}

	gr := graphQLResponse{}
	if err := jsonx.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return false
	}
	return len(gr.Errors) == 0 && gr.Data != nil
}

// Capabilities remembers the probe result per network so each network is
// probed at most once for the lifetime of the value.
type Capabilities struct {
	mu      sync.Mutex
	results map[string]*capability
	probe   func(ctx context.Context, network networks.Network) bool
}

type capability struct {
	once     sync.Once
	extended bool
}

func NewCapabilities() *Capabilities {
	return &Capabilities{
		results: map[string]*capability{},
		probe: func(ctx context.Context, network networks.Network) bool {
			return NewProber(network.GetIndexerURL()).Probe(ctx)
		},
	}
}

// Fixed returns Capabilities that never probe and always report v.
func Fixed(v bool) *Capabilities {
	return &Capabilities{
		results: map[string]*capability{},
		probe: func(context.Context, networks.Network) bool {
			return v
		},
	}
}

func (c *Capabilities) entry(name string) *capability {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.results[name]
	if !found {
		e = &capability{}
		c.results[name] = e
	}
	return e
}

// ExtendedQuery returns the cached flag for network, probing on first use.
// The probe is detached from ctx so a caller that goes away early doesn't
// leave a false result behind; it is bounded by TIMEOUT instead.
func (c *Capabilities) ExtendedQuery(ctx context.Context, network networks.Network) bool {
	e := c.entry(network.GetName())
	e.once.Do(func() {
		probeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), TIMEOUT)
		defer cancel()
		e.extended = c.probe(probeCtx, network)
	})
	return e.extended
}
