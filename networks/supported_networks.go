package networks

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cuiweiyuan/explorer/jsonx"
	"github.com/cuiweiyuan/explorer/logx"
)

// Insert more Network implementation here to support more ledgers
var supportedNetworks = []Network{
	Mainnet,
	Testnet,
	Devnet,
	Local,
}

var ErrNetworkNotFound = fmt.Errorf("network not found")

// CustomNetworksDir is where user defined networks are stored as
// <name>.json. Empty means ~/.explorer/networks.
var CustomNetworksDir string

var (
	registryOnce sync.Once
	registry     *networks
)

type networks struct {
	mu           sync.RWMutex
	networks     map[string]Network
	networksByID map[uint64]Network
}

func global() *networks {
	registryOnce.Do(func() {
		registry = newSupportedNetworks()
	})
	return registry
}

// Reload rebuilds the registry from the built-in list and CustomNetworksDir.
func Reload() {
	n := newSupportedNetworks()
	registryOnce.Do(func() {})
	registry = n
}

func (n *networks) getSupportedNetworkNames() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res := []string{}
	for name := range n.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d is not supported", id)
	}
	return res, nil
}

func (n *networks) getNetwork(name string) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networks[name]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) put(network Network) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, an := range network.GetAlternativeNames() {
		if existing, found := n.networks[an]; found && existing.GetName() != network.GetName() {
			return fmt.Errorf("network with name or alternative name of '%s' already exists", an)
		}
	}
	n.networks[network.GetName()] = network
	if network.GetChainID() != 0 {
		n.networksByID[network.GetChainID()] = network
	}
	for _, an := range network.GetAlternativeNames() {
		n.networks[an] = network
	}
	return nil
}

func newSupportedNetworks() *networks {
	result := &networks{
		networks:     map[string]Network{},
		networksByID: map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if _, found := result.networks[n.GetName()]; found {
			panic(
				fmt.Errorf(
					"network with name or alternative name of '%s' already exists",
					n.GetName(),
				),
			)
		}
		if err := result.put(n); err != nil {
			panic(err)
		}
	}

	customNetworks, err := loadCustomNetworks()
	if err != nil {
		logx.Warn("NETWORKS", "failed to load custom networks, continuing with built-in ones:", err)
		return result
	}

	for _, n := range customNetworks {
		if _, nameFound := result.networks[n.GetName()]; nameFound {
			logx.Info("NETWORKS", fmt.Sprintf("network '%s' is overridden by a custom network", n.GetName()))
		}
		if err := result.put(n); err != nil {
			logx.Warn("NETWORKS", "skipping custom network:", err)
		}
	}
	return result
}

func customNetworksDir() (string, error) {
	if CustomNetworksDir != "" {
		return CustomNetworksDir, nil
	}
	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return filepath.Join(usr.HomeDir, ".explorer", "networks"), nil
}

func loadCustomNetworks() ([]Network, error) {
	dir, err := customNetworksDir()
	if err != nil {
		return nil, err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob json files in %s: %w", dir, err)
	}

	networks := []Network{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}

		network, err := NewNetworkFromJSON(content)
		if err != nil {
			logx.Warn("NETWORKS", fmt.Sprintf("failed to parse network from file %s: %s", file, err))
			continue
		}
		networks = append(networks, network)
	}
	return networks, nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericNetworkConfig{}
	if err := jsonx.Unmarshal(content, &networkConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	if networkConfig.Name == "" {
		return nil, fmt.Errorf("network config has no name")
	}
	if networkConfig.DefaultNodeURL == "" && networkConfig.NodeVariableName == "" {
		return nil, fmt.Errorf("network '%s' has no node url", networkConfig.Name)
	}
	return NewGenericNetwork(networkConfig), nil
}

// GetSupportedNetworks returns every distinct network, sorted by name.
func GetSupportedNetworks() []Network {
	g := global()
	g.mu.RLock()
	defer g.mu.RUnlock()
	seen := map[string]bool{}
	res := []Network{}
	for _, n := range g.networks {
		if seen[n.GetName()] {
			continue
		}
		seen[n.GetName()] = true
		res = append(res, n)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].GetName() < res[j].GetName() })
	return res
}

func GetNetwork(name string) (Network, error) {
	return global().getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return global().getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	return global().getSupportedNetworkNames()
}

// AddNetwork registers network and persists it to the custom networks dir.
func AddNetwork(network Network) error {
	if err := global().put(network); err != nil {
		return err
	}

	dir, err := customNetworksDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	content, err := network.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal network: %w", err)
	}

	err = os.WriteFile(filepath.Join(dir, fmt.Sprintf("%s.json", network.GetName())), content, 0644)
	if err != nil {
		return fmt.Errorf("failed to write the new network to file: %w", err)
	}
	return nil
}
