// Package config holds the settings shared by every command. Flags bind
// straight to the package variables; the optional YAML file only fills in
// what no flag set explicitly.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cuiweiyuan/explorer/address"
	"github.com/cuiweiyuan/explorer/txlist"
	"github.com/cuiweiyuan/explorer/util/monitor"
)

const (
	DefaultNetwork    = "mainnet"
	DefaultListenAddr = "127.0.0.1:8088"
)

var Network string = DefaultNetwork

var (
	ConfigPath      string
	PageLimit       uint64        = txlist.MainLimit
	MaxMissingChars int           = address.DefaultMaxMissingChars
	PollInterval    time.Duration = monitor.DefaultInterval
	ListenAddr      string        = DefaultListenAddr

	Start          string
	Interactive    bool
	JSONOutputFile string
)

// Flag names, shared by the commands that register them and Apply.
const (
	FlagNetwork         = "network"
	FlagLimit           = "limit"
	FlagMaxMissingChars = "max-missing-chars"
	FlagPollInterval    = "poll-interval"
	FlagListen          = "listen"
)

// File is the YAML config file layout. Zero values mean "not set".
type File struct {
	Network         string `yaml:"network"`
	PageLimit       uint64 `yaml:"page_limit"`
	MaxMissingChars *int   `yaml:"max_missing_chars"`
	PollInterval    string `yaml:"poll_interval"`
	ListenAddr      string `yaml:"listen_addr"`
}

// DefaultPath is ~/.explorer/config.yaml.
func DefaultPath() string {
	usr, err := user.Current()
	if err != nil {
		return ""
	}
	return filepath.Join(usr.HomeDir, ".explorer", "config.yaml")
}

// LoadFile reads path. A missing file at the default location is not an
// error and yields an empty File; a missing explicit path is.
func LoadFile(path string) (*File, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return &File{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return &File{}, nil
		}
		return nil, fmt.Errorf("couldn't open config %s: %w", path, err)
	}
	defer f.Close()

	cfg := File{}
	// An empty or comment-only file decodes to io.EOF.
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("couldn't parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Apply copies the file's values into the package variables, skipping any
// setting whose flag changed reports as explicitly set.
func (cfg *File) Apply(changed func(flag string) bool) error {
	if cfg.Network != "" && !changed(FlagNetwork) {
		Network = cfg.Network
	}
	if cfg.PageLimit > 0 && !changed(FlagLimit) {
		PageLimit = cfg.PageLimit
	}
	if cfg.MaxMissingChars != nil && !changed(FlagMaxMissingChars) {
		MaxMissingChars = *cfg.MaxMissingChars
	}
	if cfg.PollInterval != "" && !changed(FlagPollInterval) {
		d, err := time.ParseDuration(cfg.PollInterval)
		if err != nil {
			return fmt.Errorf("poll_interval %q: %w", cfg.PollInterval, err)
		}
		PollInterval = d
	}
	if cfg.ListenAddr != "" && !changed(FlagListen) {
		ListenAddr = cfg.ListenAddr
	}
	return nil
}
