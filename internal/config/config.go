// Package config loads the YAML configuration surface and translates it
// into pfcpctx core calls. The generic mapping/sequence-walking iterator
// the source used to read arbitrary YAML trees is not reimplemented here;
// this package defines only the typed destination schema.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/your-org/pfcp-core/internal/pfcpctx"
)

// Config is the top-level configuration document.
type Config struct {
	Local  LocalConfig  `yaml:"local"`
	Remote RemoteConfig `yaml:"remote"`
}

// LocalConfig is this node's own PFCP bindings and served PDN subnets.
type LocalConfig struct {
	PFCP []PFCPBindConfig `yaml:"pfcp"`
	PDN  []PDNConfig      `yaml:"pdn"`
}

// RemoteConfig lists the PFCP peers this node associates with.
type RemoteConfig struct {
	PFCP []PFCPPeerConfig `yaml:"pfcp"`
}

// PFCPBindConfig is one local PFCP listen address.
type PFCPBindConfig struct {
	Family string   `yaml:"family"`
	Addr   []string `yaml:"addr"`
	Port   uint16   `yaml:"port"`
	Dev    string   `yaml:"dev"`
}

// PDNConfig is one served UE IP subnet, scoped to an APN.
type PDNConfig struct {
	Addr  string   `yaml:"addr"` // CIDR, e.g. "10.45.0.0/16"
	APN   string   `yaml:"apn"`
	Dev   string   `yaml:"dev"`
	Range []string `yaml:"range"` // "low-high" dotted/colon addresses
}

// PFCPPeerConfig is one remote PFCP peer and its affinity arrays.
type PFCPPeerConfig struct {
	Family   string   `yaml:"family"`
	Addr     []string `yaml:"addr"`
	Port     uint16   `yaml:"port"`
	TAC      []uint16 `yaml:"tac"`
	APN      []string `yaml:"apn"`
	ECellID  []uint32 `yaml:"e_cell_id"`
	NRCellID []uint64 `yaml:"nr_cell_id"`
	RR       *bool    `yaml:"rr"` // nil defaults to true
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if len(c.Local.PFCP) == 0 {
		return nil, &pfcpctx.ConfigError{Key: "local.pfcp", Reason: "no local PFCP bind address configured"}
	}

	return &c, nil
}
