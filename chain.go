package xcmbridge

import (
	"fmt"
	"strings"
)

// ChainID is the canonical lower-camel identifier of a chain, e.g. "polkadot" or "bifrostKusama".
type ChainID string

func (id ChainID) String() string {
	return string(id)
}

// Normalize lowercases the id, chain ids are compared case-insensitively.
func (id ChainID) Normalize() ChainID {
	return ChainID(strings.ToLower(strings.TrimSpace(string(id))))
}

func (id ChainID) Equal(other ChainID) bool {
	return id.Normalize() == other.Normalize()
}

// Topology is the closed set of destination shapes a transfer message can take.
type Topology string

const (
	TopologyRelay    Topology = "relay"
	TopologySibling  Topology = "sibling"
	TopologyAssetHub Topology = "asset-hub"
	TopologyEVM      Topology = "evm"
)

var SupportedTopologies = []Topology{
	TopologyRelay,
	TopologySibling,
	TopologyAssetHub,
	TopologyEVM,
}

func (t Topology) Validate() error {
	for _, supported := range SupportedTopologies {
		if t == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported topology: %q", string(t))
}

// XcmVersion is the message format a chain understands when it is the destination.
type XcmVersion string

const (
	V0 XcmVersion = "v0"
	V1 XcmVersion = "v1"
	V3 XcmVersion = "v3"
)

func (v XcmVersion) Validate() error {
	switch v {
	case V0, V1, V3:
		return nil
	}
	return fmt.Errorf("unsupported xcm version: %q", string(v))
}

// Family selects the source-side strategy of a chain: which balance layout it
// stores and which transfer pallet it exposes.
type Family string

const (
	FamilyRelay    Family = "relay"
	FamilyAssetHub Family = "asset-hub"
	FamilyAcala    Family = "acala"
	FamilyOrml     Family = "orml"
	FamilyEVM      Family = "evm"
	FamilyParallel Family = "parallel"
)

var SupportedFamilies = []Family{
	FamilyRelay,
	FamilyAssetHub,
	FamilyAcala,
	FamilyOrml,
	FamilyEVM,
	FamilyParallel,
}

func (f Family) Validate() error {
	for _, supported := range SupportedFamilies {
		if f == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported chain family: %q", string(f))
}

// Chain is the static descriptor of a chain in the federation.
type Chain struct {
	ID ChainID `yaml:"id"`
	// Unset on relay chains
	ParaID      *uint32    `yaml:"para_id,omitempty"`
	Topology    Topology   `yaml:"topology"`
	NativeToken string     `yaml:"native_token"`
	SS58Prefix  uint16     `yaml:"ss58_prefix"`
	XcmVersion  XcmVersion `yaml:"xcm_version"`
	Family      Family     `yaml:"family"`
	// Relay this chain is connected to, e.g. "polkadot" or "kusama"
	Relay ChainID `yaml:"relay,omitempty"`
}

func (c *Chain) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("chain id is required")
	}
	if err := c.Topology.Validate(); err != nil {
		return fmt.Errorf("%s: %v", c.ID, err)
	}
	if err := c.XcmVersion.Validate(); err != nil {
		return fmt.Errorf("%s: %v", c.ID, err)
	}
	if err := c.Family.Validate(); err != nil {
		return fmt.Errorf("%s: %v", c.ID, err)
	}
	if c.NativeToken == "" {
		return fmt.Errorf("%s: native token is required", c.ID)
	}
	if c.Topology == TopologyRelay && c.ParaID != nil {
		return fmt.Errorf("%s: relay chains do not have a parachain index", c.ID)
	}
	if c.Topology != TopologyRelay && c.ParaID == nil {
		return fmt.Errorf("%s: parachain index is required for topology %s", c.ID, c.Topology)
	}
	return nil
}

func (c *Chain) IsRelay() bool {
	return c.Topology == TopologyRelay
}

func (c *Chain) IsNativeToken(symbol string) bool {
	return strings.EqualFold(c.NativeToken, symbol)
}

func (c *Chain) String() string {
	if c.ParaID != nil {
		return fmt.Sprintf("%s(%d)", c.ID, *c.ParaID)
	}
	return string(c.ID)
}

func NewParaID(id uint32) *uint32 {
	return &id
}
