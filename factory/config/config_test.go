package config_test

import (
	"testing"

	xb "github.com/cordialsys/xcmbridge"
	factoryconfig "github.com/cordialsys/xcmbridge/factory/config"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type FactoryConfigTestSuite struct {
	suite.Suite
}

func TestFactoryConfig(t *testing.T) {
	suite.Run(t, new(FactoryConfigTestSuite))
}

const federation = `
chains:
  polkadot:
    id: polkadot
    topology: relay
    native_token: DOT
    xcm_version: v3
    family: relay
    client:
      url: wss://rpc.polkadot.io
      rate_limit: 5
  acala:
    id: acala
    para_id: 2000
    topology: sibling
    native_token: ACA
    ss58_prefix: 10
    xcm_version: v3
    family: acala
    relay: polkadot
    client:
      url: wss://acala-rpc-0.aca-api.network
      auth: env:ACALA_TOKEN
tokens:
  polkadot:
    - {name: Polkadot, symbol: DOT, decimals: 10, ed: "10000000000"}
  acala:
    - {name: Acala, symbol: ACA, decimals: 12, asset_id: {currency: "0x0000"}}
routes:
  polkadot:
    - to: acala
      token: DOT
      xcm: {fee: {token: DOT, amount: "3549633"}, weightLimit: Unlimited}
`

func (s *FactoryConfigTestSuite) TestUnmarshal() {
	require := s.Require()
	var cfg factoryconfig.Config
	require.NoError(yaml.Unmarshal([]byte(federation), &cfg))
	require.NoError(cfg.Validate())

	chains := cfg.GetChains()
	require.Len(chains, 2)
	require.EqualValues("acala", chains[0].ID)
	require.EqualValues(2000, *chains[0].ParaID)
	require.Equal(xb.FamilyAcala, chains[0].Family)
	require.EqualValues("env:ACALA_TOKEN", chains[0].Client.Auth)
	require.EqualValues(5, chains[1].Client.RateLimit)

	acala, ok := cfg.GetChain("ACALA")
	require.True(ok)
	require.Equal("wss://acala-rpc-0.aca-api.network", acala.Client.URL)
	require.Equal([]byte{0, 0}, cfg.Tokens["acala"][0].AssetID.Currency.Bytes())
	require.Len(cfg.Routes["polkadot"], 1)

	// survives the yaml round trip used when defaults are applied
	bz, err := yaml.Marshal(&cfg)
	require.NoError(err)
	var again factoryconfig.Config
	require.NoError(yaml.Unmarshal(bz, &again))
	require.NoError(again.Validate())
	require.Equal("3549633", again.Routes["polkadot"][0].Xcm.Fee.Amount.String())
	require.True(again.Routes["polkadot"][0].Xcm.WeightLimit.IsUnlimited())
	require.Equal([]byte{0, 0}, again.Tokens["acala"][0].AssetID.Currency.Bytes())
}

func (s *FactoryConfigTestSuite) TestValidate() {
	require := s.Require()
	var cfg factoryconfig.Config
	require.NoError(yaml.Unmarshal([]byte(federation), &cfg))
	delete(cfg.Tokens, "acala")
	require.ErrorContains(cfg.Validate(), "acala: no tokens configured")

	require.NoError(yaml.Unmarshal([]byte(federation), &cfg))
	cfg.Chains["acala"].Topology = "cosmos"
	require.ErrorContains(cfg.Validate(), "unsupported topology")
}
