package xcmbridge_test

import (
	. "github.com/cordialsys/xcmbridge"
	"gopkg.in/yaml.v3"
)

func (s *XcmBridgeTestSuite) TestChainIDs() {
	require := s.Require()
	require.True(ChainID("Polkadot").Equal("polkadot"))
	require.True(ChainID(" bifrostKusama ").Equal("bifrostkusama"))
	require.False(ChainID("polkadot").Equal("kusama"))
	require.EqualValues("statemint", ChainID("Statemint").Normalize())
}

func (s *XcmBridgeTestSuite) TestChainValidate() {
	require := s.Require()

	relay := &Chain{ID: "polkadot", Topology: TopologyRelay, NativeToken: "DOT", XcmVersion: V3, Family: FamilyRelay}
	require.NoError(relay.Validate())
	require.True(relay.IsRelay())
	require.True(relay.IsNativeToken("dot"))
	require.Equal("polkadot", relay.String())

	acala := &Chain{ID: "acala", ParaID: NewParaID(2000), Topology: TopologySibling, NativeToken: "ACA", XcmVersion: V1, Family: FamilyAcala}
	require.NoError(acala.Validate())
	require.Equal("acala(2000)", acala.String())

	for _, invalid := range []*Chain{
		{Topology: TopologyRelay, NativeToken: "DOT", XcmVersion: V3, Family: FamilyRelay},
		{ID: "polkadot", Topology: "solo", NativeToken: "DOT", XcmVersion: V3, Family: FamilyRelay},
		{ID: "polkadot", Topology: TopologyRelay, NativeToken: "DOT", XcmVersion: "v2", Family: FamilyRelay},
		{ID: "polkadot", Topology: TopologyRelay, NativeToken: "DOT", XcmVersion: V3, Family: "cosmos"},
		{ID: "polkadot", Topology: TopologyRelay, XcmVersion: V3, Family: FamilyRelay},
		{ID: "polkadot", ParaID: NewParaID(0), Topology: TopologyRelay, NativeToken: "DOT", XcmVersion: V3, Family: FamilyRelay},
		{ID: "acala", Topology: TopologySibling, NativeToken: "ACA", XcmVersion: V3, Family: FamilyAcala},
	} {
		require.Error(invalid.Validate(), "%+v", invalid)
	}
}

func (s *XcmBridgeTestSuite) TestChainYaml() {
	require := s.Require()
	var chain Chain
	require.NoError(yaml.Unmarshal([]byte(`
id: moonbeam
para_id: 2004
topology: evm
native_token: GLMR
ss58_prefix: 1284
xcm_version: v1
family: evm
relay: polkadot
`), &chain))
	require.NoError(chain.Validate())
	require.EqualValues(2004, *chain.ParaID)
	require.Equal(TopologyEVM, chain.Topology)
	require.EqualValues(1284, chain.SS58Prefix)
	require.EqualValues("polkadot", chain.Relay)
}
