package xcmbridge_test

import (
	. "github.com/cordialsys/xcmbridge"
	"gopkg.in/yaml.v3"
)

func (s *XcmBridgeTestSuite) TestTokenCatalog() {
	require := s.Require()
	var tokens []*Token
	require.NoError(yaml.Unmarshal([]byte(`
- name: Kusama
  symbol: KSM
  decimals: 12
  ed: "79999999"
- name: RMRK
  symbol: RMRK
  decimals: 10
  ed: "100000000"
  asset_id:
    index: "8"
- name: Karura
  symbol: KAR
  decimals: 12
  asset_id:
    currency: "0x0080"
`), &tokens))

	catalog, err := NewTokenCatalog("ksm", tokens)
	require.NoError(err)
	require.Equal([]string{"KAR", "KSM", "RMRK"}, catalog.Symbols())
	require.Equal("KSM", catalog.Native().Symbol)
	require.True(catalog.IsNative("Ksm"))
	require.False(catalog.IsNative("RMRK"))

	ksm, ok := catalog.Get("ksm")
	require.True(ok)
	require.Equal("0.000079999999", ksm.EDHuman().String())

	kar, _ := catalog.Get("KAR")
	require.True(kar.EDHuman().IsZero())

	// lookups are copies
	ksm.Decimals = 0
	again, _ := catalog.Get("KSM")
	require.EqualValues(12, again.Decimals)

	// pointer fields are copied too
	*again.ED = NewAmountBlockchainFromUint64(1)
	rmrk, _ := catalog.Get("RMRK")
	*rmrk.AssetID.Index = NewAmountBlockchainFromUint64(99)
	kar.AssetID.Currency[1] = 0xff
	ksm, _ = catalog.Get("KSM")
	require.Equal("0.000079999999", ksm.EDHuman().String())
	rmrk, _ = catalog.Get("RMRK")
	require.EqualValues(8, rmrk.AssetID.Index.Uint64())
	kar, _ = catalog.Get("KAR")
	require.Equal([]byte{0x00, 0x80}, kar.AssetID.Currency.Bytes())

	id, ok := catalog.AssetID("RMRK")
	require.True(ok)
	require.True(id.HasIndex())
	require.EqualValues(8, id.Index.Uint64())

	id, ok = catalog.AssetID("KAR")
	require.True(ok)
	require.True(id.HasCurrency())
	require.Equal([]byte{0x00, 0x80}, id.Currency.Bytes())

	_, ok = catalog.AssetID("KSM")
	require.False(ok)
	_, ok = catalog.Get("DOT")
	require.False(ok)
}

func (s *XcmBridgeTestSuite) TestTokenCatalogInvalid() {
	require := s.Require()
	_, err := NewTokenCatalog("DOT", []*Token{{Symbol: "ACA"}})
	require.ErrorContains(err, "native token DOT is missing")

	_, err = NewTokenCatalog("DOT", []*Token{{Symbol: "DOT"}, {Symbol: "dot"}})
	require.ErrorContains(err, "duplicate token")

	_, err = NewTokenCatalog("DOT", []*Token{{Symbol: ""}})
	require.ErrorContains(err, "symbol is required")
}
