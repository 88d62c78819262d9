package hex

import (
	"encoding/json"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type object struct {
	Currency Hex `toml:"currency" yaml:"currency"`
}

func TestHex(t *testing.T) {
	require := require.New(t)
	// aUSD on acala: Token(AUSD)
	ausd := Hex{0x00, 0x01}
	require.Equal("0x0001", ausd.String())
	require.Equal([]byte{0x00, 0x01}, ausd.Bytes())
	require.False(ausd.IsEmpty())
	require.True(Hex{}.IsEmpty())

	for _, input := range []string{`"0x050000"`, `"050000"`} {
		var h Hex
		require.NoError(json.Unmarshal([]byte(input), &h), input)
		require.Equal([]byte{0x05, 0x00, 0x00}, h.Bytes())
	}

	bz, err := json.Marshal(object{Currency: ausd})
	require.NoError(err)
	require.JSONEq(`{"Currency":"0x0001"}`, string(bz))

	var h Hex
	require.Error(json.Unmarshal([]byte(`"0xzz"`), &h))
}

func TestParse(t *testing.T) {
	require := require.New(t)
	h, err := Parse("0X0080")
	require.NoError(err)
	require.Equal(Hex{0x00, 0x80}, h)

	h, err = Parse("  ")
	require.NoError(err)
	require.True(h.IsEmpty())

	_, err = Parse("0xnothex")
	require.ErrorContains(err, "invalid hex")
}

func TestHexText(t *testing.T) {
	require := require.New(t)

	var fromToml object
	require.NoError(toml.Unmarshal([]byte(`currency = "0x0082"`), &fromToml))
	require.Equal([]byte{0x00, 0x82}, fromToml.Currency.Bytes())

	bz, err := toml.Marshal(fromToml)
	require.NoError(err)
	require.Equal("currency = '0x0082'\n", string(bz))

	var fromYaml object
	require.NoError(yaml.Unmarshal([]byte("currency: \"0x0507\"\n"), &fromYaml))
	require.Equal([]byte{0x05, 0x07}, fromYaml.Currency.Bytes())

	bz, err = yaml.Marshal(fromYaml)
	require.NoError(err)
	require.Equal("currency: \"0x0507\"\n", string(bz))
}
